package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     storage.MediaStore
}

func newMediaHandler(store storage.MediaStore) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
	}
}

// serveMedia streams a stored upload. The URL path below the public prefix is
// the store key.
// @Summary Serve uploaded media
// @Tags Media
// @Param key path string true "Store key, e.g. skills/<uuid>.png"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /uploads/{key} [get]
func (h mediaHandler) serveMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := storage.CleanKey(chi.URLParam(r, "*"))
		if err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("media"))
			return
		}

		rc, err := h.store.Open(r.Context(), key)
		if errors.Is(err, storage.ErrObjectNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("media"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewMediaStoreError("open "+key, err))
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", storage.ContentType(key))
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		if _, err := io.Copy(w, rc); err != nil {
			h.logger.Warn().Err(err).Str("key", key).Msg("Failed to stream media")
		}
	}
}
