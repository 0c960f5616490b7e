package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/services"
)

const maxJSONBodyBytes = 1 << 20

// uuidParam parses the named URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a UUID")
	}
	return id, nil
}

// decodeJSON reads a JSON body of at most maxJSONBodyBytes into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		case errors.Is(err, io.EOF):
			return errs.NewMalformedPayloadError("empty", err)
		default:
			return errs.NewInvalidJSONError(err)
		}
	}
	return nil
}

// parseMultipart parses a multipart body of at most maxBytes. A body that is
// not multipart at all carries no files and leaves r.MultipartForm nil, so the
// service still decides between not found and a missing file.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart):
			return nil
		case errors.As(err, &maxBytesErr):
			return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
		default:
			return errs.NewMalformedPayloadError("multipart", err)
		}
	}
	return nil
}

// removeMultipart drops the temporary files of a parsed multipart form.
func removeMultipart(r *http.Request) {
	if r.MultipartForm != nil {
		r.MultipartForm.RemoveAll()
	}
}

// openUploads opens every file sent under field. The returned closer must be
// called once the uploads are consumed.
func openUploads(r *http.Request, field string) ([]services.Upload, func(), error) {
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File[field]
	}

	var files []multipart.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	uploads := make([]services.Upload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, errs.NewMalformedPayloadError("multipart", err)
		}
		files = append(files, f)
		uploads = append(uploads, services.Upload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  f,
		})
	}
	return uploads, closeAll, nil
}
