package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rs/zerolog/log"
)

type languageHandler struct {
	responder Responder
	service   *services.LanguageService
}

func newLanguageHandler(service *services.LanguageService) languageHandler {
	return languageHandler{
		responder: NewResponder(log.With().Str("handlerName", "languageHandler").Logger()),
		service:   service,
	}
}

// listLanguages returns every language ordered by name
// @Summary List languages
// @Tags Languages
// @Produce json
// @Success 200 {array} models.Language
// @Router /api/languages [get]
func (h languageHandler) listLanguages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		languages, err := h.service.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, languages)
	}
}

// createLanguage creates a language
// @Summary Create language
// @Tags Languages
// @Accept json
// @Produce json
// @Param language body services.LanguageInput true "Language data"
// @Success 201 {object} models.Language
// @Failure 400 {object} ErrorResponse "Name missing or too long"
// @Router /api/languages [post]
func (h languageHandler) createLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.LanguageInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		language, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, language)
	}
}

// deleteLanguage deletes a language
// @Summary Delete language
// @Tags Languages
// @Param id path string true "Language ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/languages/{id} [delete]
func (h languageHandler) deleteLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
