package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder      Responder
	logger         zerolog.Logger
	service        *services.SkillService
	maxUploadBytes int64
}

func newSkillHandler(service *services.SkillService, maxUploadBytes int64) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// listSkills returns every skill with its categories, ordered by name
// @Summary List skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill
// @Router /api/skills [get]
func (h skillHandler) listSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.service.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

// getSkill returns one skill
// @Summary Get skill
// @Tags Skills
// @Produce json
// @Param id path string true "Skill ID" format(uuid)
// @Success 200 {object} models.Skill
// @Failure 404 {object} ErrorResponse
// @Router /api/skills/{id} [get]
func (h skillHandler) getSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

// createSkill creates a skill linked to the given categories
// @Summary Create skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body services.SkillInput true "Skill data"
// @Success 201 {object} models.Skill
// @Failure 400 {object} ErrorResponse
// @Router /api/skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.SkillInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, skill)
	}
}

// updateSkill overwrites a skill and reconciles its categories
// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param id path string true "Skill ID" format(uuid)
// @Param skill body services.SkillInput true "Skill data"
// @Success 200 {object} models.Skill
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/skills/{id} [put]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.SkillInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.service.Update(r.Context(), id, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

// uploadImage replaces the skill image with the multipart field "file"
// @Summary Upload skill image
// @Tags Skills
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Skill ID" format(uuid)
// @Param file formData file true "Image"
// @Success 200 {object} UploadImageResponse
// @Failure 400 {object} ErrorResponse "No file selected"
// @Failure 404 {object} ErrorResponse
// @Router /api/skills/{id}/upload-image [post]
func (h skillHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := parseMultipart(w, r, h.maxUploadBytes); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer removeMultipart(r)

		// a missing file still goes to the service so an unknown skill reports 404
		var upload services.Upload
		file, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer file.Close()
			upload = services.Upload{Filename: header.Filename, Size: header.Size, Content: file}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			h.logger.Warn().Err(err).Msg("Failed to read uploaded file")
		}

		path, err := h.service.UploadImage(r.Context(), id, upload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, UploadImageResponse{Path: path})
	}
}

// deleteSkill deletes a skill and its image
// @Summary Delete skill
// @Tags Skills
// @Param id path string true "Skill ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/skills/{id} [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
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
