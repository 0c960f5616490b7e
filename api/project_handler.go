package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.ProjectService
}

func newProjectHandler(service *services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// MessageResponse carries a human readable confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// getAllProjects retrieves all projects with their related skills
// @Summary Get all projects
// @Description Completed projects come first, then the rest ordered by title
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.service.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.Get(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Related skills are given as [{"id": ...}]; unknown ids are ignored
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Description When relatedSkills is present the stored links are replaced by it
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param project body services.ProjectInput true "Updated project data"
// @Success 200 {object} models.Project
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid data or id mismatch"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.Update(r.Context(), projectID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

// linkSkill links a skill to a project
// @Summary Link skill
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param skillId path string true "Skill ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Not Found - Project or skill not found"
// @Router /api/projects/{id}/link-skill/{skillId} [post]
func (h projectHandler) linkSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skillID, err := uuidParam(r, "skillId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.service.LinkSkill(r.Context(), projectID, skillID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, MessageResponse{Message: result.Message})
	}
}

// unlinkSkill removes the link between a project and a skill
// @Summary Unlink skill
// @Tags Projects
// @Param id path string true "Project ID" format(uuid)
// @Param skillId path string true "Skill ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Project or skill not found"
// @Router /api/projects/{id}/unlink-skill/{skillId} [delete]
func (h projectHandler) unlinkSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuidParam(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skillID, err := uuidParam(r, "skillId")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.UnlinkSkill(r.Context(), projectID, skillID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}
