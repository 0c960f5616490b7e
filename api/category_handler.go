package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.CategoryService
}

func newCategoryHandler(service *services.CategoryService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

// listCategories returns every category
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/categories [get]
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.service.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// createCategory creates a category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body services.CategoryInput true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse "Name missing or not 2-100 characters"
// @Router /api/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.CategoryInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// deleteCategory deletes a category, leaving its skills in place
// @Summary Delete category
// @Tags Categories
// @Param id path string true "Category ID" format(uuid)
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/categories/{id} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
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
