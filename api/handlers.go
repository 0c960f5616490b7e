package api

import (
	"context"
	"time"

	"github.com/rpupo63/portfolio-resume-backend/services"
	"github.com/rpupo63/portfolio-resume-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svcs *services.Services, store storage.MediaStore, maxUploadBytes int64, startupTime time.Time, ping func(context.Context) error) *routeHandlers {
	return &routeHandlers{
		categoryHandler:    newCategoryHandler(svcs.Categories),
		skillHandler:       newSkillHandler(svcs.Skills, maxUploadBytes),
		projectHandler:     newProjectHandler(svcs.Projects),
		certificateHandler: newCertificateHandler(svcs.Certificates, maxUploadBytes),
		languageHandler:    newLanguageHandler(svcs.Languages),
		mediaHandler:       newMediaHandler(store),
		systemHandler:      newSystemHandler(startupTime, ping),
	}
}
