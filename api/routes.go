package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-resume-backend/storage"
)

// setupRoutes mounts the public read routes and the admin gated write routes
func setupRoutes(r chi.Router, handlers *routeHandlers, gate adminGate, m *metrics) {
	r.Get("/health", handlers.systemHandler.health())
	r.Method("GET", "/metrics", m.handler())
	r.Get(storage.PublicPrefix+"/*", handlers.mediaHandler.serveMedia())

	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/categories", handlers.categoryHandler.listCategories())
		r.Get("/skills", handlers.skillHandler.listSkills())
		r.Get("/skills/{id}", handlers.skillHandler.getSkill())
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/{id}", handlers.projectHandler.getProject())
		r.Get("/certificates", handlers.certificateHandler.listCertificates())
		r.Get("/languages", handlers.languageHandler.listLanguages())

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(gate.requireAdminKey)

			r.Get("/admin/verify", handlers.systemHandler.verifyAdminKey())

			r.Post("/categories", handlers.categoryHandler.createCategory())
			r.Delete("/categories/{id}", handlers.categoryHandler.deleteCategory())

			r.Post("/skills", handlers.skillHandler.createSkill())
			r.Put("/skills/{id}", handlers.skillHandler.updateSkill())
			r.Post("/skills/{id}/upload-image", handlers.skillHandler.uploadImage())
			r.Delete("/skills/{id}", handlers.skillHandler.deleteSkill())

			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{id}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())
			r.Post("/projects/{id}/link-skill/{skillId}", handlers.projectHandler.linkSkill())
			r.Delete("/projects/{id}/unlink-skill/{skillId}", handlers.projectHandler.unlinkSkill())

			r.Post("/certificates", handlers.certificateHandler.createCertificate())
			r.Post("/certificates/{id}/upload-images", handlers.certificateHandler.uploadImages())
			r.Delete("/certificates/{id}", handlers.certificateHandler.deleteCertificate())

			r.Post("/languages", handlers.languageHandler.createLanguage())
			r.Delete("/languages/{id}", handlers.languageHandler.deleteLanguage())
		})
	})
}
