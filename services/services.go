// Package services holds the resource operations behind the HTTP handlers.
// Each service validates its input, talks to the repositories and, for
// entities that own images, to the media store.
package services

import (
	"context"
	"errors"
	"io"

	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/rs/zerolog"
)

type Services struct {
	Categories   *CategoryService
	Skills       *SkillService
	Projects     *ProjectService
	Certificates *CertificateService
	Languages    *LanguageService
}

func New(db database.Database, store storage.MediaStore) *Services {
	return &Services{
		Categories:   NewCategoryService(db.CategoryRepo()),
		Skills:       NewSkillService(db.SkillRepo(), store),
		Projects:     NewProjectService(db.ProjectRepo(), db.SkillRepo()),
		Certificates: NewCertificateService(db.CertificateRepo(), store),
		Languages:    NewLanguageService(db.LanguageRepo()),
	}
}

// Upload is one file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// dbError passes ApiErrs through and classifies everything else.
func dbError(operation, entity string, err error) error {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return errs.NewDatabaseError(operation, entity, err)
}

// saveMedia stores content under a fresh key in dir and returns its public path.
func saveMedia(ctx context.Context, store storage.MediaStore, dir string, upload Upload) (string, error) {
	key := storage.NewKey(dir, upload.Filename)
	if err := store.Save(ctx, key, upload.Content); err != nil {
		return "", errs.NewMediaStoreError("save "+key, err)
	}
	return storage.PublicPath(key), nil
}

// deleteMedia removes the file behind publicPath, logging failures instead of
// returning them.
func deleteMedia(ctx context.Context, logger zerolog.Logger, store storage.MediaStore, publicPath string) {
	if publicPath == "" {
		return
	}

	key, err := storage.KeyFromPath(publicPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", publicPath).Msg("Skipping delete of media outside the store")
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to delete media")
	}
}
