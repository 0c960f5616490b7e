package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// CertificateMediaDir is the media store directory for certificate images.
const CertificateMediaDir = "certificates"

const mediaCleanupConcurrency = 4

type CertificateInput struct {
	Title  string `json:"title" validate:"required,max=200"`
	Issuer string `json:"issuer" validate:"max=200"`
	// IssueDate is either a calendar date (2006-01-02) or an RFC 3339 timestamp.
	IssueDate *string `json:"issueDate"`
}

func parseIssueDate(raw *string) (*datatypes.Date, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)

	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			date := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
			return &date, nil
		}
	}
	return nil, errs.NewInvalidFieldError("issueDate", "must be a date like 2024-05-31")
}

type CertificateService struct {
	repo   *database.CertificateRepo
	store  storage.MediaStore
	logger zerolog.Logger
}

func NewCertificateService(repo *database.CertificateRepo, store storage.MediaStore) *CertificateService {
	return &CertificateService{
		repo:   repo,
		store:  store,
		logger: log.With().Str("serviceName", "certificateService").Logger(),
	}
}

func (s *CertificateService) List(ctx context.Context) ([]*models.Certificate, error) {
	certificates, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "certificates", err)
	}
	return certificates, nil
}

func (s *CertificateService) Get(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError("get", "certificate", err)
	}
	return certificate, nil
}

// Create stores the certificate without images; they are added through
// UploadImages.
func (s *CertificateService) Create(ctx context.Context, input CertificateInput) (*models.Certificate, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Issuer = strings.TrimSpace(input.Issuer)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	issueDate, err := parseIssueDate(input.IssueDate)
	if err != nil {
		return nil, err
	}

	certificate := &models.Certificate{
		Title:     input.Title,
		Issuer:    input.Issuer,
		IssueDate: issueDate,
	}
	if err := s.repo.Add(ctx, certificate); err != nil {
		return nil, dbError("create", "certificate", err)
	}

	s.logger.Info().Str("certificateID", certificate.ID.String()).Msg("Certificate created")
	return s.Get(ctx, certificate.ID)
}

// UploadImages stores every upload and records an image row right after its
// file is written. A failure stops the loop; files and rows written before it
// are kept.
func (s *CertificateService) UploadImages(ctx context.Context, id uuid.UUID, uploads []Upload) (*models.Certificate, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, errs.NewMissingRequiredFieldError("files")
	}
	for _, upload := range uploads {
		if upload.Content == nil || upload.Size == 0 {
			return nil, errs.NewInvalidFieldError("files", "file "+upload.Filename+" is empty")
		}
	}

	for i, upload := range uploads {
		path, err := saveMedia(ctx, s.store, CertificateMediaDir, upload)
		if err != nil {
			s.logger.Error().Err(err).Int("stored", i).Int("total", len(uploads)).Msg("Certificate upload stopped")
			return nil, err
		}
		if _, err := s.repo.AddImages(ctx, id, []string{path}); err != nil {
			s.logger.Error().Err(err).Int("stored", i).Int("total", len(uploads)).Msg("Certificate upload stopped")
			deleteMedia(ctx, s.logger, s.store, path)
			return nil, dbError("add image to", "certificate", err)
		}
	}

	s.logger.Info().Str("certificateID", id.String()).Int("images", len(uploads)).Msg("Certificate images uploaded")
	return s.Get(ctx, id)
}

// Delete removes the certificate and its image rows in one transaction, then
// deletes the files those rows pointed to concurrently. File errors are
// logged and never fail the deletion.
func (s *CertificateService) Delete(ctx context.Context, id uuid.UUID) error {
	paths, err := s.repo.Delete(ctx, id)
	if err != nil {
		return dbError("delete", "certificate", err)
	}

	var g errgroup.Group
	g.SetLimit(mediaCleanupConcurrency)
	for _, imagePath := range paths {
		g.Go(func() error {
			deleteMedia(ctx, s.logger, s.store, imagePath)
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info().
		Str("certificateID", id.String()).
		Int("images", len(paths)).
		Msg("Certificate deleted")
	return nil
}
