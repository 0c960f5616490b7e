package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LanguageInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Level string `json:"level" validate:"max=100"`
}

type LanguageService struct {
	repo   *database.LanguageRepo
	logger zerolog.Logger
}

func NewLanguageService(repo *database.LanguageRepo) *LanguageService {
	return &LanguageService{
		repo:   repo,
		logger: log.With().Str("serviceName", "languageService").Logger(),
	}
}

func (s *LanguageService) List(ctx context.Context) ([]*models.Language, error) {
	languages, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "languages", err)
	}
	return languages, nil
}

func (s *LanguageService) Create(ctx context.Context, input LanguageInput) (*models.Language, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Level = strings.TrimSpace(input.Level)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	language := &models.Language{Name: input.Name, Level: input.Level}
	if err := s.repo.Add(ctx, language); err != nil {
		return nil, dbError("create", "language", err)
	}

	s.logger.Info().Str("languageID", language.ID.String()).Msg("Language created")
	return language, nil
}

func (s *LanguageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return dbError("delete", "language", err)
	}
	return nil
}
