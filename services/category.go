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

type CategoryInput struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type CategoryService struct {
	repo   *database.CategoryRepo
	logger zerolog.Logger
}

func NewCategoryService(repo *database.CategoryRepo) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: log.With().Str("serviceName", "categoryService").Logger(),
	}
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "categories", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	category := &models.Category{Name: input.Name}
	if err := s.repo.Add(ctx, category); err != nil {
		return nil, dbError("create", "category", err)
	}

	s.logger.Info().Str("categoryID", category.ID.String()).Msg("Category created")
	return category, nil
}

// Delete removes the category. Skills that carried it keep their other
// categories.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return dbError("delete", "category", err)
	}

	s.logger.Info().Str("categoryID", id.String()).Msg("Category deleted")
	return nil
}
