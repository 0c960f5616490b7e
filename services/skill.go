package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SkillMediaDir is the media store directory for skill images.
const SkillMediaDir = "skills"

type SkillInput struct {
	Name               string      `json:"name" validate:"required,min=2,max=100"`
	Description        string      `json:"description"`
	PersonalConclusion string      `json:"personalConclusion"`
	CategoryIDs        []uuid.UUID `json:"categoryIds"`
}

type SkillService struct {
	repo   *database.SkillRepo
	store  storage.MediaStore
	logger zerolog.Logger
}

func NewSkillService(repo *database.SkillRepo, store storage.MediaStore) *SkillService {
	return &SkillService{
		repo:   repo,
		store:  store,
		logger: log.With().Str("serviceName", "skillService").Logger(),
	}
}

func (s *SkillService) List(ctx context.Context) ([]*models.Skill, error) {
	skills, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "skills", err)
	}
	return skills, nil
}

func (s *SkillService) Get(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError("get", "skill", err)
	}
	return skill, nil
}

// Create stores a skill without image. Category ids that do not exist are
// ignored.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*models.Skill, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		Name:               input.Name,
		Description:        input.Description,
		PersonalConclusion: input.PersonalConclusion,
	}
	if err := s.repo.Add(ctx, skill, input.CategoryIDs); err != nil {
		return nil, dbError("create", "skill", err)
	}

	s.logger.Info().Str("skillID", skill.ID.String()).Msg("Skill created")
	return s.Get(ctx, skill.ID)
}

// Update overwrites the text fields and moves the category links to
// input.CategoryIDs, touching only the links that differ.
func (s *SkillService) Update(ctx context.Context, id uuid.UUID, input SkillInput) (*models.Skill, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		ID:                 id,
		Name:               input.Name,
		Description:        input.Description,
		PersonalConclusion: input.PersonalConclusion,
	}
	changes, err := s.repo.Update(ctx, skill, input.CategoryIDs)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, err
		}
		return nil, errs.NewPersistenceError("update", "skill", err)
	}

	s.logger.Info().
		Str("skillID", id.String()).
		Int("linksAdded", changes.Added).
		Int("linksRemoved", changes.Removed).
		Msg("Skill updated")
	return s.Get(ctx, id)
}

// UploadImage stores a new image for the skill, removes the previous one and
// returns the new public path.
func (s *SkillService) UploadImage(ctx context.Context, id uuid.UUID, upload Upload) (string, error) {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", dbError("get", "skill", err)
	}
	if upload.Content == nil || upload.Size == 0 {
		return "", errs.NewMissingRequiredFieldError("file")
	}

	path, err := saveMedia(ctx, s.store, SkillMediaDir, upload)
	if err != nil {
		return "", err
	}
	deleteMedia(ctx, s.logger, s.store, skill.ImagePath)

	if err := s.repo.UpdateImagePath(ctx, id, path); err != nil {
		return "", dbError("update", "skill", err)
	}

	s.logger.Info().Str("skillID", id.String()).Str("path", path).Msg("Skill image uploaded")
	return path, nil
}

// Delete removes the skill with its links. The image file is removed on a
// best-effort basis.
func (s *SkillService) Delete(ctx context.Context, id uuid.UUID) error {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dbError("get", "skill", err)
	}

	deleteMedia(ctx, s.logger, s.store, skill.ImagePath)

	if err := s.repo.Delete(ctx, id); err != nil {
		return dbError("delete", "skill", err)
	}

	s.logger.Info().Str("skillID", id.String()).Msg("Skill deleted")
	return nil
}
