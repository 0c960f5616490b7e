package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SkillRef references a skill by id inside a project payload.
type SkillRef struct {
	ID uuid.UUID `json:"id"`
}

type ProjectInput struct {
	ID          *uuid.UUID `json:"id,omitempty"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description" validate:"required"`
	CodeSnippet *string    `json:"codeSnippet"`
	GithubURL   *string    `json:"githubUrl"`
	LiveDemoURL *string    `json:"liveDemoUrl"`
	Status      string     `json:"status"`
	// A nil slice leaves the links alone on update; an empty one clears them.
	RelatedSkills []SkillRef `json:"relatedSkills"`
}

func (in ProjectInput) skillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(in.RelatedSkills))
	for _, ref := range in.RelatedSkills {
		ids = append(ids, ref.ID)
	}
	return ids
}

func (in ProjectInput) project(id uuid.UUID) *models.Project {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = models.ProjectStatusInProgress
	}
	return &models.Project{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		CodeSnippet: in.CodeSnippet,
		GithubURL:   in.GithubURL,
		LiveDemoURL: in.LiveDemoURL,
		Status:      status,
	}
}

// LinkResult describes the outcome of linking a skill to a project.
type LinkResult struct {
	Message string `json:"message"`
	Created bool   `json:"created"`
}

type ProjectService struct {
	repo      *database.ProjectRepo
	skillRepo *database.SkillRepo
	logger    zerolog.Logger
}

func NewProjectService(repo *database.ProjectRepo, skillRepo *database.SkillRepo) *ProjectService {
	return &ProjectService{
		repo:      repo,
		skillRepo: skillRepo,
		logger:    log.With().Str("serviceName", "projectService").Logger(),
	}
}

// List returns every project, completed ones first.
func (s *ProjectService) List(ctx context.Context) ([]*models.Project, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, dbError("list", "projects", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError("get", "project", err)
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	project := input.project(uuid.Nil)
	if err := s.repo.Add(ctx, project, input.skillIDs()); err != nil {
		return nil, dbError("create", "project", err)
	}

	s.logger.Info().Str("projectID", project.ID.String()).Msg("Project created")
	return s.Get(ctx, project.ID)
}

// Update overwrites the project. When the input lists related skills the
// stored links are dropped and rebuilt from that list.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, input ProjectInput) (*models.Project, error) {
	if input.ID == nil || *input.ID != id {
		payloadID := "none"
		if input.ID != nil {
			payloadID = input.ID.String()
		}
		return nil, errs.NewIDMismatchError(id.String(), payloadID)
	}
	input.Title = strings.TrimSpace(input.Title)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, dbError("get", "project", err)
	}
	if !exists {
		return nil, errs.NewNotFound("project")
	}

	replaceSkills := input.RelatedSkills != nil
	changes, err := s.repo.Update(ctx, input.project(id), input.skillIDs(), replaceSkills)
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		// the row may have been deleted since the existence check
		stillExists, existsErr := s.repo.Exists(ctx, id)
		if existsErr == nil && !stillExists {
			return nil, errs.NewNotFound("project")
		}
		return nil, errs.NewConcurrencyConflictError("project", err)
	}
	if err != nil {
		return nil, dbError("update", "project", err)
	}

	s.logger.Info().
		Str("projectID", id.String()).
		Bool("skillsReplaced", replaceSkills).
		Int("linksAdded", changes.Added).
		Int("linksRemoved", changes.Removed).
		Msg("Project updated")
	return s.Get(ctx, id)
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return dbError("delete", "project", err)
	}

	s.logger.Info().Str("projectID", id.String()).Msg("Project deleted")
	return nil
}

// LinkSkill links a skill to a project. Linking an already linked pair
// succeeds without adding a row.
func (s *ProjectService) LinkSkill(ctx context.Context, projectID, skillID uuid.UUID) (*LinkResult, error) {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, dbError("get", "project", err)
	}
	skill, err := s.skillRepo.FindByID(ctx, skillID)
	if err != nil {
		return nil, dbError("get", "skill", err)
	}

	created, err := s.repo.LinkSkill(ctx, projectID, skillID)
	if err != nil {
		return nil, dbError("link", "project skill", err)
	}

	return &LinkResult{
		Message: fmt.Sprintf("Project %s is now linked to %s", project.Title, skill.Name),
		Created: created,
	}, nil
}

// UnlinkSkill removes the link if present. A missing project or skill is an
// error, a missing link is not.
func (s *ProjectService) UnlinkSkill(ctx context.Context, projectID, skillID uuid.UUID) error {
	removed, err := s.repo.UnlinkSkill(ctx, projectID, skillID)
	if err != nil {
		return dbError("unlink", "project skill", err)
	}
	if !removed {
		s.logger.Debug().
			Str("projectID", projectID.String()).
			Str("skillID", skillID.String()).
			Msg("Skill was not linked to project")
	}
	return nil
}
