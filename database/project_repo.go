package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) withSkills(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("RelatedSkills", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("RelatedSkills.Categories", preloadCategories)
}

// FindAll returns all projects, completed ones first, then by title
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	projects := make([]*models.Project, 0)
	err := r.withSkills(ctx).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "CASE WHEN status = ? THEN 0 ELSE 1 END, title ASC",
			Vars: []interface{}{models.ProjectStatusCompleted},
		}}).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project with its related skills and their categories
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.withSkills(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("project")
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Exists reports whether a project with the given id is stored
func (r *ProjectRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Add inserts a project and links it to the given skills that exist.
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project, skillIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		_, err := r.linkSkills(tx, project.ID, skillIDs)
		return err
	})
}

// Update overwrites the scalar fields of project. When replaceSkills is set
// every existing skill link is dropped and the resolved skillIDs are linked
// again, even when the set did not change.
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project, skillIDs []uuid.UUID, replaceSkills bool) (LinkChanges, error) {
	var changes LinkChanges

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Project{ID: project.ID}).Updates(map[string]interface{}{
			"title":         project.Title,
			"description":   project.Description,
			"code_snippet":  project.CodeSnippet,
			"github_url":    project.GithubURL,
			"live_demo_url": project.LiveDemoURL,
			"status":        project.Status,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("project %s: no row updated: %w", project.ID, errs.ErrConcurrencyConflict)
		}

		if !replaceSkills {
			return nil
		}

		removed := tx.Where("project_id = ?", project.ID).Delete(&models.ProjectSkill{})
		if removed.Error != nil {
			return removed.Error
		}
		changes.Removed = int(removed.RowsAffected)

		added, err := r.linkSkills(tx, project.ID, skillIDs)
		if err != nil {
			return err
		}
		changes.Added = int(added)
		return nil
	})

	return changes, err
}

func (r *ProjectRepo) linkSkills(tx *gorm.DB, projectID uuid.UUID, skillIDs []uuid.UUID) (int64, error) {
	ids, err := existingIDs(tx, &models.Skill{}, skillIDs)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	links := make([]models.ProjectSkill, 0, len(ids))
	for _, skillID := range ids {
		links = append(links, models.ProjectSkill{ProjectID: projectID, SkillID: skillID})
	}
	return insertIgnoringDuplicates(tx, &links)
}

// Delete removes a project and its skill links. The skills are untouched.
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectSkill{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("project")
		}
		return nil
	})
}

// LinkSkill adds a single project-skill link. created is false when the link
// was already present.
func (r *ProjectRepo) LinkSkill(ctx context.Context, projectID, skillID uuid.UUID) (created bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Project{}, projectID, "project"); err != nil {
			return err
		}
		if err := requireRow(tx, &models.Skill{}, skillID, "skill"); err != nil {
			return err
		}

		added, err := insertIgnoringDuplicates(tx, &models.ProjectSkill{ProjectID: projectID, SkillID: skillID})
		if err != nil {
			return err
		}
		created = added > 0
		return nil
	})
	return created, err
}

// UnlinkSkill removes a single project-skill link. removed is false when no
// such link existed. Both rows must exist.
func (r *ProjectRepo) UnlinkSkill(ctx context.Context, projectID, skillID uuid.UUID) (removed bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Project{}, projectID, "project"); err != nil {
			return err
		}
		if err := requireRow(tx, &models.Skill{}, skillID, "skill"); err != nil {
			return err
		}

		result := tx.Where("project_id = ? AND skill_id = ?", projectID, skillID).
			Delete(&models.ProjectSkill{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		return nil
	})
	return removed, err
}

// requireRow returns a not found error naming entity when id has no row.
func requireRow(tx *gorm.DB, model interface{}, id uuid.UUID, entity string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewNotFound(entity)
	}
	return nil
}
