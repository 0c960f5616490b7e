package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return &SkillRepo{db}
}

func preloadCategories(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// FindAll returns all skills with their categories, ordered by name
func (r *SkillRepo) FindAll(ctx context.Context) ([]*models.Skill, error) {
	skills := make([]*models.Skill, 0)
	err := r.db.WithContext(ctx).
		Preload("Categories", preloadCategories).
		Order("name ASC").
		Find(&skills).Error
	return skills, err
}

// FindByID returns a skill with its categories
func (r *SkillRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).
		Preload("Categories", preloadCategories).
		First(&skill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("skill")
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// Add inserts a skill and links it to the given categories that exist.
func (r *SkillRepo) Add(ctx context.Context, skill *models.Skill, categoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(skill).Error; err != nil {
			return err
		}

		ids, err := existingIDs(tx, &models.Category{}, categoryIDs)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		links := make([]models.SkillCategory, 0, len(ids))
		for _, categoryID := range ids {
			links = append(links, models.SkillCategory{SkillID: skill.ID, CategoryID: categoryID})
		}
		_, err = insertIgnoringDuplicates(tx, &links)
		return err
	})
}

// Update overwrites the scalar fields of skill and reconciles its category
// links as a set difference: only links whose category left the list are
// deleted and only missing ones are inserted.
func (r *SkillRepo) Update(ctx context.Context, skill *models.Skill, categoryIDs []uuid.UUID) (LinkChanges, error) {
	var changes LinkChanges

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Skill{ID: skill.ID}).Updates(map[string]interface{}{
			"name":                skill.Name,
			"description":         skill.Description,
			"personal_conclusion": skill.PersonalConclusion,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("skill")
		}

		var current []uuid.UUID
		if err := tx.Model(&models.SkillCategory{}).
			Where("skill_id = ?", skill.ID).
			Pluck("category_id", &current).Error; err != nil {
			return err
		}

		desired, err := existingIDs(tx, &models.Category{}, categoryIDs)
		if err != nil {
			return err
		}

		toRemove, toAdd := diffIDs(current, desired)

		if len(toRemove) > 0 {
			removed := tx.Where("skill_id = ? AND category_id IN ?", skill.ID, toRemove).
				Delete(&models.SkillCategory{})
			if removed.Error != nil {
				return removed.Error
			}
			changes.Removed = int(removed.RowsAffected)
		}

		if len(toAdd) > 0 {
			links := make([]models.SkillCategory, 0, len(toAdd))
			for _, categoryID := range toAdd {
				links = append(links, models.SkillCategory{SkillID: skill.ID, CategoryID: categoryID})
			}
			added, err := insertIgnoringDuplicates(tx, &links)
			if err != nil {
				return err
			}
			changes.Added = int(added)
		}
		return nil
	})

	return changes, err
}

// UpdateImagePath stores the public path of the skill image
func (r *SkillRepo) UpdateImagePath(ctx context.Context, id uuid.UUID, imagePath string) error {
	result := r.db.WithContext(ctx).Model(&models.Skill{ID: id}).Update("image_path", imagePath)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("skill")
	}
	return nil
}

// Delete removes a skill together with its category and project links
func (r *SkillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("skill_id = ?", id).Delete(&models.SkillCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("skill_id = ?", id).Delete(&models.ProjectSkill{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Skill{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("skill")
		}
		return nil
	})
}

// Exists reports whether a skill with the given id is stored
func (r *SkillRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Skill{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
