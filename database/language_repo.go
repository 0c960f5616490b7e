package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"gorm.io/gorm"
)

type LanguageRepo struct {
	db *gorm.DB
}

func NewLanguageRepo(db *gorm.DB) *LanguageRepo {
	return &LanguageRepo{db}
}

// FindAll returns all languages ordered by name
func (r *LanguageRepo) FindAll(ctx context.Context) ([]*models.Language, error) {
	languages := make([]*models.Language, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&languages).Error
	return languages, err
}

// FindByID returns a language by its ID
func (r *LanguageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Language, error) {
	var language models.Language
	err := r.db.WithContext(ctx).First(&language, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("language")
	}
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// Add inserts a new language into the database
func (r *LanguageRepo) Add(ctx context.Context, language *models.Language) error {
	return r.db.WithContext(ctx).Create(language).Error
}

// Delete removes a language by id
func (r *LanguageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Language{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("language")
	}
	return nil
}
