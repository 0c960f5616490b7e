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

type CertificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("image_path ASC")
}

// FindAll returns all certificates with their images, ordered by title
func (r *CertificateRepo) FindAll(ctx context.Context) ([]*models.Certificate, error) {
	certificates := make([]*models.Certificate, 0)
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Order("title ASC").
		Find(&certificates).Error
	return certificates, err
}

// FindByID returns a certificate with its images
func (r *CertificateRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		First(&certificate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("certificate")
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Add inserts a certificate without images
func (r *CertificateRepo) Add(ctx context.Context, certificate *models.Certificate) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(certificate).Error
}

// AddImages records the given image paths for a certificate in one transaction.
func (r *CertificateRepo) AddImages(ctx context.Context, certificateID uuid.UUID, imagePaths []string) ([]models.CertificateImage, error) {
	images := make([]models.CertificateImage, 0, len(imagePaths))
	for _, path := range imagePaths {
		images = append(images, models.CertificateImage{CertificateID: certificateID, ImagePath: path})
	}
	if len(images) == 0 {
		return images, nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Certificate{}, certificateID, "certificate"); err != nil {
			return err
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Delete removes a certificate and its image rows, returning the removed
// image paths so the files can be cleaned up.
func (r *CertificateRepo) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	var paths []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CertificateImage{}).
			Where("certificate_id = ?", id).
			Pluck("image_path", &paths).Error; err != nil {
			return err
		}

		if err := tx.Where("certificate_id = ?", id).Delete(&models.CertificateImage{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Certificate{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFound("certificate")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// CountImages returns the number of image rows stored for a certificate
func (r *CertificateRepo) CountImages(ctx context.Context, certificateID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CertificateImage{}).
		Where("certificate_id = ?", certificateID).
		Count(&count).Error
	return count, err
}
