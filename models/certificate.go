package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Certificate owns its images; deleting it removes the image rows.
type Certificate struct {
	ID        uuid.UUID          `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string             `json:"title" db:"title" gorm:"type:text;not null"`
	Issuer    string             `json:"issuer" db:"issuer" gorm:"type:text;not null;default:''"`
	IssueDate *datatypes.Date    `json:"issueDate,omitempty" db:"issue_date"`
	Images    []CertificateImage `json:"images" gorm:"foreignKey:CertificateID;references:ID;constraint:OnDelete:CASCADE"`
}

// CertificateImage is one scanned page of a certificate.
type CertificateImage struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ImagePath     string    `json:"imagePath" db:"image_path" gorm:"type:text;not null"`
	CertificateID uuid.UUID `json:"certificateId" db:"certificate_id" gorm:"type:uuid;not null;index:idx_certificate_image_certificate_id"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Certificate) AfterFind(tx *gorm.DB) error {
	if c.Images == nil {
		c.Images = []CertificateImage{}
	}
	return nil
}

func (i *CertificateImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
