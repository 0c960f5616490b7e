package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill represents a skill card of the resume with its categories
type Skill struct {
	ID                 uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name               string     `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Description        string     `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	PersonalConclusion string     `json:"personalConclusion" db:"personal_conclusion" gorm:"type:text;not null;default:''"`
	ImagePath          string     `json:"imagePath" db:"image_path" gorm:"type:text;not null;default:''"`
	Categories         []Category `json:"categories" gorm:"many2many:skill_categories;constraint:OnDelete:CASCADE"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s *Skill) AfterFind(tx *gorm.DB) error {
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	return nil
}

// CategoryIDs returns the ids of the loaded categories.
func (s *Skill) CategoryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Categories))
	for _, category := range s.Categories {
		ids = append(ids, category.ID)
	}
	return ids
}
