package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Language is a spoken language with a free-text proficiency level
type Language struct {
	ID    uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name  string    `json:"name" db:"name" gorm:"type:text;not null"`
	Level string    `json:"level" db:"level" gorm:"type:text;not null;default:''"`
}

func (l *Language) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
