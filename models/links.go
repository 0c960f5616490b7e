package models

import "github.com/google/uuid"

// SkillCategory is a row of the skills <-> categories join table.
type SkillCategory struct {
	SkillID    uuid.UUID `json:"skillId" db:"skill_id" gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;primaryKey"`
}

func (SkillCategory) TableName() string {
	return "skill_categories"
}

// ProjectSkill is a row of the projects <-> skills join table.
type ProjectSkill struct {
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;primaryKey"`
	SkillID   uuid.UUID `json:"skillId" db:"skill_id" gorm:"type:uuid;primaryKey"`
}

func (ProjectSkill) TableName() string {
	return "project_skills"
}
