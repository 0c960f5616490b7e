package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusInProgress = "in progress"
	ProjectStatusCompleted  = "completed"
)

// Project represents a showcased project with the skills it used
type Project struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description   string    `json:"description" db:"description" gorm:"type:text;not null"`
	CodeSnippet   *string   `json:"codeSnippet,omitempty" db:"code_snippet" gorm:"type:text"`
	GithubURL     *string   `json:"githubUrl,omitempty" db:"github_url" gorm:"column:github_url;type:text"`
	LiveDemoURL   *string   `json:"liveDemoUrl,omitempty" db:"live_demo_url" gorm:"column:live_demo_url;type:text"`
	Status        string    `json:"status" db:"status" gorm:"type:text;not null;default:'in progress'"`
	RelatedSkills []Skill   `json:"relatedSkills" gorm:"many2many:project_skills;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = ProjectStatusInProgress
	}
	return nil
}

func (p *Project) AfterFind(tx *gorm.DB) error {
	if p.RelatedSkills == nil {
		p.RelatedSkills = []Skill{}
	}
	return nil
}

// SkillIDs returns the ids of the loaded related skills.
func (p *Project) SkillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.RelatedSkills))
	for _, skill := range p.RelatedSkills {
		ids = append(ids, skill.ID)
	}
	return ids
}
