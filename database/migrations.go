package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migration ids, oldest first.
const (
	MigrationInitial      = "202406010001_initial"
	MigrationCertificates = "202406150001_certificates"
	MigrationLanguages    = "202407010001_languages_and_project_links"
)

// The structs below freeze each table as it looked when its migration was
// written. They must not follow later changes to the models package.

type categoryV1 struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;not null"`
	Name string    `gorm:"type:varchar(100);not null"`
}

func (categoryV1) TableName() string { return "categories" }

type skillV1 struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;not null"`
	Name               string    `gorm:"type:varchar(100);not null"`
	Description        string    `gorm:"type:text;not null;default:''"`
	PersonalConclusion string    `gorm:"type:text;not null;default:''"`
	ImagePath          string    `gorm:"type:text;not null;default:''"`
}

func (skillV1) TableName() string { return "skills" }

type projectV1 struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;not null"`
	Title       string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	CodeSnippet *string   `gorm:"type:text"`
	Status      string    `gorm:"type:text;not null;default:'in progress'"`
}

func (projectV1) TableName() string { return "projects" }

type skillCategoryV1 struct {
	SkillID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID  `gorm:"type:uuid;primaryKey;index"`
	Skill      skillV1    `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
	Category   categoryV1 `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

func (skillCategoryV1) TableName() string { return "skill_categories" }

type projectSkillV1 struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	SkillID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Project   projectV1 `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Skill     skillV1   `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

func (projectSkillV1) TableName() string { return "project_skills" }

type certificateV2 struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;not null"`
	Title     string         `gorm:"type:text;not null"`
	Issuer    string         `gorm:"type:text;not null;default:''"`
	IssueDate *datatypes.Date
}

func (certificateV2) TableName() string { return "certificates" }

type certificateImageV2 struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey;not null"`
	ImagePath     string        `gorm:"type:text;not null"`
	CertificateID uuid.UUID     `gorm:"type:uuid;not null;index:idx_certificate_image_certificate_id"`
	Certificate   certificateV2 `gorm:"foreignKey:CertificateID;constraint:OnDelete:CASCADE"`
}

func (certificateImageV2) TableName() string { return "certificate_images" }

type languageV3 struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey;not null"`
	Name  string    `gorm:"type:text;not null"`
	Level string    `gorm:"type:text;not null;default:''"`
}

func (languageV3) TableName() string { return "languages" }

type projectV3 struct {
	GithubURL   *string `gorm:"column:github_url;type:text"`
	LiveDemoURL *string `gorm:"column:live_demo_url;type:text"`
}

func (projectV3) TableName() string { return "projects" }

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: MigrationInitial,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&categoryV1{}, &skillV1{}, &projectV1{}, &skillCategoryV1{}, &projectSkillV1{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&projectSkillV1{}, &skillCategoryV1{}, &projectV1{}, &skillV1{}, &categoryV1{})
			},
		},
		{
			ID: MigrationCertificates,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(&certificateV2{}, &certificateImageV2{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(&certificateImageV2{}, &certificateV2{})
			},
		},
		{
			ID: MigrationLanguages,
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Migrator().CreateTable(&languageV3{}); err != nil {
					return err
				}
				for _, field := range []string{"GithubURL", "LiveDemoURL"} {
					if tx.Migrator().HasColumn(&projectV3{}, field) {
						continue
					}
					if err := tx.Migrator().AddColumn(&projectV3{}, field); err != nil {
						return err
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				for _, field := range []string{"LiveDemoURL", "GithubURL"} {
					if !tx.Migrator().HasColumn(&projectV3{}, field) {
						continue
					}
					if err := tx.Migrator().DropColumn(&projectV3{}, field); err != nil {
						return err
					}
				}
				return tx.Migrator().DropTable(&languageV3{})
			},
		},
	}
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	return gormigrate.New(db, gormigrate.DefaultOptions, migrations())
}

// Migrate applies every pending migration in order.
func Migrate(db *gorm.DB) error {
	if err := newMigrator(db).Migrate(); err != nil {
		return errs.NewMigrationError("latest", err)
	}
	return nil
}

// RollbackTo undoes every migration applied after migrationID.
func RollbackTo(db *gorm.DB, migrationID string) error {
	if err := newMigrator(db).RollbackTo(migrationID); err != nil {
		return errs.NewMigrationError(migrationID, err)
	}
	return nil
}

// HasMigration reports whether migrationID names a known migration.
func HasMigration(migrationID string) bool {
	for _, m := range migrations() {
		if m.ID == migrationID {
			return true
		}
	}
	return false
}
