package database

import (
	"context"

	"github.com/rpupo63/portfolio-resume-backend/errs"
	"gorm.io/gorm"
)

type Database struct {
	db              *gorm.DB
	categoryRepo    *CategoryRepo
	skillRepo       *SkillRepo
	projectRepo     *ProjectRepo
	certificateRepo *CertificateRepo
	languageRepo    *LanguageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:              db,
		categoryRepo:    NewCategoryRepo(db),
		skillRepo:       NewSkillRepo(db),
		projectRepo:     NewProjectRepo(db),
		certificateRepo: NewCertificateRepo(db),
		languageRepo:    NewLanguageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) CertificateRepo() *CertificateRepo {
	return d.certificateRepo
}

func (d Database) LanguageRepo() *LanguageRepo {
	return d.languageRepo
}

// Ping checks that the primary connection answers.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// MigrateTo applies pending migrations, or rolls back to targetID when it is
// set.
func (d Database) MigrateTo(targetID string) error {
	if targetID == "" {
		return Migrate(d.db)
	}
	if !HasMigration(targetID) {
		return errs.BadRequest("unknown migration " + targetID)
	}
	return RollbackTo(d.db, targetID)
}
