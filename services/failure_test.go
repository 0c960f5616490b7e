package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// flakyStore fails the failSaveAt-th Save (1-based) and, when failDeletes is
// set, every Delete.
type flakyStore struct {
	storage.MediaStore

	mu          sync.Mutex
	saves       int
	failSaveAt  int
	failDeletes atomic.Bool
}

func (s *flakyStore) Save(ctx context.Context, key string, r io.Reader) error {
	s.mu.Lock()
	s.saves++
	n := s.saves
	s.mu.Unlock()

	if s.failSaveAt > 0 && n == s.failSaveAt {
		return errors.New("disk full")
	}
	return s.MediaStore.Save(ctx, key, r)
}

func (s *flakyStore) Delete(ctx context.Context, key string) error {
	if s.failDeletes.Load() {
		return errors.New("permission denied")
	}
	return s.MediaStore.Delete(ctx, key)
}

func newFlakyFixture(t *testing.T, flaky *flakyStore) fixture {
	return newFixtureWithStore(t, func(store storage.MediaStore) storage.MediaStore {
		flaky.MediaStore = store
		return flaky
	})
}

func TestCertificateUploadKeepsEarlierFiles(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyStore{failSaveAt: 3}
	f := newFlakyFixture(t, flaky)

	certificate, err := f.services.Certificates.Create(ctx, CertificateInput{Title: "CKA"})
	require.NoError(t, err)

	_, err = f.services.Certificates.UploadImages(ctx, certificate.ID, []Upload{
		upload("1.png", "one"),
		upload("2.png", "two"),
		upload("3.png", "three"),
		upload("4.png", "four"),
	})
	require.Error(t, err)
	assert.True(t, errs.IsMediaStoreError(err), "got %v", err)
	assert.Equal(t, 500, errs.StatusOf(err))

	stored, err := f.services.Certificates.Get(ctx, certificate.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 2)
	for _, image := range stored.Images {
		assert.FileExists(t, f.fileFor(t, image.ImagePath))
	}

	t.Run("delete ignores file errors", func(t *testing.T) {
		flaky.failDeletes.Store(true)

		require.NoError(t, f.services.Certificates.Delete(ctx, certificate.ID))

		_, err := f.services.Certificates.Get(ctx, certificate.ID)
		assert.Equal(t, 404, errs.StatusOf(err))
		certificates, err := f.services.Certificates.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, certificates)

		for _, image := range stored.Images {
			assert.FileExists(t, f.fileFor(t, image.ImagePath))
		}
	})
}

func TestSkillIgnoresMediaDeleteErrors(t *testing.T) {
	ctx := context.Background()
	flaky := &flakyStore{}
	flaky.failDeletes.Store(true)
	f := newFlakyFixture(t, flaky)

	skill, err := f.services.Skills.Create(ctx, SkillInput{Name: "Go"})
	require.NoError(t, err)

	first, err := f.services.Skills.UploadImage(ctx, skill.ID, upload("gopher.png", "first"))
	require.NoError(t, err)
	second, err := f.services.Skills.UploadImage(ctx, skill.ID, upload("gopher.png", "second"))
	require.NoError(t, err)
	assert.FileExists(t, f.fileFor(t, first))

	require.NoError(t, f.services.Skills.Delete(ctx, skill.ID))

	_, err = f.services.Skills.Get(ctx, skill.ID)
	assert.Equal(t, 404, errs.StatusOf(err))
	assert.FileExists(t, f.fileFor(t, second))
}

func TestProjectUpdateConflict(t *testing.T) {
	ctx := context.Background()

	t.Run("project deleted meanwhile", func(t *testing.T) {
		f := newFixture(t)
		project, err := f.services.Projects.Create(ctx, ProjectInput{Title: "CLI", Description: "a tool"})
		require.NoError(t, err)

		// the project disappears right after the existence check
		var armed atomic.Bool
		armed.Store(true)
		require.NoError(t, f.db.Callback().Query().After("gorm:query").Register("test:delete_project", func(tx *gorm.DB) {
			if tx.Statement.Table != "projects" || !armed.CompareAndSwap(true, false) {
				return
			}
			tx.AddError(tx.Session(&gorm.Session{NewDB: true}).Exec("DELETE FROM projects WHERE id = ?", project.ID).Error)
		}))

		_, err = f.services.Projects.Update(ctx, project.ID, ProjectInput{ID: &project.ID, Title: "CLI", Description: "a tool"})
		assert.True(t, errs.IsNotFound(err), "got %v", err)
		assert.Equal(t, 404, errs.StatusOf(err))
	})

	t.Run("project still present", func(t *testing.T) {
		f := newFixture(t)
		project, err := f.services.Projects.Create(ctx, ProjectInput{Title: "CLI", Description: "a tool"})
		require.NoError(t, err)

		// the update matches no row although the project exists
		require.NoError(t, f.db.Callback().Update().Before("gorm:update").Register("test:miss_row", func(tx *gorm.DB) {
			if tx.Statement.Table == "projects" {
				tx.Statement.AddClause(clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "1 = 0"}}})
			}
		}))

		_, err = f.services.Projects.Update(ctx, project.ID, ProjectInput{ID: &project.ID, Title: "CLI v2", Description: "a tool"})
		assert.True(t, errs.IsConcurrencyConflictError(err), "got %v", err)
		assert.Equal(t, 500, errs.StatusOf(err))
	})
}

func TestSkillUpdateRejectedByStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	skill, err := f.services.Skills.Create(ctx, SkillInput{Name: "Go"})
	require.NoError(t, err)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = f.services.Skills.Update(ctx, skill.ID, SkillInput{Name: "Golang"})
	assert.True(t, errs.IsPersistenceError(err), "got %v", err)
	assert.Equal(t, 400, errs.StatusOf(err))
}
