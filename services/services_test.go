package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/database/dbtest"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	services *Services
	db       *gorm.DB
	store    *storage.LocalStore
	root     string
}

func newFixture(t *testing.T) fixture {
	return newFixtureWithStore(t, nil)
}

// newFixtureWithStore builds the services over wrap(local store) when wrap is
// given.
func newFixtureWithStore(t *testing.T, wrap func(storage.MediaStore) storage.MediaStore) fixture {
	t.Helper()

	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	require.NoError(t, err)

	var media storage.MediaStore = store
	if wrap != nil {
		media = wrap(store)
	}

	db := dbtest.New(t)
	return fixture{
		services: New(database.New(db), media),
		db:       db,
		store:    store,
		root:     root,
	}
}

// fileFor maps a public path to the file the local store wrote.
func (f fixture) fileFor(t *testing.T, publicPath string) string {
	t.Helper()
	key, err := storage.KeyFromPath(publicPath)
	require.NoError(t, err)
	return filepath.Join(f.root, filepath.FromSlash(key))
}

func upload(name, content string) Upload {
	return Upload{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

func TestCategoryNameLength(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "two characters", input: "Go", valid: true},
		{name: "hundred characters", input: strings.Repeat("a", 100), valid: true},
		{name: "multibyte counted as runes", input: "Бд", valid: true},
		{name: "one character", input: "a"},
		{name: "too long", input: strings.Repeat("a", 101)},
		{name: "blank", input: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := f.services.Categories.Create(ctx, CategoryInput{Name: tt.input})
			if !tt.valid {
				assert.True(t, errs.IsValidationError(err), "got %v", err)
				assert.Equal(t, 400, errs.StatusOf(err))
				return
			}
			require.NoError(t, err)

			categories, err := f.services.Categories.List(ctx)
			require.NoError(t, err)
			matches := 0
			for _, category := range categories {
				if category.ID == created.ID {
					matches++
					assert.Equal(t, tt.input, category.Name)
				}
			}
			assert.Equal(t, 1, matches)
		})
	}
}

func TestCategoryDeleteNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.services.Categories.Delete(context.Background(), uuid.New())
	assert.Equal(t, 404, errs.StatusOf(err))
}

func TestSkillLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	backend, err := f.services.Categories.Create(ctx, CategoryInput{Name: "Backend"})
	require.NoError(t, err)
	tools, err := f.services.Categories.Create(ctx, CategoryInput{Name: "Tools"})
	require.NoError(t, err)

	skill, err := f.services.Skills.Create(ctx, SkillInput{
		Name:        "Go",
		Description: "services and CLIs",
		CategoryIDs: []uuid.UUID{backend.ID, tools.ID, uuid.New()},
	})
	require.NoError(t, err)
	assert.Equal(t, "", skill.ImagePath)
	assert.Len(t, skill.Categories, 2)

	updated, err := f.services.Skills.Update(ctx, skill.ID, SkillInput{
		Name:               "Go",
		PersonalConclusion: "my default choice",
		CategoryIDs:        []uuid.UUID{tools.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "my default choice", updated.PersonalConclusion)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, []uuid.UUID{tools.ID}, updated.CategoryIDs())

	_, err = f.services.Skills.Update(ctx, uuid.New(), SkillInput{Name: "Rust"})
	assert.Equal(t, 404, errs.StatusOf(err))

	_, err = f.services.Skills.Update(ctx, skill.ID, SkillInput{Name: "G"})
	assert.True(t, errs.IsValidationError(err))

	require.NoError(t, f.services.Skills.Delete(ctx, skill.ID))
	_, err = f.services.Skills.Get(ctx, skill.ID)
	assert.Equal(t, 404, errs.StatusOf(err))
}

func TestSkillUploadReplacesImage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	skill, err := f.services.Skills.Create(ctx, SkillInput{Name: "Docker"})
	require.NoError(t, err)

	first, err := f.services.Skills.UploadImage(ctx, skill.ID, upload("whale.PNG", "first"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first, "/uploads/skills/"), first)
	assert.True(t, strings.HasSuffix(first, ".png"), first)
	assert.FileExists(t, f.fileFor(t, first))

	second, err := f.services.Skills.UploadImage(ctx, skill.ID, upload("whale.jpg", "second"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.NoFileExists(t, f.fileFor(t, first))

	data, err := os.ReadFile(f.fileFor(t, second))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	stored, err := f.services.Skills.Get(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, second, stored.ImagePath)

	t.Run("empty file", func(t *testing.T) {
		_, err := f.services.Skills.UploadImage(ctx, skill.ID, upload("empty.png", ""))
		assert.True(t, errs.IsValidationError(err))
	})

	t.Run("unknown skill", func(t *testing.T) {
		_, err := f.services.Skills.UploadImage(ctx, uuid.New(), upload("a.png", "x"))
		assert.Equal(t, 404, errs.StatusOf(err))
	})

	t.Run("delete removes the file", func(t *testing.T) {
		require.NoError(t, f.services.Skills.Delete(ctx, skill.ID))
		assert.NoFileExists(t, f.fileFor(t, second))
	})
}

func TestProjectUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var ids []uuid.UUID
	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		skill, err := f.services.Skills.Create(ctx, SkillInput{Name: name})
		require.NoError(t, err)
		ids = append(ids, skill.ID)
	}

	project, err := f.services.Projects.Create(ctx, ProjectInput{
		Title:         "Portfolio",
		Description:   "this site",
		RelatedSkills: []SkillRef{{ID: ids[0]}, {ID: ids[1]}},
	})
	require.NoError(t, err)
	assert.Equal(t, "in progress", project.Status)
	assert.ElementsMatch(t, ids[:2], project.SkillIDs())

	t.Run("related skills are replaced", func(t *testing.T) {
		updated, err := f.services.Projects.Update(ctx, project.ID, ProjectInput{
			ID:            &project.ID,
			Title:         "Portfolio",
			Description:   "this site",
			Status:        "completed",
			RelatedSkills: []SkillRef{{ID: ids[1]}, {ID: ids[2]}},
		})
		require.NoError(t, err)
		assert.Equal(t, "completed", updated.Status)
		assert.ElementsMatch(t, []uuid.UUID{ids[1], ids[2]}, updated.SkillIDs())
	})

	t.Run("absent list keeps links", func(t *testing.T) {
		updated, err := f.services.Projects.Update(ctx, project.ID, ProjectInput{ID: &project.ID, Title: "Portfolio v2", Description: "this site"})
		require.NoError(t, err)
		assert.Equal(t, "Portfolio v2", updated.Title)
		assert.Len(t, updated.RelatedSkills, 2)
	})

	t.Run("empty list clears links", func(t *testing.T) {
		updated, err := f.services.Projects.Update(ctx, project.ID, ProjectInput{ID: &project.ID, Title: "Portfolio", Description: "this site", RelatedSkills: []SkillRef{}})
		require.NoError(t, err)
		assert.Empty(t, updated.RelatedSkills)
	})

	t.Run("id mismatch", func(t *testing.T) {
		other := uuid.New()
		_, err := f.services.Projects.Update(ctx, project.ID, ProjectInput{ID: &other, Title: "t", Description: "d"})
		assert.ErrorIs(t, err, errs.ErrIDMismatch)
		assert.Equal(t, 400, errs.StatusOf(err))
	})

	t.Run("absent id", func(t *testing.T) {
		_, err := f.services.Projects.Update(ctx, project.ID, ProjectInput{Title: "t", Description: "d"})
		assert.ErrorIs(t, err, errs.ErrIDMismatch)
		assert.Equal(t, 400, errs.StatusOf(err))
	})

	t.Run("missing project", func(t *testing.T) {
		missing := uuid.New()
		_, err := f.services.Projects.Update(ctx, missing, ProjectInput{ID: &missing, Title: "t", Description: "d"})
		assert.Equal(t, 404, errs.StatusOf(err))
	})

	t.Run("missing description", func(t *testing.T) {
		_, err := f.services.Projects.Update(ctx, project.ID, ProjectInput{ID: &project.ID, Title: "t"})
		assert.True(t, errs.IsMissingRequiredFieldError(err))
	})
}

func TestProjectLinkSkill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	skill, err := f.services.Skills.Create(ctx, SkillInput{Name: "Go"})
	require.NoError(t, err)
	project, err := f.services.Projects.Create(ctx, ProjectInput{Title: "CLI", Description: "a tool"})
	require.NoError(t, err)

	result, err := f.services.Projects.LinkSkill(ctx, project.ID, skill.ID)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "Project CLI is now linked to Go", result.Message)

	result, err = f.services.Projects.LinkSkill(ctx, project.ID, skill.ID)
	require.NoError(t, err)
	assert.False(t, result.Created)

	stored, err := f.services.Projects.Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, stored.RelatedSkills, 1)

	_, err = f.services.Projects.LinkSkill(ctx, project.ID, uuid.New())
	assert.Equal(t, 404, errs.StatusOf(err))

	require.NoError(t, f.services.Projects.UnlinkSkill(ctx, project.ID, skill.ID))
	require.NoError(t, f.services.Projects.UnlinkSkill(ctx, project.ID, skill.ID))
	assert.Equal(t, 404, errs.StatusOf(f.services.Projects.UnlinkSkill(ctx, project.ID, uuid.New())))
	assert.Equal(t, 404, errs.StatusOf(f.services.Projects.UnlinkSkill(ctx, uuid.New(), skill.ID)))
}

func TestCertificateLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	issued := "2024-03-15"
	certificate, err := f.services.Certificates.Create(ctx, CertificateInput{Title: "CKA", Issuer: "CNCF", IssueDate: &issued})
	require.NoError(t, err)
	require.NotNil(t, certificate.IssueDate)
	assert.Empty(t, certificate.Images)

	certificate, err = f.services.Certificates.UploadImages(ctx, certificate.ID, []Upload{
		upload("page1.png", "1"),
		upload("page2.png", "2"),
		upload("page3.JPG", "3"),
	})
	require.NoError(t, err)
	require.Len(t, certificate.Images, 3)

	var files []string
	for _, image := range certificate.Images {
		assert.True(t, strings.HasPrefix(image.ImagePath, "/uploads/certificates/"), image.ImagePath)
		file := f.fileFor(t, image.ImagePath)
		assert.FileExists(t, file)
		files = append(files, file)
	}

	require.NoError(t, f.services.Certificates.Delete(ctx, certificate.ID))

	for _, file := range files {
		assert.NoFileExists(t, file)
	}
	count, err := f.services.Certificates.repo.CountImages(ctx, certificate.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	certificates, err := f.services.Certificates.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, certificates)

	assert.Equal(t, 404, errs.StatusOf(f.services.Certificates.Delete(ctx, certificate.ID)))
}

func TestCertificateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.services.Certificates.Create(ctx, CertificateInput{Issuer: "CNCF"})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	bad := "15/03/2024"
	_, err = f.services.Certificates.Create(ctx, CertificateInput{Title: "CKA", IssueDate: &bad})
	assert.True(t, errs.IsInvalidFieldError(err))

	certificate, err := f.services.Certificates.Create(ctx, CertificateInput{Title: "CKA"})
	require.NoError(t, err)
	assert.Nil(t, certificate.IssueDate)

	_, err = f.services.Certificates.UploadImages(ctx, certificate.ID, nil)
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	_, err = f.services.Certificates.UploadImages(ctx, uuid.New(), []Upload{upload("a.png", "a")})
	assert.Equal(t, 404, errs.StatusOf(err))
}

func TestParseIssueDate(t *testing.T) {
	for _, raw := range []string{"2024-03-15", " 2024-03-15T23:30:00Z "} {
		raw := raw
		date, err := parseIssueDate(&raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "2024-03-15", time.Time(*date).Format(time.DateOnly))
	}

	empty := ""
	date, err := parseIssueDate(&empty)
	require.NoError(t, err)
	assert.Nil(t, date)

	date, err = parseIssueDate(nil)
	require.NoError(t, err)
	assert.Nil(t, date)
}

func TestLanguages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	language, err := f.services.Languages.Create(ctx, LanguageInput{Name: "English", Level: "C1"})
	require.NoError(t, err)

	languages, err := f.services.Languages.List(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 1)

	_, err = f.services.Languages.Create(ctx, LanguageInput{Level: "B2"})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	require.NoError(t, f.services.Languages.Delete(ctx, language.ID))
	assert.Equal(t, 404, errs.StatusOf(f.services.Languages.Delete(ctx, language.ID)))
}
