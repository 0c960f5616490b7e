package database_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-resume-backend/database"
	"github.com/rpupo63/portfolio-resume-backend/database/dbtest"
	"github.com/rpupo63/portfolio-resume-backend/errs"
	"github.com/rpupo63/portfolio-resume-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDatabase(t *testing.T) database.Database {
	t.Helper()
	return database.New(dbtest.New(t))
}

func addCategories(t *testing.T, d database.Database, names ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		category := &models.Category{Name: name}
		require.NoError(t, d.CategoryRepo().Add(context.Background(), category))
		ids = append(ids, category.ID)
	}
	return ids
}

func addSkills(t *testing.T, d database.Database, names ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		skill := &models.Skill{Name: name}
		require.NoError(t, d.SkillRepo().Add(context.Background(), skill, nil))
		ids = append(ids, skill.ID)
	}
	return ids
}

func TestMigrateIsRepeatable(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, database.Migrate(db))
	for _, table := range []string{"categories", "skills", "projects", "skill_categories", "project_skills", "certificates", "certificate_images", "languages"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasColumn("projects", "github_url"))
	assert.True(t, db.Migrator().HasColumn("projects", "live_demo_url"))
}

func TestCategoryRepo(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	ids := addCategories(t, d, "Backend", "Frontend")

	categories, err := d.CategoryRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Backend", categories[0].Name)

	_, err = d.CategoryRepo().FindByID(ctx, uuid.New())
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, d.CategoryRepo().Delete(ctx, ids[0]))
	assert.True(t, errs.IsNotFound(d.CategoryRepo().Delete(ctx, ids[0])))
}

func TestCategoryDeleteKeepsLinkedSkills(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	categoryIDs := addCategories(t, d, "Backend", "Databases")
	for _, name := range []string{"Go", "PostgreSQL", "Redis"} {
		require.NoError(t, d.SkillRepo().Add(ctx, &models.Skill{Name: name}, categoryIDs))
	}

	require.NoError(t, d.CategoryRepo().Delete(ctx, categoryIDs[0]))

	skills, err := d.SkillRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 3)
	for _, skill := range skills {
		assert.Equal(t, []uuid.UUID{categoryIDs[1]}, skill.CategoryIDs(), skill.Name)
	}
}

func TestSkillRepoAddDropsUnknownCategories(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	categoryIDs := addCategories(t, d, "Backend")
	skill := &models.Skill{Name: "Go"}
	require.NoError(t, d.SkillRepo().Add(ctx, skill, []uuid.UUID{categoryIDs[0], uuid.New()}))

	stored, err := d.SkillRepo().FindByID(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, categoryIDs, stored.CategoryIDs())
	assert.Equal(t, "", stored.ImagePath)
}

func TestSkillRepoUpdateSetDiff(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	categoryIDs := addCategories(t, d, "A", "B", "C")
	skill := &models.Skill{Name: "Go"}
	require.NoError(t, d.SkillRepo().Add(ctx, skill, categoryIDs))

	t.Run("same set is a no-op", func(t *testing.T) {
		skill.Description = "systems language"
		changes, err := d.SkillRepo().Update(ctx, skill, []uuid.UUID{categoryIDs[2], categoryIDs[0], categoryIDs[1]})
		require.NoError(t, err)
		assert.True(t, changes.Unchanged())

		stored, err := d.SkillRepo().FindByID(ctx, skill.ID)
		require.NoError(t, err)
		assert.Equal(t, "systems language", stored.Description)
		assert.ElementsMatch(t, categoryIDs, stored.CategoryIDs())
	})

	t.Run("removing one id removes exactly that link", func(t *testing.T) {
		changes, err := d.SkillRepo().Update(ctx, skill, []uuid.UUID{categoryIDs[0], categoryIDs[2]})
		require.NoError(t, err)
		assert.Equal(t, database.LinkChanges{Removed: 1}, changes)

		stored, err := d.SkillRepo().FindByID(ctx, skill.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{categoryIDs[0], categoryIDs[2]}, stored.CategoryIDs())
	})

	t.Run("missing skill", func(t *testing.T) {
		_, err := d.SkillRepo().Update(ctx, &models.Skill{ID: uuid.New(), Name: "ghost"}, nil)
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestSkillRepoDeleteRemovesLinks(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	categoryIDs := addCategories(t, d, "Backend")
	skillIDs := addSkills(t, d, "Go")
	_, err := d.SkillRepo().Update(ctx, &models.Skill{ID: skillIDs[0], Name: "Go"}, categoryIDs)
	require.NoError(t, err)

	project := &models.Project{Title: "Portfolio", Description: "this site"}
	require.NoError(t, d.ProjectRepo().Add(ctx, project, skillIDs))

	require.NoError(t, d.SkillRepo().Delete(ctx, skillIDs[0]))

	stored, err := d.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RelatedSkills)

	_, err = d.CategoryRepo().FindByID(ctx, categoryIDs[0])
	assert.NoError(t, err)

	assert.True(t, errs.IsNotFound(d.SkillRepo().Delete(ctx, skillIDs[0])))
}

func TestProjectRepoFullReplace(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	skillIDs := addSkills(t, d, "A", "B", "C")
	project := &models.Project{Title: "Portfolio", Description: "this site"}
	require.NoError(t, d.ProjectRepo().Add(ctx, project, skillIDs[:2]))
	assert.Equal(t, models.ProjectStatusInProgress, project.Status)

	changes, err := d.ProjectRepo().Update(ctx, project, []uuid.UUID{skillIDs[1], skillIDs[2]}, true)
	require.NoError(t, err)
	// B is dropped and inserted again along with C
	assert.Equal(t, database.LinkChanges{Added: 2, Removed: 2}, changes)

	stored, err := d.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{skillIDs[1], skillIDs[2]}, stored.SkillIDs())

	changes, err = d.ProjectRepo().Update(ctx, project, nil, false)
	require.NoError(t, err)
	assert.True(t, changes.Unchanged())
}

func TestProjectRepoUpdateMissingRow(t *testing.T) {
	d := newDatabase(t)

	_, err := d.ProjectRepo().Update(context.Background(), &models.Project{ID: uuid.New(), Title: "t", Description: "d"}, nil, true)
	assert.True(t, errs.IsConcurrencyConflictError(err))
}

func TestProjectRepoOrdering(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	for _, p := range []models.Project{
		{Title: "Zeta", Description: "d", Status: models.ProjectStatusCompleted},
		{Title: "Alpha", Description: "d"},
		{Title: "Beta", Description: "d", Status: models.ProjectStatusCompleted},
		{Title: "Gamma", Description: "d", Status: "paused"},
	} {
		p := p
		require.NoError(t, d.ProjectRepo().Add(ctx, &p, nil))
	}

	projects, err := d.ProjectRepo().FindAll(ctx)
	require.NoError(t, err)

	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Beta", "Zeta", "Alpha", "Gamma"}, titles)
	assert.NotNil(t, projects[0].RelatedSkills)
}

func TestProjectRepoLinkAndUnlink(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	skillIDs := addSkills(t, d, "Go")
	project := &models.Project{Title: "Portfolio", Description: "this site"}
	require.NoError(t, d.ProjectRepo().Add(ctx, project, nil))

	created, err := d.ProjectRepo().LinkSkill(ctx, project.ID, skillIDs[0])
	require.NoError(t, err)
	assert.True(t, created)

	created, err = d.ProjectRepo().LinkSkill(ctx, project.ID, skillIDs[0])
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := d.ProjectRepo().FindByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, stored.RelatedSkills, 1)

	_, err = d.ProjectRepo().LinkSkill(ctx, project.ID, uuid.New())
	assert.True(t, errs.IsNotFound(err))

	removed, err := d.ProjectRepo().UnlinkSkill(ctx, project.ID, skillIDs[0])
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = d.ProjectRepo().UnlinkSkill(ctx, project.ID, skillIDs[0])
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = d.ProjectRepo().UnlinkSkill(ctx, project.ID, uuid.New())
	assert.True(t, errs.IsNotFound(err))
	_, err = d.ProjectRepo().UnlinkSkill(ctx, uuid.New(), skillIDs[0])
	assert.True(t, errs.IsNotFound(err))
}

func TestCertificateRepo(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	certificate := &models.Certificate{Title: "CKA", Issuer: "CNCF"}
	require.NoError(t, d.CertificateRepo().Add(ctx, certificate))

	images, err := d.CertificateRepo().AddImages(ctx, certificate.ID, []string{"/uploads/certificates/b.png", "/uploads/certificates/a.png"})
	require.NoError(t, err)
	require.Len(t, images, 2)

	stored, err := d.CertificateRepo().FindByID(ctx, certificate.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 2)
	assert.Equal(t, "/uploads/certificates/a.png", stored.Images[0].ImagePath)

	_, err = d.CertificateRepo().AddImages(ctx, uuid.New(), []string{"/uploads/certificates/c.png"})
	assert.True(t, errs.IsNotFound(err))

	paths, err := d.CertificateRepo().Delete(ctx, certificate.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/uploads/certificates/a.png", "/uploads/certificates/b.png"}, paths)

	count, err := d.CertificateRepo().CountImages(ctx, certificate.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = d.CertificateRepo().Delete(ctx, certificate.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestLanguageRepo(t *testing.T) {
	ctx := context.Background()
	d := newDatabase(t)

	language := &models.Language{Name: "English", Level: "C1"}
	require.NoError(t, d.LanguageRepo().Add(ctx, language))

	languages, err := d.LanguageRepo().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, languages, 1)
	assert.Equal(t, "C1", languages[0].Level)

	require.NoError(t, d.LanguageRepo().Delete(ctx, language.ID))
	assert.True(t, errs.IsNotFound(d.LanguageRepo().Delete(ctx, language.ID)))
}
