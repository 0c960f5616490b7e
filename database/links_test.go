package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUniqueIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, b}, uniqueIDs([]uuid.UUID{a, uuid.Nil, b, a}))
	assert.Empty(t, uniqueIDs(nil))
}

func TestDiffIDs(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name       string
		current    []uuid.UUID
		desired    []uuid.UUID
		wantRemove []uuid.UUID
		wantAdd    []uuid.UUID
	}{
		{name: "identical sets", current: []uuid.UUID{a, b}, desired: []uuid.UUID{b, a}},
		{name: "one removed", current: []uuid.UUID{a, b, c}, desired: []uuid.UUID{a, c}, wantRemove: []uuid.UUID{b}},
		{name: "one added", current: []uuid.UUID{a}, desired: []uuid.UUID{a, c}, wantAdd: []uuid.UUID{c}},
		{name: "swap", current: []uuid.UUID{a, b}, desired: []uuid.UUID{b, c}, wantRemove: []uuid.UUID{a}, wantAdd: []uuid.UUID{c}},
		{name: "cleared", current: []uuid.UUID{a, b}, desired: nil, wantRemove: []uuid.UUID{a, b}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toRemove, toAdd := diffIDs(tt.current, tt.desired)
			assert.Equal(t, tt.wantRemove, toRemove)
			assert.Equal(t, tt.wantAdd, toAdd)
		})
	}
}

func TestLinkChangesUnchanged(t *testing.T) {
	assert.True(t, LinkChanges{}.Unchanged())
	assert.False(t, LinkChanges{Added: 1}.Unchanged())
	assert.False(t, LinkChanges{Removed: 2}.Unchanged())
}

func TestHasMigration(t *testing.T) {
	assert.True(t, HasMigration(MigrationInitial))
	assert.True(t, HasMigration(MigrationLanguages))
	assert.False(t, HasMigration("19990101_nope"))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db/portfolio", DSN(map[string]string{"DATABASE_URL": "postgres://u:p@db/portfolio"}))
	assert.Equal(t,
		"host=db user=app password=secret dbname=portfolio port=6543 sslmode=require",
		DSN(map[string]string{
			"DB_HOST":     "db",
			"DB_USER":     "app",
			"DB_PASSWORD": "secret",
			"DB_PORT":     "6543",
			"DB_SSLMODE":  "require",
		}),
	)
}
