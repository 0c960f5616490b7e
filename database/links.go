package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkChanges counts the join rows touched by a reconciliation.
type LinkChanges struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Unchanged reports whether the reconciliation left the link set as it was.
func (c LinkChanges) Unchanged() bool {
	return c.Added == 0 && c.Removed == 0
}

// uniqueIDs drops nil and repeated ids while keeping the first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// existingIDs keeps the ids that have a row in model's table. Unknown ids are
// dropped silently.
func existingIDs(tx *gorm.DB, model interface{}, ids []uuid.UUID) ([]uuid.UUID, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	var found []uuid.UUID
	if err := tx.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}

	// keep the caller's order
	out := make([]uuid.UUID, 0, len(found))
	for _, id := range ids {
		if _, ok := present[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// diffIDs returns the ids of current missing from desired, and the ids of
// desired missing from current.
func diffIDs(current, desired []uuid.UUID) (toRemove, toAdd []uuid.UUID) {
	currentSet := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	return toRemove, toAdd
}

// insertIgnoringDuplicates inserts link rows, skipping the ones already present.
func insertIgnoringDuplicates(tx *gorm.DB, rows interface{}) (int64, error) {
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows)
	return result.RowsAffected, result.Error
}
