package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/escola-aulas-api/pkg/database"
)

var referenceTables = map[string]struct{}{
	"professores": {},
	"turmas":      {},
	"disciplinas": {},
	"salas":       {},
}

// ReferenceRepository answers existence lookups against the lookup tables aulas point at.
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new instance of ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// Exists reports whether table holds a row with the given id. Malformed ids never exist.
func (r *ReferenceRepository) Exists(ctx context.Context, table, id string) (bool, error) {
	if _, ok := referenceTables[table]; !ok {
		return false, fmt.Errorf("unknown reference table %q", table)
	}
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", table)
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if database.IsInvalidInput(err) {
			return false, nil
		}
		return false, fmt.Errorf("check %s reference: %w", table, err)
	}
	return exists, nil
}
