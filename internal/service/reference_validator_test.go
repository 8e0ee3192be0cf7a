package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
)

type mockReferenceRepo struct {
	existing map[string]bool
	err      error
	calls    []string
}

func (m *mockReferenceRepo) Exists(ctx context.Context, table, id string) (bool, error) {
	m.calls = append(m.calls, table+":"+id)
	if m.err != nil {
		return false, m.err
	}
	return m.existing[table+":"+id], nil
}

func TestReferenceValidatorFailsFast(t *testing.T) {
	repo := &mockReferenceRepo{existing: map[string]bool{"professores:P1": true}}
	validator := NewReferenceValidator(repo)

	err := validator.Validate(context.Background(),
		models.ReferenceCheck{Ref: models.RefProfessor, ID: "P1"},
		models.ReferenceCheck{Ref: models.RefTurma, ID: "T404"},
		models.ReferenceCheck{Ref: models.RefSala, ID: "S404"},
	)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Turma not found", appErr.Message)
	assert.Equal(t, []string{"professores:P1", "turmas:T404"}, repo.calls)
}

func TestReferenceValidatorSubstitutoLabel(t *testing.T) {
	validator := NewReferenceValidator(&mockReferenceRepo{})

	err := validator.Validate(context.Background(), models.ReferenceCheck{Ref: models.RefSubstituto, ID: "P404"})
	assert.Equal(t, "Substituto not found", appErrors.FromError(err).Message)
}

func TestReferenceValidatorEmptyAndStorageError(t *testing.T) {
	repo := &mockReferenceRepo{err: errors.New("connection reset")}
	validator := NewReferenceValidator(repo)

	assert.NoError(t, validator.Validate(context.Background()))
	assert.Empty(t, repo.calls)

	err := validator.Validate(context.Background(), models.ReferenceCheck{Ref: models.RefSala, ID: "S1"})
	assert.Equal(t, 500, appErrors.FromError(err).Status)
}
