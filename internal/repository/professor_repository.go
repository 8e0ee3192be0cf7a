package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
)

// ProfessorRepository provides database access for professor accounts.
type ProfessorRepository struct {
	db *sqlx.DB
}

// NewProfessorRepository creates a new instance of ProfessorRepository.
func NewProfessorRepository(db *sqlx.DB) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// FindByEmail returns a professor including the password hash.
func (r *ProfessorRepository) FindByEmail(ctx context.Context, email string) (*models.Professor, error) {
	const query = `SELECT id, nome, email, senha_hash, perfil FROM professores WHERE email = $1`
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find professor by email: %w", err)
	}
	return &professor, nil
}

// FindByID returns a professor without the password hash.
func (r *ProfessorRepository) FindByID(ctx context.Context, id string) (*models.Professor, error) {
	const query = `SELECT id, nome, email, perfil FROM professores WHERE id = $1`
	var professor models.Professor
	if err := r.db.GetContext(ctx, &professor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || database.IsInvalidInput(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find professor by id: %w", err)
	}
	return &professor, nil
}

// List returns every professor ordered by name.
func (r *ProfessorRepository) List(ctx context.Context) ([]models.Professor, error) {
	const query = `SELECT id, nome, email, perfil FROM professores ORDER BY nome`
	professores := []models.Professor{}
	if err := r.db.SelectContext(ctx, &professores, query); err != nil {
		return nil, fmt.Errorf("list professores: %w", err)
	}
	return professores, nil
}

// EmailExists reports whether an account already uses the email.
func (r *ProfessorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM professores WHERE email = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check professor email: %w", err)
	}
	return exists, nil
}

// Create inserts a new professor and fills the generated id.
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	const query = `
		INSERT INTO professores (nome, email, senha_hash, perfil)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.GetContext(ctx, &professor.ID, query, professor.Nome, professor.Email, professor.SenhaHash, professor.Perfil); err != nil {
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}
