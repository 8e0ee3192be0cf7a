package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
)

// aulaColumns renders dates and times in their text form so they scan into strings.
const aulaColumns = `id, professor_id, turma_id, disciplina_id, sala_id,
	data::text AS data, horario_inicio::text AS horario_inicio, horario_fim::text AS horario_fim,
	substituto_id, observacoes`

const aulaDetailSelect = `
	SELECT a.id, a.data::text AS data, a.horario_inicio::text AS horario_inicio, a.horario_fim::text AS horario_fim,
		a.observacoes, a.professor_id, a.substituto_id,
		d.nome AS disciplina_nome, t.nome AS turma_nome, s.nome AS sala_nome,
		p.nome AS professor_nome, t.ano_letivo, sub.nome AS substituto_nome
	FROM aulas a
	JOIN professores p ON a.professor_id = p.id
	JOIN turmas t ON a.turma_id = t.id
	JOIN disciplinas d ON a.disciplina_id = d.id
	JOIN salas s ON a.sala_id = s.id
	LEFT JOIN professores sub ON a.substituto_id = sub.id`

// AulaRepository provides database access for class sessions.
type AulaRepository struct {
	db *sqlx.DB
}

// NewAulaRepository creates a new instance of AulaRepository.
func NewAulaRepository(db *sqlx.DB) *AulaRepository {
	return &AulaRepository{db: db}
}

// List returns joined class sessions ordered by most recent date first.
func (r *AulaRepository) List(ctx context.Context, filter models.AulaFilter) ([]models.AulaDetail, error) {
	var conditions []string
	var args []interface{}
	if filter.ProfessorID != "" {
		args = append(args, filter.ProfessorID)
		conditions = append(conditions, fmt.Sprintf("a.professor_id = $%d", len(args)))
	}

	query := aulaDetailSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.data DESC, a.horario_inicio"

	aulas := []models.AulaDetail{}
	if err := r.db.SelectContext(ctx, &aulas, query, args...); err != nil {
		if database.IsInvalidInput(err) {
			return []models.AulaDetail{}, nil
		}
		return nil, fmt.Errorf("list aulas: %w", err)
	}
	return aulas, nil
}

// FindDetail returns one joined class session. A non-empty professorID restricts the match to
// sessions that professor teaches.
func (r *AulaRepository) FindDetail(ctx context.Context, id, professorID string) (*models.AulaDetail, error) {
	query := aulaDetailSelect + " WHERE a.id = $1"
	args := []interface{}{id}
	if professorID != "" {
		query += " AND a.professor_id = $2"
		args = append(args, professorID)
	}

	var aula models.AulaDetail
	if err := r.db.GetContext(ctx, &aula, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) || database.IsInvalidInput(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find aula detail: %w", err)
	}
	return &aula, nil
}

// FindByID returns the raw class session row.
func (r *AulaRepository) FindByID(ctx context.Context, id string) (*models.Aula, error) {
	query := "SELECT " + aulaColumns + " FROM aulas WHERE id = $1"
	var aula models.Aula
	if err := r.db.GetContext(ctx, &aula, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) || database.IsInvalidInput(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find aula by id: %w", err)
	}
	return &aula, nil
}

// Create inserts a new class session and fills the generated columns.
func (r *AulaRepository) Create(ctx context.Context, aula *models.Aula) error {
	query := `
		INSERT INTO aulas (professor_id, turma_id, disciplina_id, sala_id, data, horario_inicio, horario_fim, observacoes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + aulaColumns
	if err := r.db.GetContext(ctx, aula, query,
		aula.ProfessorID,
		aula.TurmaID,
		aula.DisciplinaID,
		aula.SalaID,
		aula.Data,
		aula.HorarioInicio,
		aula.HorarioFim,
		aula.Observacoes,
	); err != nil {
		return fmt.Errorf("create aula: %w", err)
	}
	return nil
}

// Update applies the present fields of req and returns the full updated row.
func (r *AulaRepository) Update(ctx context.Context, id string, req models.UpdateAulaRequest) (*models.Aula, error) {
	query, args, err := buildAulaUpdate(id, req)
	if err != nil {
		return nil, err
	}
	var aula models.Aula
	if err := r.db.GetContext(ctx, &aula, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update aula: %w", err)
	}
	return &aula, nil
}

// FindSubstitutionDetails loads the names used in a substitution notice.
func (r *AulaRepository) FindSubstitutionDetails(ctx context.Context, id string) (*models.SubstitutionDetails, error) {
	const query = `
		SELECT d.nome AS disciplina_nome, t.nome AS turma_nome, s.nome AS sala_nome, p.nome AS professor_original_nome
		FROM aulas a
		JOIN disciplinas d ON a.disciplina_id = d.id
		JOIN turmas t ON a.turma_id = t.id
		JOIN salas s ON a.sala_id = s.id
		JOIN professores p ON a.professor_id = p.id
		WHERE a.id = $1`
	var details models.SubstitutionDetails
	if err := r.db.GetContext(ctx, &details, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find substitution details: %w", err)
	}
	return &details, nil
}
