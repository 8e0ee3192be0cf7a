package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/optional"
)

// ErrNoFieldsToUpdate is returned when a partial update carries no present field.
var ErrNoFieldsToUpdate = errors.New("no fields to update")

// updateSet accumulates "column = $n" assignments for a partial UPDATE statement.
type updateSet struct {
	assignments []string
	args        []interface{}
}

// setOptional appends an assignment only when the field was supplied; explicit null writes NULL.
func setOptional[T any](s *updateSet, column string, value optional.Value[T]) {
	if !value.Present() {
		return
	}
	s.args = append(s.args, value.SQLValue())
	s.assignments = append(s.assignments, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

// build renders the statement. The key is bound after the assignments.
func (s *updateSet) build(table, keyColumn string, key interface{}, returning string) (string, []interface{}, error) {
	if len(s.assignments) == 0 {
		return "", nil, ErrNoFieldsToUpdate
	}
	args := append(append([]interface{}{}, s.args...), key)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(s.assignments, ", "), keyColumn, len(args))
	if returning != "" {
		query += " RETURNING " + returning
	}
	return query, args, nil
}

// buildAulaUpdate maps an update request onto the aulas columns in canonical order.
func buildAulaUpdate(id string, req models.UpdateAulaRequest) (string, []interface{}, error) {
	set := &updateSet{}
	setOptional(set, "professor_id", req.ProfessorID)
	setOptional(set, "turma_id", req.TurmaID)
	setOptional(set, "disciplina_id", req.DisciplinaID)
	setOptional(set, "sala_id", req.SalaID)
	setOptional(set, "data", req.Data)
	setOptional(set, "horario_inicio", req.HorarioInicio)
	setOptional(set, "horario_fim", req.HorarioFim)
	setOptional(set, "substituto_id", req.SubstitutoID)
	setOptional(set, "observacoes", req.Observacoes)
	return set.build("aulas", "id", id, aulaColumns)
}
