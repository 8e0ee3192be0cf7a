package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/optional"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

var (
	aulaRowColumns   = []string{"id", "professor_id", "turma_id", "disciplina_id", "sala_id", "data", "horario_inicio", "horario_fim", "substituto_id", "observacoes"}
	aulaDetailColumn = []string{"id", "data", "horario_inicio", "horario_fim", "observacoes", "professor_id", "substituto_id", "disciplina_nome", "turma_nome", "sala_nome", "professor_nome", "ano_letivo", "substituto_nome"}
)

func TestAulaRepositoryListWithProfessorFilter(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	rows := sqlmock.NewRows(aulaDetailColumn).
		AddRow("A2", "2024-01-20", "08:00:00", "09:30:00", "Aula sobre equações", "P1", nil, "Matemática", "9º A", "Sala 101", "João Silva", "2024", nil).
		AddRow("A1", "2024-01-19", "14:00:00", "15:30:00", nil, "P1", "P2", "Física", "1º B", "Laboratório", "João Silva", "2024", "Carlos Oliveira")
	mock.ExpectQuery(regexp.QuoteMeta(aulaDetailSelect + " WHERE a.professor_id = $1 ORDER BY a.data DESC, a.horario_inicio")).
		WithArgs("P1").
		WillReturnRows(rows)

	aulas, err := repo.List(context.Background(), models.AulaFilter{ProfessorID: "P1"})
	require.NoError(t, err)
	require.Len(t, aulas, 2)
	assert.Equal(t, "Matemática", aulas[0].DisciplinaNome)
	assert.Nil(t, aulas[0].SubstitutoNome)
	require.NotNil(t, aulas[1].SubstitutoNome)
	assert.Equal(t, "Carlos Oliveira", *aulas[1].SubstitutoNome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryListEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(aulaDetailSelect + " ORDER BY a.data DESC, a.horario_inicio")).
		WillReturnRows(sqlmock.NewRows(aulaDetailColumn))

	aulas, err := repo.List(context.Background(), models.AulaFilter{})
	require.NoError(t, err)
	assert.NotNil(t, aulas)
	assert.Empty(t, aulas)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryFindDetailScopedToProfessor(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(aulaDetailSelect + " WHERE a.id = $1 AND a.professor_id = $2")).
		WithArgs("A1", "P9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindDetail(context.Background(), "A1", "P9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryFindByIDMalformedID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + aulaColumns + " FROM aulas WHERE id = $1")).
		WithArgs("not-a-uuid").
		WillReturnError(&pq.Error{Code: "22P02"})

	_, err := repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	rows := sqlmock.NewRows(aulaRowColumns).
		AddRow("A1", "P1", "T1", "D1", "S1", "2024-01-20", "08:00:00", "09:30:00", nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO aulas (professor_id, turma_id, disciplina_id, sala_id, data, horario_inicio, horario_fim, observacoes)")).
		WithArgs("P1", "T1", "D1", "S1", "2024-01-20", "08:00", "09:30", nil).
		WillReturnRows(rows)

	aula := &models.Aula{ProfessorID: "P1", TurmaID: "T1", DisciplinaID: "D1", SalaID: "S1", Data: "2024-01-20", HorarioInicio: "08:00", HorarioFim: "09:30"}
	require.NoError(t, repo.Create(context.Background(), aula))
	assert.Equal(t, "A1", aula.ID)
	assert.Equal(t, "08:00:00", aula.HorarioInicio)
	assert.Nil(t, aula.SubstitutoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	rows := sqlmock.NewRows(aulaRowColumns).
		AddRow("A1", "P1", "T1", "D1", "S1", "2024-01-20", "08:00:00", "09:30:00", "P2", "Professor João será substituído por Maria")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE aulas SET substituto_id = $1, observacoes = $2 WHERE id = $3 RETURNING")).
		WithArgs("P2", "Professor João será substituído por Maria", "A1").
		WillReturnRows(rows)

	aula, err := repo.Update(context.Background(), "A1", models.UpdateAulaRequest{
		SubstitutoID: optional.Of("P2"),
		Observacoes:  optional.Of("Professor João será substituído por Maria"),
	})
	require.NoError(t, err)
	require.NotNil(t, aula.SubstitutoID)
	assert.Equal(t, "P2", *aula.SubstitutoID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryUpdateNoFieldsSkipsStorage(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	_, err := repo.Update(context.Background(), "A1", models.UpdateAulaRequest{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAulaRepositoryFindSubstitutionDetails(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAulaRepository(db)

	rows := sqlmock.NewRows([]string{"disciplina_nome", "turma_nome", "sala_nome", "professor_original_nome"}).
		AddRow("Matemática", "9º A", "Sala 101", "João Silva")
	mock.ExpectQuery("SELECT d.nome AS disciplina_nome").WithArgs("A1").WillReturnRows(rows)

	details, err := repo.FindSubstitutionDetails(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "João Silva", details.ProfessorOriginalNome)
	assert.NoError(t, mock.ExpectationsWereMet())
}
