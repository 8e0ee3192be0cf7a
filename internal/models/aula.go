package models

import "github.com/noah-isme/escola-aulas-api/pkg/optional"

// Aula is a scheduled class session as stored in the aulas table.
// Dates and times are carried as their Postgres text form (YYYY-MM-DD, HH:MM:SS).
type Aula struct {
	ID            string  `db:"id" json:"id"`
	ProfessorID   string  `db:"professor_id" json:"professor_id"`
	TurmaID       string  `db:"turma_id" json:"turma_id"`
	DisciplinaID  string  `db:"disciplina_id" json:"disciplina_id"`
	SalaID        string  `db:"sala_id" json:"sala_id"`
	Data          string  `db:"data" json:"data"`
	HorarioInicio string  `db:"horario_inicio" json:"horario_inicio"`
	HorarioFim    string  `db:"horario_fim" json:"horario_fim"`
	SubstitutoID  *string `db:"substituto_id" json:"substituto_id"`
	Observacoes   *string `db:"observacoes" json:"observacoes"`
}

// AulaDetail is an aula joined with the names of the rows it references.
type AulaDetail struct {
	ID             string  `db:"id" json:"id"`
	Data           string  `db:"data" json:"data"`
	HorarioInicio  string  `db:"horario_inicio" json:"horario_inicio"`
	HorarioFim     string  `db:"horario_fim" json:"horario_fim"`
	Observacoes    *string `db:"observacoes" json:"observacoes"`
	ProfessorID    string  `db:"professor_id" json:"professor_id"`
	SubstitutoID   *string `db:"substituto_id" json:"substituto_id"`
	DisciplinaNome string  `db:"disciplina_nome" json:"disciplina_nome"`
	TurmaNome      string  `db:"turma_nome" json:"turma_nome"`
	SalaNome       string  `db:"sala_nome" json:"sala_nome"`
	ProfessorNome  string  `db:"professor_nome" json:"professor_nome"`
	AnoLetivo      string  `db:"ano_letivo" json:"ano_letivo"`
	SubstitutoNome *string `db:"substituto_nome" json:"substituto_nome"`
}

// AulaFilter scopes listing queries.
type AulaFilter struct {
	ProfessorID string
}

// SubstitutionDetails holds the names embedded in a substitution notice.
type SubstitutionDetails struct {
	DisciplinaNome        string `db:"disciplina_nome"`
	TurmaNome             string `db:"turma_nome"`
	SalaNome              string `db:"sala_nome"`
	ProfessorOriginalNome string `db:"professor_original_nome"`
}

// CreateAulaRequest schedules a new class session.
type CreateAulaRequest struct {
	ProfessorID   string  `json:"professor_id" validate:"required"`
	TurmaID       string  `json:"turma_id" validate:"required"`
	DisciplinaID  string  `json:"disciplina_id" validate:"required"`
	SalaID        string  `json:"sala_id" validate:"required"`
	Data          string  `json:"data" validate:"required"`
	HorarioInicio string  `json:"horario_inicio" validate:"required"`
	HorarioFim    string  `json:"horario_fim" validate:"required"`
	Observacoes   *string `json:"observacoes"`
}

// UpdateAulaRequest is a partial update. Each field distinguishes omitted, null and set.
// Field order is the canonical column order of the generated statement.
type UpdateAulaRequest struct {
	ProfessorID   optional.Value[string] `json:"professor_id"`
	TurmaID       optional.Value[string] `json:"turma_id"`
	DisciplinaID  optional.Value[string] `json:"disciplina_id"`
	SalaID        optional.Value[string] `json:"sala_id"`
	Data          optional.Value[string] `json:"data"`
	HorarioInicio optional.Value[string] `json:"horario_inicio"`
	HorarioFim    optional.Value[string] `json:"horario_fim"`
	SubstitutoID  optional.Value[string] `json:"substituto_id"`
	Observacoes   optional.Value[string] `json:"observacoes"`
}

// UpdateAulaResult names the updated row and whether a substitution notice went out.
type UpdateAulaResult struct {
	Aula             *Aula `json:"aula"`
	NotificationSent bool  `json:"notification_sent"`
}
