package models

// Reference names a lookup table an aula points at and the label used in error messages.
type Reference struct {
	Table string
	Label string
}

// Known references. Table names come only from this list.
var (
	RefProfessor  = Reference{Table: "professores", Label: "Professor"}
	RefTurma      = Reference{Table: "turmas", Label: "Turma"}
	RefDisciplina = Reference{Table: "disciplinas", Label: "Disciplina"}
	RefSala       = Reference{Table: "salas", Label: "Sala"}
	RefSubstituto = Reference{Table: "professores", Label: "Substituto"}
)

// ReferenceCheck pairs a reference kind with the id that must exist.
type ReferenceCheck struct {
	Ref Reference
	ID  string
}
