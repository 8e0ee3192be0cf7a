package models

// Role represents the available roles for the RBAC system.
type Role string

const (
	RoleProfessor   Role = "professor"
	RoleCoordenador Role = "coordenador"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleProfessor || r == RoleCoordenador
}

// Professor is a row of the professores table.
type Professor struct {
	ID        string `db:"id" json:"id"`
	Nome      string `db:"nome" json:"nome"`
	Email     string `db:"email" json:"email"`
	SenhaHash string `db:"senha_hash" json:"-"`
	Perfil    Role   `db:"perfil" json:"perfil"`
}
