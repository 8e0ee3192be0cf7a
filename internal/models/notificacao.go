package models

import "time"

// Notificacao is an inbox entry addressed to one professor.
type Notificacao struct {
	ID          string    `db:"id" json:"id"`
	ProfessorID string    `db:"professor_id" json:"professor_id,omitempty"`
	Mensagem    string    `db:"mensagem" json:"mensagem"`
	DataEnvio   time.Time `db:"data_envio" json:"data_envio"`
	Lida        bool      `db:"lida" json:"lida"`
}

// CreateNotificacaoRequest sends a manual notification. DataEnvio is any timestamp literal
// Postgres accepts; empty means now.
type CreateNotificacaoRequest struct {
	ProfessorID string `json:"professor_id" validate:"required"`
	Mensagem    string `json:"mensagem" validate:"required"`
	DataEnvio   string `json:"data_envio"`
}

// Notification origins, used as a metrics label.
const (
	NotificationOriginManual       = "manual"
	NotificationOriginSubstitution = "substitution"
)
