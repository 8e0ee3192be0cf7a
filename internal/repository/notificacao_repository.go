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

// NotificacaoRepository provides database access for the notification inbox.
type NotificacaoRepository struct {
	db *sqlx.DB
}

// NewNotificacaoRepository creates a new instance of NotificacaoRepository.
func NewNotificacaoRepository(db *sqlx.DB) *NotificacaoRepository {
	return &NotificacaoRepository{db: db}
}

// ListByProfessor returns the inbox of a professor, newest first.
func (r *NotificacaoRepository) ListByProfessor(ctx context.Context, professorID string) ([]models.Notificacao, error) {
	const query = `
		SELECT id, mensagem, data_envio, lida
		FROM notificacoes
		WHERE professor_id = $1
		ORDER BY data_envio DESC`
	notificacoes := []models.Notificacao{}
	if err := r.db.SelectContext(ctx, &notificacoes, query, professorID); err != nil {
		if database.IsInvalidInput(err) {
			return []models.Notificacao{}, nil
		}
		return nil, fmt.Errorf("list notificacoes: %w", err)
	}
	return notificacoes, nil
}

// Create inserts an unread notification. dataEnvio is parsed by Postgres; empty stamps now().
func (r *NotificacaoRepository) Create(ctx context.Context, notificacao *models.Notificacao, dataEnvio string) error {
	const query = `
		INSERT INTO notificacoes (professor_id, mensagem, data_envio, lida)
		VALUES ($1, $2, COALESCE(NULLIF($3, '')::timestamptz, now()), false)
		RETURNING id, professor_id, mensagem, data_envio, lida`
	if err := r.db.GetContext(ctx, notificacao, query, notificacao.ProfessorID, notificacao.Mensagem, dataEnvio); err != nil {
		return fmt.Errorf("create notificacao: %w", err)
	}
	return nil
}

// MarkRead flips the read flag of a notification owned by professorID.
func (r *NotificacaoRepository) MarkRead(ctx context.Context, id, professorID string) (*models.Notificacao, error) {
	const query = `
		UPDATE notificacoes SET lida = true
		WHERE id = $1 AND professor_id = $2
		RETURNING id, mensagem, data_envio, lida`
	var notificacao models.Notificacao
	if err := r.db.GetContext(ctx, &notificacao, query, id, professorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || database.IsInvalidInput(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("mark notificacao read: %w", err)
	}
	return &notificacao, nil
}
