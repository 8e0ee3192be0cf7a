package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
)

type notificacaoRepository interface {
	ListByProfessor(ctx context.Context, professorID string) ([]models.Notificacao, error)
	Create(ctx context.Context, notificacao *models.Notificacao, dataEnvio string) error
	MarkRead(ctx context.Context, id, professorID string) (*models.Notificacao, error)
}

type referenceChecker interface {
	Validate(ctx context.Context, checks ...models.ReferenceCheck) error
}

type notificationRecorder interface {
	RecordNotificationDispatched(origin string)
}

// NotificacaoService manages professor inboxes.
type NotificacaoService struct {
	repo       notificacaoRepository
	references referenceChecker
	validator  *validator.Validate
	logger     *zap.Logger
	metrics    notificationRecorder
	now        func() time.Time
}

// NewNotificacaoService constructs a NotificacaoService. metrics may be nil.
func NewNotificacaoService(repo notificacaoRepository, references referenceChecker, validate *validator.Validate, logger *zap.Logger, metrics notificationRecorder) *NotificacaoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &NotificacaoService{
		repo:       repo,
		references: references,
		validator:  validate,
		logger:     logger,
		metrics:    metrics,
		now:        time.Now,
	}
}

// List returns the inbox of professorID, or the caller's own when empty.
// Only coordenadores may read another professor's inbox.
func (s *NotificacaoService) List(ctx context.Context, claims *models.JWTClaims, professorID string) ([]models.Notificacao, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	target := claims.ProfessorID
	if professorID != "" {
		if !claims.IsCoordenador() && professorID != claims.ProfessorID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "Insufficient permissions to view other professors notifications")
		}
		target = professorID
	}

	notificacoes, err := s.repo.ListByProfessor(ctx, target)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list notificacoes")
	}
	return notificacoes, nil
}

// Create sends a manual notification. An empty DataEnvio defaults to now.
func (s *NotificacaoService) Create(ctx context.Context, req models.CreateNotificacaoRequest) (*models.Notificacao, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "professor_id and mensagem are required")
	}
	if err := s.references.Validate(ctx, models.ReferenceCheck{Ref: models.RefProfessor, ID: req.ProfessorID}); err != nil {
		return nil, err
	}

	notificacao := &models.Notificacao{ProfessorID: req.ProfessorID, Mensagem: req.Mensagem}
	if err := s.insert(ctx, notificacao, strings.TrimSpace(req.DataEnvio), models.NotificationOriginManual); err != nil {
		return nil, err
	}
	return notificacao, nil
}

// Dispatch writes an unread notification stamped with the current time.
func (s *NotificacaoService) Dispatch(ctx context.Context, professorID, mensagem string) (*models.Notificacao, error) {
	now := s.now().UTC()
	notificacao := &models.Notificacao{ProfessorID: professorID, Mensagem: mensagem, DataEnvio: now}
	if err := s.insert(ctx, notificacao, now.Format(time.RFC3339Nano), models.NotificationOriginSubstitution); err != nil {
		return nil, err
	}
	return notificacao, nil
}

// MarkRead flips the read flag of a notification the caller owns.
func (s *NotificacaoService) MarkRead(ctx context.Context, id, professorID string) (*models.Notificacao, error) {
	notificacao, err := s.repo.MarkRead(ctx, id, professorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Notification not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark notificacao read")
	}
	return notificacao, nil
}

func (s *NotificacaoService) insert(ctx context.Context, notificacao *models.Notificacao, dataEnvio, origin string) error {
	if err := s.repo.Create(ctx, notificacao, dataEnvio); err != nil {
		if database.IsForeignKeyViolation(err) {
			return appErrors.Wrap(err, appErrors.ErrReferenceNotFound.Code, appErrors.ErrReferenceNotFound.Status, "Professor not found")
		}
		return mapWriteError(err, "failed to create notificacao")
	}
	if s.metrics != nil {
		s.metrics.RecordNotificationDispatched(origin)
	}
	s.logger.Info("notification dispatched",
		zap.String("notificacao_id", notificacao.ID),
		zap.String("professor_id", notificacao.ProfessorID),
		zap.String("origin", origin),
	)
	return nil
}
