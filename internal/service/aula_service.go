package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/internal/repository"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
	"github.com/noah-isme/escola-aulas-api/pkg/export"
	"github.com/noah-isme/escola-aulas-api/pkg/optional"
)

const substitutionMessage = "Você foi designado como substituto para a aula de %s da turma %s na sala %s no dia %s das %s às %s. Professor original: %s."

type aulaRepository interface {
	List(ctx context.Context, filter models.AulaFilter) ([]models.AulaDetail, error)
	FindDetail(ctx context.Context, id, professorID string) (*models.AulaDetail, error)
	FindByID(ctx context.Context, id string) (*models.Aula, error)
	Create(ctx context.Context, aula *models.Aula) error
	Update(ctx context.Context, id string, req models.UpdateAulaRequest) (*models.Aula, error)
	FindSubstitutionDetails(ctx context.Context, id string) (*models.SubstitutionDetails, error)
}

type substitutionNotifier interface {
	Dispatch(ctx context.Context, professorID, mensagem string) (*models.Notificacao, error)
}

var errInvalidFieldFormat = appErrors.Clone(appErrors.ErrValidation, "invalid field format")

// AulaService coordinates class scheduling and substitute reassignment.
type AulaService struct {
	repo       aulaRepository
	references referenceChecker
	notifier   substitutionNotifier
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAulaService constructs an AulaService.
func NewAulaService(repo aulaRepository, references referenceChecker, notifier substitutionNotifier, validate *validator.Validate, logger *zap.Logger) *AulaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AulaService{repo: repo, references: references, notifier: notifier, validator: validate, logger: logger}
}

// List returns joined class sessions. An explicit professorID filter wins; otherwise
// professors only see their own sessions.
func (s *AulaService) List(ctx context.Context, claims *models.JWTClaims, professorID string) ([]models.AulaDetail, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	filter := models.AulaFilter{ProfessorID: professorID}
	if filter.ProfessorID == "" && !claims.IsCoordenador() {
		filter.ProfessorID = claims.ProfessorID
	}

	aulas, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list aulas")
	}
	return aulas, nil
}

// Get returns one joined class session. Professors only see sessions they teach.
func (s *AulaService) Get(ctx context.Context, claims *models.JWTClaims, id string) (*models.AulaDetail, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	scope := ""
	if !claims.IsCoordenador() {
		scope = claims.ProfessorID
	}

	aula, err := s.repo.FindDetail(ctx, id, scope)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Aula not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch aula")
	}
	return aula, nil
}

// Create schedules a class session after confirming every reference exists.
func (s *AulaService) Create(ctx context.Context, req models.CreateAulaRequest) (*models.Aula, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "All fields are required: professor_id, turma_id, disciplina_id, sala_id, data, horario_inicio, horario_fim")
	}

	if err := s.references.Validate(ctx,
		models.ReferenceCheck{Ref: models.RefProfessor, ID: req.ProfessorID},
		models.ReferenceCheck{Ref: models.RefTurma, ID: req.TurmaID},
		models.ReferenceCheck{Ref: models.RefDisciplina, ID: req.DisciplinaID},
		models.ReferenceCheck{Ref: models.RefSala, ID: req.SalaID},
	); err != nil {
		return nil, err
	}

	aula := &models.Aula{
		ProfessorID:   req.ProfessorID,
		TurmaID:       req.TurmaID,
		DisciplinaID:  req.DisciplinaID,
		SalaID:        req.SalaID,
		Data:          req.Data,
		HorarioInicio: req.HorarioInicio,
		HorarioFim:    req.HorarioFim,
		Observacoes:   req.Observacoes,
	}
	if err := s.repo.Create(ctx, aula); err != nil {
		return nil, mapWriteError(err, "failed to create aula")
	}

	s.logger.Info("aula created", zap.String("aula_id", aula.ID), zap.String("professor_id", aula.ProfessorID))
	return aula, nil
}

// Update applies a partial update and notifies a newly assigned substitute.
// The update and the notification are separate writes.
func (s *AulaService) Update(ctx context.Context, id string, req models.UpdateAulaRequest) (*models.UpdateAulaResult, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Aula not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch aula")
	}

	if err := rejectRequiredNulls(req); err != nil {
		return nil, err
	}

	if err := s.references.Validate(ctx, referenceChecks(req)...); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFieldsToUpdate):
			return nil, appErrors.ErrNoFieldsToUpdate
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Aula not found")
		}
		return nil, mapWriteError(err, "failed to update aula")
	}

	newSub := updated.SubstitutoID
	if req.SubstitutoID.Present() {
		newSub = req.SubstitutoID.Ptr()
	}
	oldSub := current.SubstitutoID

	result := &models.UpdateAulaResult{Aula: updated}
	if newSub == nil || (oldSub != nil && *oldSub == *newSub) {
		return result, nil
	}

	if err := s.notifySubstitute(ctx, updated, *newSub); err != nil {
		return nil, err
	}
	result.NotificationSent = true
	return result, nil
}

// Export renders the listing visible to the caller as a downloadable file.
func (s *AulaService) Export(ctx context.Context, claims *models.JWTClaims, professorID, format string) (*export.File, error) {
	if !export.Supported(format) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	aulas, err := s.List(ctx, claims, professorID)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Title:   "Aulas",
		Columns: []string{"data", "horario_inicio", "horario_fim", "disciplina", "turma", "ano_letivo", "sala", "professor", "substituto", "observacoes"},
		Rows:    make([][]string, 0, len(aulas)),
	}
	for _, aula := range aulas {
		table.Rows = append(table.Rows, []string{
			aula.Data,
			aula.HorarioInicio,
			aula.HorarioFim,
			aula.DisciplinaNome,
			aula.TurmaNome,
			aula.AnoLetivo,
			aula.SalaNome,
			aula.ProfessorNome,
			deref(aula.SubstitutoNome),
			deref(aula.Observacoes),
		})
	}

	file, err := export.Render(format, "aulas", table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return file, nil
}

func (s *AulaService) notifySubstitute(ctx context.Context, aula *models.Aula, substitutoID string) error {
	details, err := s.repo.FindSubstitutionDetails(ctx, aula.ID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load substitution details")
	}

	mensagem := fmt.Sprintf(substitutionMessage,
		details.DisciplinaNome,
		details.TurmaNome,
		details.SalaNome,
		aula.Data,
		aula.HorarioInicio,
		aula.HorarioFim,
		details.ProfessorOriginalNome,
	)
	if _, err := s.notifier.Dispatch(ctx, substitutoID, mensagem); err != nil {
		return err
	}

	s.logger.Info("substitute assigned", zap.String("aula_id", aula.ID), zap.String("substituto_id", substitutoID))
	return nil
}

func mapWriteError(err error, message string) error {
	switch {
	case database.IsInvalidInput(err):
		return appErrors.Wrap(err, errInvalidFieldFormat.Code, errInvalidFieldFormat.Status, errInvalidFieldFormat.Message)
	case database.IsForeignKeyViolation(err):
		return appErrors.Wrap(err, appErrors.ErrReferenceNotFound.Code, appErrors.ErrReferenceNotFound.Status, appErrors.ErrReferenceNotFound.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

// rejectRequiredNulls refuses an explicit null on a NOT NULL column.
func rejectRequiredNulls(req models.UpdateAulaRequest) error {
	required := []struct {
		name  string
		value optional.Value[string]
	}{
		{"professor_id", req.ProfessorID},
		{"turma_id", req.TurmaID},
		{"disciplina_id", req.DisciplinaID},
		{"sala_id", req.SalaID},
		{"data", req.Data},
		{"horario_inicio", req.HorarioInicio},
		{"horario_fim", req.HorarioFim},
	}
	for _, field := range required {
		if field.value.IsNull() {
			return appErrors.Clone(appErrors.ErrValidation, field.name+" cannot be null")
		}
	}
	return nil
}

// referenceChecks lists the present, non-null references in validation order.
func referenceChecks(req models.UpdateAulaRequest) []models.ReferenceCheck {
	candidates := []struct {
		ref   models.Reference
		value optional.Value[string]
	}{
		{models.RefProfessor, req.ProfessorID},
		{models.RefTurma, req.TurmaID},
		{models.RefDisciplina, req.DisciplinaID},
		{models.RefSala, req.SalaID},
		{models.RefSubstituto, req.SubstitutoID},
	}
	var checks []models.ReferenceCheck
	for _, candidate := range candidates {
		if id, ok := candidate.value.Get(); ok {
			checks = append(checks, models.ReferenceCheck{Ref: candidate.ref, ID: id})
		}
	}
	return checks
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
