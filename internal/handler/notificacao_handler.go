package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
	"github.com/noah-isme/escola-aulas-api/pkg/response"
)

type notificacaoService interface {
	List(ctx context.Context, claims *models.JWTClaims, professorID string) ([]models.Notificacao, error)
	Create(ctx context.Context, req models.CreateNotificacaoRequest) (*models.Notificacao, error)
	MarkRead(ctx context.Context, id, professorID string) (*models.Notificacao, error)
}

// NotificacaoHandler exposes the notification inbox.
type NotificacaoHandler struct {
	service notificacaoService
}

// NewNotificacaoHandler builds a new handler.
func NewNotificacaoHandler(service notificacaoService) *NotificacaoHandler {
	return &NotificacaoHandler{service: service}
}

// List godoc
// @Summary List notificacoes
// @Tags Notificacoes
// @Produce json
// @Security BearerAuth
// @Param professor_id query string false "Inbox owner (coordenador only for others)"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.ErrorBody
// @Router /notificacoes [get]
func (h *NotificacaoHandler) List(c *gin.Context) {
	notificacoes, err := h.service.List(c.Request.Context(), claimsFromContext(c), c.Query("professor_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"notificacoes": notificacoes})
}

// Create godoc
// @Summary Send notificacao
// @Tags Notificacoes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateNotificacaoRequest true "Notification payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /notificacoes [post]
func (h *NotificacaoHandler) Create(c *gin.Context) {
	var req models.CreateNotificacaoRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	notificacao, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"notificacao": notificacao})
}

// MarkRead godoc
// @Summary Mark notificacao read
// @Tags Notificacoes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notificacao ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /notificacoes/{id}/read [put]
func (h *NotificacaoHandler) MarkRead(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	notificacao, err := h.service.MarkRead(c.Request.Context(), c.Param("id"), claims.ProfessorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"notificacao": notificacao})
}
