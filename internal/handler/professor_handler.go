package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
	"github.com/noah-isme/escola-aulas-api/pkg/response"
)

type professorService interface {
	List(ctx context.Context) ([]models.Professor, error)
	Get(ctx context.Context, id string) (*models.Professor, error)
}

// ProfessorHandler exposes professor endpoints.
type ProfessorHandler struct {
	service professorService
}

// NewProfessorHandler builds a new handler.
func NewProfessorHandler(service professorService) *ProfessorHandler {
	return &ProfessorHandler{service: service}
}

// List godoc
// @Summary List professores
// @Tags Professores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.ErrorBody
// @Router /professores [get]
func (h *ProfessorHandler) List(c *gin.Context) {
	professores, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"professores": professores})
}

// Me godoc
// @Summary Current professor
// @Tags Professores
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /professores/me [get]
func (h *ProfessorHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	professor, err := h.service.Get(c.Request.Context(), claims.ProfessorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"professor": professor})
}
