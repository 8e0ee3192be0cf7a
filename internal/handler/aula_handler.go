package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/export"
	"github.com/noah-isme/escola-aulas-api/pkg/response"
)

type aulaService interface {
	List(ctx context.Context, claims *models.JWTClaims, professorID string) ([]models.AulaDetail, error)
	Get(ctx context.Context, claims *models.JWTClaims, id string) (*models.AulaDetail, error)
	Create(ctx context.Context, req models.CreateAulaRequest) (*models.Aula, error)
	Update(ctx context.Context, id string, req models.UpdateAulaRequest) (*models.UpdateAulaResult, error)
	Export(ctx context.Context, claims *models.JWTClaims, professorID, format string) (*export.File, error)
}

// AulaHandler exposes class scheduling endpoints.
type AulaHandler struct {
	service aulaService
}

// NewAulaHandler builds a new handler.
func NewAulaHandler(service aulaService) *AulaHandler {
	return &AulaHandler{service: service}
}

// List godoc
// @Summary List aulas
// @Description Professors see their own aulas unless professor_id is given
// @Tags Aulas
// @Produce json
// @Security BearerAuth
// @Param professor_id query string false "Professor filter"
// @Success 200 {object} map[string]interface{}
// @Router /aulas [get]
func (h *AulaHandler) List(c *gin.Context) {
	aulas, err := h.service.List(c.Request.Context(), claimsFromContext(c), c.Query("professor_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"aulas": aulas})
}

// Export godoc
// @Summary Export aulas
// @Tags Aulas
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Param professor_id query string false "Professor filter"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /aulas/export [get]
func (h *AulaHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", export.FormatCSV)
	file, err := h.service.Export(c.Request.Context(), claimsFromContext(c), c.Query("professor_id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Name, file.ContentType, file.Content)
}

// Get godoc
// @Summary Get aula
// @Tags Aulas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Aula ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /aulas/{id} [get]
func (h *AulaHandler) Get(c *gin.Context) {
	aula, err := h.service.Get(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"aula": aula})
}

// Create godoc
// @Summary Schedule aula
// @Tags Aulas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateAulaRequest true "Aula payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /aulas [post]
func (h *AulaHandler) Create(c *gin.Context) {
	var req models.CreateAulaRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	aula, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"aula": aula})
}

// Update godoc
// @Summary Update aula
// @Description Partial update. Assigning a new substituto notifies them.
// @Tags Aulas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Aula ID"
// @Param payload body models.UpdateAulaRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /aulas/{id} [put]
func (h *AulaHandler) Update(c *gin.Context) {
	var req models.UpdateAulaRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"aula": result.Aula, "notification_sent": result.NotificationSent})
}
