package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/escola-aulas-api/internal/middleware"
	"github.com/noah-isme/escola-aulas-api/internal/models"
)

// Handlers groups every API handler mounted under the prefix.
type Handlers struct {
	Auth         *AuthHandler
	Professores  *ProfessorHandler
	Aulas        *AulaHandler
	Notificacoes *NotificacaoHandler
}

// RegisterRoutes mounts the API on group. Everything except /auth requires a bearer token.
func RegisterRoutes(group *gin.RouterGroup, h Handlers, tokens middleware.TokenValidator) {
	coordenador := middleware.RequireRoles(models.RoleCoordenador)

	auth := group.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)

	protected := group.Group("")
	protected.Use(middleware.JWT(tokens))

	professores := protected.Group("/professores")
	professores.GET("", coordenador, h.Professores.List)
	professores.GET("/me", h.Professores.Me)

	aulas := protected.Group("/aulas")
	aulas.GET("", h.Aulas.List)
	aulas.GET("/export", coordenador, h.Aulas.Export)
	aulas.GET("/:id", h.Aulas.Get)
	aulas.POST("", coordenador, h.Aulas.Create)
	aulas.PUT("/:id", coordenador, h.Aulas.Update)

	notificacoes := protected.Group("/notificacoes")
	notificacoes.GET("", h.Notificacoes.List)
	notificacoes.POST("", coordenador, h.Notificacoes.Create)
	notificacoes.PUT("/:id/read", h.Notificacoes.MarkRead)
}
