package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/internal/service"
)

type professorStore struct {
	byEmail map[string]*models.Professor
}

func (s *professorStore) FindByEmail(ctx context.Context, email string) (*models.Professor, error) {
	if p, ok := s.byEmail[email]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (s *professorStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.byEmail[email]
	return ok, nil
}

func (s *professorStore) Create(ctx context.Context, professor *models.Professor) error {
	professor.ID = "P-" + professor.Email
	s.byEmail[professor.Email] = professor
	return nil
}

func buildRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	gin.SetMode(gin.TestMode)
	hash, err := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &professorStore{byEmail: map[string]*models.Professor{
		"joao@escola.com": {ID: "P1", Nome: "João Silva", Email: "joao@escola.com", SenhaHash: string(hash), Perfil: models.RoleProfessor},
		"ana@escola.com":  {ID: "C1", Nome: "Ana Costa", Email: "ana@escola.com", SenhaHash: string(hash), Perfil: models.RoleCoordenador},
	}}
	authSvc := service.NewAuthService(store, nil, nil, nil, service.AuthConfig{Secret: "test-secret", Expiry: time.Hour, BcryptCost: bcrypt.MinCost})

	router := gin.New()
	RegisterRoutes(router.Group("/api"), Handlers{
		Auth:         NewAuthHandler(authSvc),
		Professores:  NewProfessorHandler(professorServiceMock{}),
		Aulas:        NewAulaHandler(&aulaServiceMock{updateResult: &models.UpdateAulaResult{Aula: &models.Aula{ID: "A1"}}}),
		Notificacoes: NewNotificacaoHandler(&notificacaoServiceMock{}),
	}, authSvc)
	return router, authSvc
}

func loginToken(t *testing.T, router *gin.Engine, email string) string {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"`+email+`","password":"senha"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestRoutesAuthorization(t *testing.T) {
	router, _ := buildRouter(t)
	professorToken := loginToken(t, router, "joao@escola.com")
	coordenadorToken := loginToken(t, router, "ana@escola.com")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
	}{
		{"no token", http.MethodGet, "/api/aulas", "", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/aulas", "", "garbage", http.StatusUnauthorized},
		{"professor lists aulas", http.MethodGet, "/api/aulas", "", professorToken, http.StatusOK},
		{"professor cannot update", http.MethodPut, "/api/aulas/A1", `{"sala_id":"S2"}`, professorToken, http.StatusForbidden},
		{"coordenador updates", http.MethodPut, "/api/aulas/A1", `{"sala_id":"S2"}`, coordenadorToken, http.StatusOK},
		{"professor cannot list professores", http.MethodGet, "/api/professores", "", professorToken, http.StatusForbidden},
		{"professor reads self", http.MethodGet, "/api/professores/me", "", professorToken, http.StatusOK},
		{"professor cannot export", http.MethodGet, "/api/aulas/export", "", professorToken, http.StatusForbidden},
		{"coordenador exports", http.MethodGet, "/api/aulas/export?format=csv", "", coordenadorToken, http.StatusOK},
		{"professor cannot notify", http.MethodPost, "/api/notificacoes", `{"professor_id":"P1","mensagem":"x"}`, professorToken, http.StatusForbidden},
		{"professor marks read", http.MethodPut, "/api/notificacoes/N1/read", "", professorToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestRoutesLoginAndRegister(t *testing.T) {
	router, _ := buildRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"joao@escola.com","password":"errada"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Email and password are required"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"nome":"Maria Santos","email":"maria@escola.com","password":"senhaSegura456"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	professor := decode(t, w)["professor"].(map[string]interface{})
	assert.Equal(t, "professor", professor["perfil"])
	assert.NotContains(t, w.Body.String(), "senha_hash")

	req = httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(`{"nome":"Maria Santos","email":"maria@escola.com","password":"x"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Professor with this email already exists"}`, w.Body.String())
}
