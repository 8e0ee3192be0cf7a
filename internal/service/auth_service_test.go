package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
)

type mockAuthRepo struct {
	professor      *models.Professor
	findByEmailErr error
	emailExists    bool
	createErr      error
	created        *models.Professor
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.Professor, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	if m.professor == nil || m.professor.Email != email {
		return nil, sql.ErrNoRows
	}
	return m.professor, nil
}

func (m *mockAuthRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExists, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, professor *models.Professor) error {
	if m.createErr != nil {
		return m.createErr
	}
	professor.ID = "P-new"
	m.created = professor
	return nil
}

type mockLimiter struct {
	allowErr error
	failures int
	resets   int
}

func (m *mockLimiter) Allow(ctx context.Context, email string) error { return m.allowErr }

func (m *mockLimiter) RecordFailure(ctx context.Context, email string) { m.failures++ }

func (m *mockLimiter) Reset(ctx context.Context, email string) { m.resets++ }

func newTestAuthService(repo *mockAuthRepo, limiter loginLimiter) *AuthService {
	return NewAuthService(repo, limiter, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "secret",
		Expiry:     time.Hour,
		Issuer:     "escola",
		BcryptCost: bcrypt.MinCost,
	})
}

func hashed(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := &mockAuthRepo{professor: &models.Professor{ID: "P1", Nome: "João Silva", Email: "professor@escola.com", SenhaHash: hashed(t, "minhasenha123"), Perfil: models.RoleProfessor}}
	limiter := &mockLimiter{}
	svc := newTestAuthService(repo, limiter)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "professor@escola.com", Password: "minhasenha123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "João Silva", res.User.Nome)
	assert.Empty(t, res.User.SenhaHash)
	assert.Equal(t, 1, limiter.resets)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "P1", claims.ProfessorID)
	assert.Equal(t, models.RoleProfessor, claims.Perfil)
}

func TestAuthServiceLoginDoesNotRevealUnknownEmail(t *testing.T) {
	repo := &mockAuthRepo{professor: &models.Professor{ID: "P1", Email: "professor@escola.com", SenhaHash: hashed(t, "right")}}
	limiter := &mockLimiter{}
	svc := newTestAuthService(repo, limiter)

	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "professor@escola.com", Password: "wrong"})
	_, unknownEmail := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@escola.com", Password: "wrong"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, appErrors.FromError(wrongPassword).Message, appErrors.FromError(unknownEmail).Message)
	assert.Equal(t, "Invalid email or password", appErrors.FromError(unknownEmail).Message)
	assert.Equal(t, 401, appErrors.FromError(unknownEmail).Status)
	assert.Equal(t, 2, limiter.failures)
}

func TestAuthServiceLoginMissingFields(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{}, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "professor@escola.com"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Email and password are required", appErr.Message)
}

func TestAuthServiceLoginThrottled(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{}, &mockLimiter{allowErr: appErrors.ErrTooManyRequests})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "professor@escola.com", Password: "x"})
	assert.ErrorIs(t, err, appErrors.ErrTooManyRequests)
}

func TestAuthServiceRegisterDefaultsPerfil(t *testing.T) {
	repo := &mockAuthRepo{}
	svc := newTestAuthService(repo, nil)

	professor, err := svc.Register(context.Background(), models.RegisterRequest{Nome: "Maria Santos", Email: "maria.santos@escola.com", Password: "senhaSegura456"})
	require.NoError(t, err)
	assert.Equal(t, "P-new", professor.ID)
	assert.Equal(t, models.RoleProfessor, professor.Perfil)
	assert.Empty(t, professor.SenhaHash)
	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.SenhaHash), []byte("senhaSegura456")))
}

func TestAuthServiceRegisterErrors(t *testing.T) {
	cases := []struct {
		name    string
		repo    *mockAuthRepo
		req     models.RegisterRequest
		status  int
		message string
	}{
		{"missing fields", &mockAuthRepo{}, models.RegisterRequest{Email: "a@escola.com", Password: "x"}, 400, "Nome, email and password are required"},
		{"invalid perfil", &mockAuthRepo{}, models.RegisterRequest{Nome: "A", Email: "a@escola.com", Password: "x", Perfil: "diretor"}, 400, "perfil must be one of: professor, coordenador"},
		{"duplicate email", &mockAuthRepo{emailExists: true}, models.RegisterRequest{Nome: "A", Email: "a@escola.com", Password: "x"}, 409, "Professor with this email already exists"},
		{"unique race", &mockAuthRepo{createErr: &pq.Error{Code: "23505"}}, models.RegisterRequest{Nome: "A", Email: "a@escola.com", Password: "x"}, 409, "Professor with this email already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestAuthService(tc.repo, nil)
			_, err := svc.Register(context.Background(), tc.req)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, tc.status, appErr.Status)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}
}

func TestAuthServiceValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{}, nil)

	claims := &models.JWTClaims{ProfessorID: "P1", Perfil: models.RoleCoordenador, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(forged)
	require.Error(t, err)
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := newTestAuthService(&mockAuthRepo{}, nil)

	claims := &models.JWTClaims{ProfessorID: "P1", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
