package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/escola-aulas-api/internal/models"
	"github.com/noah-isme/escola-aulas-api/pkg/database"
	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
)

type authProfessorRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Professor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, professor *models.Professor) error
}

type loginLimiter interface {
	Allow(ctx context.Context, email string) error
	RecordFailure(ctx context.Context, email string)
	Reset(ctx context.Context, email string)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret     string
	Expiry     time.Duration
	Issuer     string
	BcryptCost int
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authProfessorRepository
	limiter   loginLimiter
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance. A nil limiter never throttles.
func NewAuthService(repo authProfessorRepository, limiter loginLimiter, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if limiter == nil {
		limiter = noopLimiter{}
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, limiter: limiter, validator: validate, logger: logger, config: config}
}

// Login authenticates a professor and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Email and password are required")
	}

	if err := s.limiter.Allow(ctx, req.Email); err != nil {
		return nil, err
	}

	professor, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.limiter.RecordFailure(ctx, req.Email)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch professor")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(professor.SenhaHash), []byte(req.Password)); err != nil {
		s.limiter.RecordFailure(ctx, req.Email)
		return nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(professor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	s.limiter.Reset(ctx, req.Email)

	s.logger.Info("professor logged in", zap.String("professor_id", professor.ID), zap.String("perfil", string(professor.Perfil)))

	return &models.LoginResponse{
		Token: token,
		User: models.Professor{
			ID:     professor.ID,
			Nome:   professor.Nome,
			Email:  professor.Email,
			Perfil: professor.Perfil,
		},
	}, nil
}

// Register creates a professor account. Perfil defaults to professor.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Nome, email and password are required")
	}
	if req.Perfil == "" {
		req.Perfil = models.RoleProfessor
	}
	if !req.Perfil.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "perfil must be one of: professor, coordenador")
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "Professor with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	professor := &models.Professor{
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		Perfil:    req.Perfil,
	}
	if err := s.repo.Create(ctx, professor); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "Professor with this email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professor")
	}

	s.logger.Info("professor registered", zap.String("professor_id", professor.ID), zap.String("perfil", string(professor.Perfil)))
	return &models.Professor{
		ID:     professor.ID,
		Nome:   professor.Nome,
		Email:  professor.Email,
		Perfil: professor.Perfil,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "Invalid or expired token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.ProfessorID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid or expired token")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(professor *models.Professor) (string, error) {
	issuedAt := time.Now().UTC()
	claims := &models.JWTClaims{
		ProfessorID: professor.ID,
		Email:       professor.Email,
		Perfil:      professor.Perfil,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   professor.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) error { return nil }

func (noopLimiter) RecordFailure(context.Context, string) {}

func (noopLimiter) Reset(context.Context, string) {}
