package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest holds credentials for authenticating a professor.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed token and the authenticated professor.
type LoginResponse struct {
	Token string    `json:"token"`
	User  Professor `json:"user"`
}

// RegisterRequest creates a new professor account.
type RegisterRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Perfil   Role   `json:"perfil"`
}

// JWTClaims is the access token payload.
type JWTClaims struct {
	ProfessorID string `json:"id"`
	Email       string `json:"email"`
	Perfil      Role   `json:"perfil"`
	jwt.RegisteredClaims
}

// IsCoordenador reports whether the caller holds the administrative role.
func (c *JWTClaims) IsCoordenador() bool {
	return c != nil && c.Perfil == RoleCoordenador
}
