package auth

import (
	"fmt"
	"time"

	"github.com/aidul23/agent-mem/pkg/config"
	"github.com/aidul23/agent-mem/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, companyID kernel.CompanyID, email string, scopes []string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// TokenClaims is the validated content of an access token
type TokenClaims struct {
	UserID    kernel.UserID
	CompanyID kernel.CompanyID
	Email     string
	Scopes    []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// JWTService signs HS256 tokens with a shared secret
type JWTService struct {
	secretKey      []byte
	accessTokenTTL time.Duration
	issuer         string
	audience       []string
}

func NewJWTServiceFromConfig(cfg *config.JWTConfig) *JWTService {
	return &JWTService{
		secretKey:      []byte(cfg.SecretKey),
		accessTokenTTL: cfg.AccessTokenTTL,
		issuer:         cfg.Issuer,
		audience:       cfg.Audience,
	}
}

var _ TokenService = (*JWTService)(nil)

type JWTClaims struct {
	UserID    kernel.UserID    `json:"user_id"`
	CompanyID kernel.CompanyID `json:"company_id"`
	Email     string           `json:"email,omitempty"`
	Scopes    []string         `json:"scopes"`
	jwt.RegisteredClaims
}

func (j *JWTService) GenerateAccessToken(userID kernel.UserID, companyID kernel.CompanyID, email string, scopes []string) (string, error) {
	now := time.Now()
	if scopes == nil {
		scopes = []string{}
	}

	claims := JWTClaims{
		UserID:    userID,
		CompanyID: companyID,
		Email:     email,
		Scopes:    scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   userID.String(),
			Audience:  j.audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", ErrTokenGenerationFailed().WithDetail("error", err.Error())
	}
	return signed, nil
}

func (j *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithIssuer(j.issuer)}
	if len(j.audience) > 0 {
		opts = append(opts, jwt.WithAudience(j.audience[0]))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, ErrTokenValidationFailed().WithDetail("error", err.Error())
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenValidationFailed().WithDetail("error", "invalid claims")
	}

	result := &TokenClaims{
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		Email:     claims.Email,
		Scopes:    claims.Scopes,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
