package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/alvearium/accounts-api/internal/core/domain"
	"github.com/alvearium/accounts-api/internal/core/ports"
)

// jwtClaims is the wire shape of both token classes: the user id travels in
// the registered "sub" claim, email and (optionally) name as custom claims.
type jwtClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 JWTs. Access and refresh tokens use
// separate symmetric secrets so one class can never stand in for the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (s *TokenService) IssueAccessToken(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	return sign(claims, s.accessSecret, ttl)
}

func (s *TokenService) IssueRefreshToken(claims ports.TokenClaims, ttl time.Duration) (string, error) {
	return sign(claims, s.refreshSecret, ttl)
}

func (s *TokenService) VerifyAccessToken(token string) (*ports.TokenClaims, error) {
	return verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (*ports.TokenClaims, error) {
	return verify(token, s.refreshSecret)
}

func sign(claims ports.TokenClaims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return t.SignedString(secret)
}

func verify(token string, secret []byte) (*ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{
		UserID: uint(id),
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
