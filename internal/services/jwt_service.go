package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/creatorhub/creator-review-api/internal/constants"
	"github.com/creatorhub/creator-review-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims defines the JWT payload. RegisteredClaims carries the standard
// expiry/issue fields.
type Claims struct {
	Username            string      `json:"username"`
	Role                models.Role `json:"role"`
	CoordinatorUsername string      `json:"coordinator_username,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

// Generate signs a token for the given user.
func (s *TokenService) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username:            user.Username,
		Role:                user.Role,
		CoordinatorUsername: user.CoordinatorUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    constants.TokenIssuer,
			Subject:   user.Username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		log.WithError(err).WithField("username", user.Username).Error("Failed to sign token")
		return "", err
	}

	return signed, nil
}

// Validate parses a token string and returns its claims when valid.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		log.WithError(err).Debug("Token validation failed")
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
