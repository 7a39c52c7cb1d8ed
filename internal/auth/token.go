// auth выпускает и проверяет access-токены (JWT HS256) и переносит
// идентичность запроса (models.Actor) через context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-shorts-platform/internal/config"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type accessClaims struct {
	UserID   string `json:"uid"`
	Username string `json:"name,omitempty"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager подписывает и проверяет токены одним секретом.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewManager(cfg config.AuthConfig) *Manager {
	return &Manager{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
	}
}

// Issue выпускает access-токен для пользователя.
func (m *Manager) Issue(u *models.User, now time.Time) (string, time.Time, error) {
	const op = "auth/token/Issue"

	exp := now.Add(m.ttl)
	claims := accessClaims{
		UserID:   u.ID.String(),
		Username: u.Username,
		Role:     string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   u.ID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	return signed, exp, nil
}

// Verify проверяет подпись, срок и издателя и возвращает Actor.
func (m *Manager) Verify(tokenStr string) (models.Actor, error) {
	const op = "auth/token/Verify"

	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Actor{}, fmt.Errorf("%s: %w", op, ErrTokenExpired)
		}

		return models.Actor{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return models.Actor{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	uid, err := uuid.Parse(claims.UserID)
	if err != nil || uid == uuid.Nil {
		return models.Actor{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	role := models.Role(claims.Role)
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	return models.Actor{UserID: uid, Username: claims.Username, Role: role}, nil
}
