package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-shorts-platform/internal/config"
	"github.com/pribylovaa/go-shorts-platform/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(config.AuthConfig{JWTSecret: "test-secret-0123456789", TokenTTL: time.Hour, Issuer: "shorts-test"})
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := newTestManager()
	u := &models.User{ID: uuid.New(), Username: "bob", Role: models.RoleAdmin}

	now := time.Now()
	tok, exp, err := m.Issue(u, now)
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(time.Hour), exp, time.Second)

	a, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, u.ID, a.UserID)
	require.Equal(t, "bob", a.Username)
	require.True(t, a.IsAdmin())
}

func TestVerify_Expired(t *testing.T) {
	m := newTestManager()
	tok, _, err := m.Issue(&models.User{ID: uuid.New(), Role: models.RoleUser}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecretIssuerOrGarbage(t *testing.T) {
	m := newTestManager()
	u := &models.User{ID: uuid.New(), Role: models.RoleUser}

	other := NewManager(config.AuthConfig{JWTSecret: "another-secret-012345", TokenTTL: time.Hour, Issuer: "shorts-test"})
	tok, _, err := other.Issue(u, time.Now())
	require.NoError(t, err)
	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	foreign := NewManager(config.AuthConfig{JWTSecret: "test-secret-0123456789", TokenTTL: time.Hour, Issuer: "elsewhere"})
	tok, _, err = foreign.Issue(u, time.Now())
	require.NoError(t, err)
	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	m := newTestManager()
	claims := accessClaims{
		UserID: uuid.NewString(),
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shorts-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Неизвестная роль в токене понижается до user.
func TestVerify_UnknownRoleDowngraded(t *testing.T) {
	m := newTestManager()
	tok, _, err := m.Issue(&models.User{ID: uuid.New(), Role: "superuser"}, time.Now())
	require.NoError(t, err)

	a, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, a.Role)
}

func TestActorContext(t *testing.T) {
	require.True(t, ActorFrom(context.Background()).IsAnonymous())

	a := models.Actor{UserID: uuid.New(), Role: models.RoleUser}
	require.Equal(t, a, ActorFrom(WithActor(context.Background(), a)))
}
