package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixground/internal/shared/config"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "1234"
	cfg.Session.Secret = "test-secret"
	cfg.Session.TTL = time.Hour

	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesValidSession(t *testing.T) {
	svc := newTestService(t)

	resp, token, err := svc.Login(context.Background(), &LoginRequest{
		Username: "admin",
		Password: "1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "admin", resp.Username)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "session", claims.Type)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "1234"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateSession("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateSession("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateSessionRejectsForeignSecret(t *testing.T) {
	svc := newTestService(t)

	other := &config.Config{}
	other.Admin.Username = "admin"
	other.Admin.Password = "1234"
	other.Session.Secret = "different-secret"
	other.Session.TTL = time.Hour
	otherSvc, err := NewService(other)
	require.NoError(t, err)

	_, token, err := otherSvc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "1234"})
	require.NoError(t, err)

	_, err = svc.ValidateSession(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
