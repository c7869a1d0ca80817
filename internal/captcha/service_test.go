package captcha

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixground/internal/shared/config"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.Captcha.TTL = 5 * time.Minute
	return NewService(NewMemoryStore(), cfg)
}

func TestIssueProducesSixDigitCode(t *testing.T) {
	svc := newTestService(t)

	challenge, err := svc.Issue(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, challenge.ID)
	require.Len(t, challenge.Code, 6)
	for _, r := range challenge.Code {
		assert.True(t, r >= '0' && r <= '9', "non-digit %q in code", r)
	}
}

func TestVerifyConsumesChallenge(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Issue(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Verify(ctx, challenge.ID, challenge.Code))

	// Single use: the same id is spent
	err = svc.Verify(ctx, challenge.ID, challenge.Code)
	require.ErrorIs(t, err, ErrCaptchaExpired)
}

func TestVerifyWrongAnswerBurnsChallenge(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	challenge, err := svc.Issue(ctx)
	require.NoError(t, err)

	err = svc.Verify(ctx, challenge.ID, "000000")
	require.ErrorIs(t, err, ErrCaptchaMismatch)

	// Even the right answer fails now; a fresh image is required
	err = svc.Verify(ctx, challenge.ID, challenge.Code)
	require.ErrorIs(t, err, ErrCaptchaExpired)
}

func TestVerifyMissingIDExpired(t *testing.T) {
	svc := newTestService(t)

	err := svc.Verify(context.Background(), "", "123456")
	require.ErrorIs(t, err, ErrCaptchaExpired)

	err = svc.Verify(context.Background(), "no-such-id", "123456")
	require.ErrorIs(t, err, ErrCaptchaExpired)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "id-1", "123456", -time.Second))

	_, ok, err := store.Consume(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRenderSVGContainsCode(t *testing.T) {
	svc := newTestService(t)

	svg := svc.RenderSVG("482913")
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "482913")
}
