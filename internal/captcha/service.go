package captcha

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"tixground/internal/shared/config"
)

var (
	ErrCaptchaExpired  = errors.New("captcha expired")
	ErrCaptchaMismatch = errors.New("incorrect captcha")
)

// Challenge is one issued captcha: the id travels in a cookie, the code is
// what the wizard user transcribes from the rendered image.
type Challenge struct {
	ID   string
	Code string
}

type Service interface {
	// Issue creates a fresh single-use challenge
	Issue(ctx context.Context) (*Challenge, error)
	// Verify consumes the challenge and checks the transcription. Whatever
	// the outcome, the code is spent and a retry needs a fresh image.
	Verify(ctx context.Context, id, answer string) error
	// RenderSVG renders a challenge code as an SVG image
	RenderSVG(code string) string
}

type service struct {
	store Store
	ttl   time.Duration
}

func NewService(store Store, cfg *config.Config) Service {
	return &service{
		store: store,
		ttl:   cfg.Captcha.TTL,
	}
}

func (s *service) Issue(ctx context.Context) (*Challenge, error) {
	code, err := randomDigits(6)
	if err != nil {
		return nil, err
	}

	challenge := &Challenge{
		ID:   uuid.New().String(),
		Code: code,
	}

	if err := s.store.Save(ctx, challenge.ID, challenge.Code, s.ttl); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *service) Verify(ctx context.Context, id, answer string) error {
	if id == "" {
		return ErrCaptchaExpired
	}

	code, ok, err := s.store.Consume(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCaptchaExpired
	}
	if code != answer {
		return ErrCaptchaMismatch
	}
	return nil
}

// RenderSVG draws the code with a strike-through line, enough to defeat a
// trivial copy-paste while staying OCR-able for tooling practice
func (s *service) RenderSVG(code string) string {
	return fmt.Sprintf(`<svg width="200" height="80" xmlns="http://www.w3.org/2000/svg">
	<rect width="100%%" height="100%%" fill="#f0f0f0"/>
	<text x="50%%" y="50%%" font-size="30" font-family="Arial" font-weight="bold" fill="black" text-anchor="middle" dominant-baseline="middle" letter-spacing="5">%s</text>
	<line x1="10" y1="10" x2="190" y2="70" stroke="gray" stroke-width="2"/>
</svg>`, code)
}

// randomDigits generates an n-digit numeric code using crypto/rand
func randomDigits(n int) (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < n; i++ {
		limit.Mul(limit, big.NewInt(10))
	}

	value, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, value), nil
}
