package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"tixground/internal/shared/config"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, string, error)
	ValidateSession(tokenString string) (*SessionClaims, error)
}

type service struct {
	config *config.Config
	// configured practice password, hashed once at startup
	passwordHash []byte
}

func NewService(cfg *config.Config) (Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &service{
		config:       cfg,
		passwordHash: hash,
	}, nil
}

// Login checks the credential pair against the configured practice account
// and mints the session token carried by every later call. A failed login
// never changes server state.
func (s *service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, string, error) {
	if req.Username != s.config.Admin.Username {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateSessionToken(req.Username)
	if err != nil {
		return nil, "", err
	}

	return &LoginResponse{
		Username:  req.Username,
		ExpiresIn: int64(s.config.Session.TTL.Seconds()),
	}, token, nil
}

func (s *service) ValidateSession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Session.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != "session" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) generateSessionToken(username string) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		Username: username,
		Type:     "session",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Session.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Session.Secret))
}
