package auth

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-favorite-cities/config"
)

// ErrInvalidToken is the only failure Verify reports, whatever went wrong.
var ErrInvalidToken = errors.New("invalid token")

var ErrEmptySubject = errors.New("token subject must not be empty")

var _ TokenIssuer = (*TokenManager)(nil)

// TokenIssuer mints and checks signed bearer tokens carrying a username.
type TokenIssuer interface {
	// Issue signs a token for subject valid for ttl. A ttl <= 0 selects the
	// configured default.
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify returns the token's subject or ErrInvalidToken.
	Verify(token string) (string, error)
}

// TokenManager implements TokenIssuer with HMAC-signed JWTs.
type TokenManager struct {
	secret     []byte
	method     jwt.SigningMethod
	defaultTTL time.Duration
	issuer     string
	now        func() time.Time
	logger     *slog.Logger
	parser     *jwt.Parser
}

type TokenOption func(*TokenManager)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

// WithLogger sets where rejected-token details go (debug level only).
func WithLogger(logger *slog.Logger) TokenOption {
	return func(m *TokenManager) {
		m.logger = logger
	}
}

func NewTokenManager(cfg config.JWTConfig, opts ...TokenOption) (*TokenManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown jwt algorithm %q", cfg.Algorithm)
	}

	m := &TokenManager{
		secret:     []byte(cfg.SecretKey),
		method:     method,
		defaultTTL: cfg.TTL(),
		issuer:     cfg.Issuer,
		now:        time.Now,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(m.issuer))
	}
	m.parser = jwt.NewParser(parserOpts...)

	return m, nil
}

// DefaultTTL is the lifetime used when Issue is called without one.
func (m *TokenManager) DefaultTTL() time.Duration {
	return m.defaultTTL
}

func (m *TokenManager) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrEmptySubject
	}
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := m.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		m.logger.Debug("Token rejected", slog.String("reason", err.Error()))
		return "", ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		m.logger.Debug("Token rejected", slog.String("reason", "missing subject"))
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
