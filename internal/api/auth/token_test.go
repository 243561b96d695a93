package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-favorite-cities/config"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:      "test-access-secret",
		Algorithm:      "HS256",
		AccessTokenTTL: 15 * time.Minute,
		Issuer:         "test-issuer",
	}
}

func newTestTokenManager(t *testing.T, cfg config.JWTConfig, clock *fakeClock) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(cfg, WithClock(clock.Now))
	require.NoError(t, err)
	return m
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	token, err := m.Issue("alice", time.Hour)
	require.NoError(t, err)

	subject, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenManager_ExpiryTimeline(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestTokenManager(t, testJWTConfig(), clock)

	token, err := m.Issue("alice", 15*time.Minute)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	subject, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	clock.Advance(11 * time.Minute)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestTokenManager(t, testJWTConfig(), clock)
	assert.Equal(t, 15*time.Minute, m.DefaultTTL())

	token, err := m.Issue("alice", 0)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(15*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestTokenManager_UnsetTTLFallsBackToDefault(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = 0

	m, err := NewTokenManager(cfg)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAccessTokenTTL, m.DefaultTTL())
}

func TestTokenManager_RejectsDifferentSecret(t *testing.T) {
	other := testJWTConfig()
	other.SecretKey = "another-secret"
	signer, err := NewTokenManager(other)
	require.NoError(t, err)

	token, err := signer.Issue("alice", time.Hour)
	require.NoError(t, err)

	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithm(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Algorithm = "HS512"
	signer, err := NewTokenManager(cfg)
	require.NoError(t, err)

	token, err := signer.Issue("alice", time.Hour)
	require.NoError(t, err)

	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnsignedToken(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		Issuer:    "test-issuer",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMissingClaims(t *testing.T) {
	cfg := testJWTConfig()
	secret := []byte(cfg.SecretKey)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "no exp", claims: jwt.MapClaims{"sub": "alice", "iss": cfg.Issuer}},
		{name: "no sub", claims: jwt.MapClaims{"exp": exp, "iss": cfg.Issuer}},
		{name: "empty sub", claims: jwt.MapClaims{"sub": "", "exp": exp, "iss": cfg.Issuer}},
		{name: "wrong issuer", claims: jwt.MapClaims{"sub": "alice", "exp": exp, "iss": "someone-else"}},
	}

	m, err := NewTokenManager(cfg)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString(secret)
			require.NoError(t, err)

			_, err = m.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenManager_MalformedTokens(t *testing.T) {
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	for _, token := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestTokenManager_UniformFailure(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestTokenManager(t, testJWTConfig(), clock)

	expired, err := m.Issue("alice", time.Minute)
	require.NoError(t, err)
	clock.Advance(time.Hour)

	_, expiredErr := m.Verify(expired)
	_, malformedErr := m.Verify("garbage")

	assert.Equal(t, expiredErr, malformedErr)
}

func TestTokenManager_IssueRequiresSubject(t *testing.T) {
	m, err := NewTokenManager(testJWTConfig())
	require.NoError(t, err)

	_, err = m.Issue("", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestNewTokenManager_RequiresConfig(t *testing.T) {
	_, err := NewTokenManager(config.JWTConfig{Algorithm: "HS256"})
	assert.ErrorIs(t, err, config.ErrMissingJWTConfig)

	_, err = NewTokenManager(config.JWTConfig{SecretKey: "s"})
	assert.ErrorIs(t, err, config.ErrMissingJWTConfig)
}
