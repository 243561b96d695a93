package auth

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-favorite-cities/internal/types"
)

func BenchmarkTokenIssue(b *testing.B) {
	m, err := NewTokenManager(testJWTConfig())
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Issue("alice", time.Minute); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTokenVerify(b *testing.B) {
	m, err := NewTokenManager(testJWTConfig())
	if err != nil {
		b.Fatal(err)
	}
	token, err := m.Issue("alice", time.Hour)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Verify(token); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBcryptVerify(b *testing.B) {
	h := NewBcryptHasher(bcrypt.MinCost)
	digest, err := h.Hash("correct-password")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Verify("correct-password", digest)
	}
}

func BenchmarkAuthenticateMiddlewareParallel(b *testing.B) {
	svc := new(MockAuthService)
	svc.On("ResolveBearer", mock.Anything, "bench-token").Return(&types.User{ID: uuid.New(), Username: "alice"}, nil)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Authenticate(svc, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			req.Header.Set("Authorization", "Bearer bench-token")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusNoContent {
				b.Fatalf("unexpected status %d", rec.Code)
			}
		}
	})
}
