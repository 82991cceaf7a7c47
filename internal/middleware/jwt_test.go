package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaughan-dsouza/userapi/internal/utils"
)

const secret = "test-secret"

func protected(t *testing.T, gotID *int64) http.Handler {
	t.Helper()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := utils.UserIDFromContext(r.Context())
		require.True(t, ok)
		*gotID = uid
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(secret)(next)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tok, err := utils.GenerateToken(12, secret, time.Minute)
	require.NoError(t, err)

	var gotID int64
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	protected(t, &gotID).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), gotID)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired, err := utils.GenerateToken(1, secret, -time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateToken(1, "other", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "Missing Authorization Header"},
		{"wrong scheme", "Basic abc", "Bad Authorization header. Expected 'Authorization: Bearer <JWT>'"},
		{"empty token", "Bearer   ", "Bad Authorization header. Expected 'Authorization: Bearer <JWT>'"},
		{"garbage", "Bearer abc.def.ghi", "Invalid token"},
		{"expired", "Bearer " + expired, "Invalid token"},
		{"foreign secret", "bearer " + foreign, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(t, &gotID).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"msg":"`+tt.wantMsg+`"}`, rec.Body.String())
			assert.Zero(t, gotID, "next must not run")
		})
	}
}
