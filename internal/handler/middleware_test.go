package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityMiddleware(t *testing.T) {
	var captured struct {
		mutualID int64
		callerID string
		called   bool
	}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc, ok := ScopeFrom(r)
		require.True(t, ok)
		captured.mutualID = sc.MutualID
		captured.callerID = sc.CallerID
		captured.called = true
		w.WriteHeader(http.StatusOK)
	})
	wrapped := IdentityMiddleware(next)

	cases := []struct {
		name       string
		mutualID   string
		callerID   string
		wantStatus int
	}{
		{"valid headers", "42", "teller-7", http.StatusOK},
		{"missing mutual", "", "teller-7", http.StatusUnauthorized},
		{"non-numeric mutual", "acme", "teller-7", http.StatusUnauthorized},
		{"zero mutual", "0", "teller-7", http.StatusUnauthorized},
		{"negative mutual", "-3", "teller-7", http.StatusUnauthorized},
		{"missing caller", "42", "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			captured.called = false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/credits", nil)
			if tc.mutualID != "" {
				req.Header.Set(HeaderMutualID, tc.mutualID)
			}
			if tc.callerID != "" {
				req.Header.Set(HeaderCallerID, tc.callerID)
			}

			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantStatus == http.StatusOK, captured.called)
		})
	}

	assert.Equal(t, int64(42), captured.mutualID)
	assert.Equal(t, "teller-7", captured.callerID)
}

func TestScopeFrom_MissingScope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ScopeFrom(req)
	assert.False(t, ok)
}
