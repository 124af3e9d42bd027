package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mfiguera/credimutual/internal/scope"
	"github.com/mfiguera/credimutual/pkg/response"
)

// The identity provider in front of this service authenticates the request
// and forwards the resolved tenant and caller in these headers. The core
// only checks presence and shape.
const (
	HeaderMutualID = "X-Mutual-ID"
	HeaderCallerID = "X-Caller-ID"
)

type contextKey int

const scopeKey contextKey = iota

// IdentityMiddleware builds the request's tenant scope from the identity
// headers and rejects requests without a usable tenant or caller. The scope
// lives only in the request context; nothing is stored globally.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mutualID, err := strconv.ParseInt(r.Header.Get(HeaderMutualID), 10, 64)
		if err != nil || mutualID <= 0 {
			response.Unauthorized(w, "missing or invalid "+HeaderMutualID+" header")
			return
		}

		callerID := r.Header.Get(HeaderCallerID)
		if callerID == "" {
			response.Unauthorized(w, "missing "+HeaderCallerID+" header")
			return
		}

		sc := scope.Scope{MutualID: mutualID, CallerID: callerID}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), scopeKey, sc)))
	})
}

// ScopeFrom returns the tenant scope attached by IdentityMiddleware.
func ScopeFrom(r *http.Request) (scope.Scope, bool) {
	sc, ok := r.Context().Value(scopeKey).(scope.Scope)
	return sc, ok
}
