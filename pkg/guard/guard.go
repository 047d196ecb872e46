// Package guard implements request authorization as an explicit ordered list
// of predicates. Each guard either lets the request continue (possibly with an
// enriched context) or terminates it with a rejection carrying a reason code.
package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mahir/lifelessons/pkg/auth"
	"github.com/mahir/lifelessons/pkg/logger"
)

type contextKey string

const (
	SubjectKey contextKey = "subject"
	EmailKey   contextKey = "email"
	RoleKey    contextKey = "role"
)

// Rejection is a terminal guard outcome.
type Rejection struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Guard inspects a request and either returns an (optionally enriched)
// request to continue with, or a rejection.
type Guard func(r *http.Request) (*http.Request, *Rejection)

// Chain evaluates guards in order before invoking the handler. The first
// rejection wins and the handler is never called.
func Chain(next http.HandlerFunc, guards ...Guard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, g := range guards {
			enriched, rejection := g(r)
			if rejection != nil {
				logger.Warn(r.Context()).
					Str("path", r.URL.Path).
					Str("code", rejection.Code).
					Msg("Request rejected by guard")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(rejection.Status)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false,
					"error":   rejection.Message,
					"code":    rejection.Code,
				})
				return
			}
			r = enriched
		}
		next.ServeHTTP(w, r)
	}
}

// Authenticate verifies the bearer token and stores the identity claims in
// the request context.
func Authenticate(r *http.Request) (*http.Request, *Rejection) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return r, &Rejection{Status: http.StatusUnauthorized, Code: "unauthenticated", Message: "Authorization header required"}
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return r, &Rejection{Status: http.StatusUnauthorized, Code: "unauthenticated", Message: "Invalid authorization header format"}
	}

	claims, err := auth.VerifyToken(parts[1])
	if err != nil {
		return r, &Rejection{Status: http.StatusUnauthorized, Code: "unauthenticated", Message: "Invalid token"}
	}

	ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	ctx = context.WithValue(ctx, RoleKey, claims.Role)
	return r.WithContext(ctx), nil
}

// RequireRole rejects callers whose token role does not match. It must run
// after Authenticate in the chain.
func RequireRole(role string) Guard {
	return func(r *http.Request) (*http.Request, *Rejection) {
		got, ok := Role(r.Context())
		if !ok || got != role {
			return r, &Rejection{Status: http.StatusForbidden, Code: "forbidden", Message: role + " access required"}
		}
		return r, nil
	}
}

// PremiumChecker reports whether an identity holds the premium entitlement.
type PremiumChecker interface {
	IsPremium(ctx context.Context, subject string) (bool, error)
}

// RequirePremium rejects callers without the premium entitlement. It must
// run after Authenticate in the chain.
func RequirePremium(checker PremiumChecker) Guard {
	return func(r *http.Request) (*http.Request, *Rejection) {
		subject, ok := Subject(r.Context())
		if !ok {
			return r, &Rejection{Status: http.StatusUnauthorized, Code: "unauthenticated", Message: "Authentication required"}
		}
		premium, err := checker.IsPremium(r.Context(), subject)
		if err != nil {
			return r, &Rejection{Status: http.StatusInternalServerError, Code: "internal", Message: "Failed to check entitlement"}
		}
		if !premium {
			return r, &Rejection{Status: http.StatusForbidden, Code: "premium_required", Message: "Premium entitlement required"}
		}
		return r, nil
	}
}

// Subject returns the authenticated identity key from the context.
func Subject(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)
	return s, ok
}

// Email returns the authenticated email from the context.
func Email(ctx context.Context) (string, bool) {
	e, ok := ctx.Value(EmailKey).(string)
	return e, ok
}

// Role returns the authenticated role from the context.
func Role(ctx context.Context) (string, bool) {
	r, ok := ctx.Value(RoleKey).(string)
	return r, ok
}
