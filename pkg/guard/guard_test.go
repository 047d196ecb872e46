package guard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mahir/lifelessons/pkg/auth"
)

func bearerToken(t *testing.T, subject, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: subject + "@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("dev-secret-change-me"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return "Bearer " + signed
}

func decodeRejection(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode rejection body: %v", err)
	}
	return body
}

func TestChain_FirstRejectionWins(t *testing.T) {
	rejectA := func(r *http.Request) (*http.Request, *Rejection) {
		return r, &Rejection{Status: http.StatusForbidden, Code: "first", Message: "first guard"}
	}
	rejectB := func(r *http.Request) (*http.Request, *Rejection) {
		t.Error("second guard must not run after a rejection")
		return r, &Rejection{Status: http.StatusForbidden, Code: "second", Message: "second guard"}
	}
	handlerCalled := false
	handler := func(w http.ResponseWriter, r *http.Request) { handlerCalled = true }

	rec := httptest.NewRecorder()
	Chain(handler, rejectA, rejectB)(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if handlerCalled {
		t.Error("handler must not run after a rejection")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	body := decodeRejection(t, rec)
	if body["code"] != "first" {
		t.Errorf("code = %v, want first", body["code"])
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestChain_PassesEnrichedContextForward(t *testing.T) {
	enrich := func(r *http.Request) (*http.Request, *Rejection) {
		return r.WithContext(context.WithValue(r.Context(), SubjectKey, "subject-1")), nil
	}
	check := func(r *http.Request) (*http.Request, *Rejection) {
		if s, ok := Subject(r.Context()); !ok || s != "subject-1" {
			t.Errorf("subject not carried forward, got %q", s)
		}
		return r, nil
	}
	handlerCalled := false
	handler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		if s, _ := Subject(r.Context()); s != "subject-1" {
			t.Errorf("handler subject = %q", s)
		}
	}

	Chain(handler, enrich, check)(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if !handlerCalled {
		t.Error("handler should run when every guard passes")
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic abc123", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "", wantStatus: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.authHeader
			if tt.name == "valid token" {
				header = bearerToken(t, "subject-1", "user")
			}
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}

			enriched, rejection := Authenticate(req)
			if tt.wantStatus == 0 {
				if rejection != nil {
					t.Fatalf("unexpected rejection: %+v", rejection)
				}
				if s, _ := Subject(enriched.Context()); s != "subject-1" {
					t.Errorf("subject = %q", s)
				}
				if e, _ := Email(enriched.Context()); e != "subject-1@example.com" {
					t.Errorf("email = %q", e)
				}
				if r, _ := Role(enriched.Context()); r != "user" {
					t.Errorf("role = %q", r)
				}
				return
			}
			if rejection == nil {
				t.Fatal("expected a rejection")
			}
			if rejection.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", rejection.Status, tt.wantStatus)
			}
			if rejection.Code != "unauthenticated" {
				t.Errorf("code = %q, want unauthenticated", rejection.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := RequireRole("admin")

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, "user"))
	if _, rejection := admin(req); rejection == nil || rejection.Status != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %+v", rejection)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	if _, rejection := admin(req); rejection == nil {
		t.Error("expected rejection when no role in context")
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleKey, "admin"))
	if _, rejection := admin(req); rejection != nil {
		t.Errorf("unexpected rejection for matching role: %+v", rejection)
	}
}

type fakePremiumChecker struct {
	isPremiumFn func(ctx context.Context, subject string) (bool, error)
}

func (f *fakePremiumChecker) IsPremium(ctx context.Context, subject string) (bool, error) {
	return f.isPremiumFn(ctx, subject)
}

func TestRequirePremium(t *testing.T) {
	withSubject := func(subject string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		return req.WithContext(context.WithValue(req.Context(), SubjectKey, subject))
	}

	t.Run("premium subject passes", func(t *testing.T) {
		g := RequirePremium(&fakePremiumChecker{
			isPremiumFn: func(ctx context.Context, subject string) (bool, error) { return true, nil },
		})
		if _, rejection := g(withSubject("subject-1")); rejection != nil {
			t.Errorf("unexpected rejection: %+v", rejection)
		}
	})

	t.Run("free subject rejected", func(t *testing.T) {
		g := RequirePremium(&fakePremiumChecker{
			isPremiumFn: func(ctx context.Context, subject string) (bool, error) { return false, nil },
		})
		_, rejection := g(withSubject("subject-1"))
		if rejection == nil {
			t.Fatal("expected rejection")
		}
		if rejection.Status != http.StatusForbidden || rejection.Code != "premium_required" {
			t.Errorf("rejection = %+v", rejection)
		}
	})

	t.Run("unauthenticated request rejected", func(t *testing.T) {
		g := RequirePremium(&fakePremiumChecker{
			isPremiumFn: func(ctx context.Context, subject string) (bool, error) {
				t.Error("checker must not run without a subject")
				return false, nil
			},
		})
		_, rejection := g(httptest.NewRequest(http.MethodGet, "/x", nil))
		if rejection == nil || rejection.Status != http.StatusUnauthorized {
			t.Errorf("rejection = %+v", rejection)
		}
	})
}
