package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"giftlist/internal/domain/models"
	"giftlist/internal/httputil"
)

func gateRequest(t *testing.T, permissions []string, required ...string) *httptest.ResponseRecorder {
	t.Helper()

	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)
	if permissions != nil {
		claims := &models.TokenClaims{
			Data:        models.User{UUID: "b57a0a46-0000-4000-8000-000000000001"},
			Permissions: permissions,
		}
		req = httputil.WithIdentity(req, &claims.Data, claims)
	}

	rec := httptest.NewRecorder()
	RequirePermission(required...)(next).ServeHTTP(rec, req)

	if rec.Code == http.StatusOK && !reached {
		t.Fatal("200 without reaching handler")
	}
	if rec.Code != http.StatusOK && reached {
		t.Fatal("handler ran despite gate denial")
	}
	return rec
}

func TestRequirePermission(t *testing.T) {
	t.Run("no identity is 401", func(t *testing.T) {
		rec := gateRequest(t, nil, "group:read")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", rec.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "UnauthorizedError" {
			t.Errorf("expected UnauthorizedError, got %v", body["name"])
		}
	})

	t.Run("empty snapshot is 403", func(t *testing.T) {
		rec := gateRequest(t, []string{}, "group:read")
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["name"] != "ForbiddenError" {
			t.Errorf("expected ForbiddenError, got %v", body["name"])
		}
	})

	t.Run("matching permission passes", func(t *testing.T) {
		rec := gateRequest(t, []string{"group:read"}, "group:read")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("any of the required suffices", func(t *testing.T) {
		rec := gateRequest(t, []string{"invitation:read"}, "group:write", "invitation:read")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 with OR semantics, got %d", rec.Code)
		}
	})

	t.Run("unrelated permission is 403", func(t *testing.T) {
		rec := gateRequest(t, []string{"wishlist:read"}, "group:write")
		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
	})
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("first"), tag("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}
