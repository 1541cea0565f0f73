package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ekklesia/church-directory/internal/application/auth"
	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/transport/http/response"
)

type fakeVerifier struct {
	claims auth.Claims
	err    error
}

func (v fakeVerifier) Verify(string) (auth.Claims, error) {
	return v.claims, v.err
}

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := UserIDFromContext(r.Context())
		role, _ := RoleFromContext(r.Context())
		w.Header().Set("X-User", id)
		w.Header().Set("X-Role", string(role))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	t.Parallel()

	mw := Auth(fakeVerifier{}, response.WriteError)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	mw(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rec.Code)
	}
}

func TestAuth_BadScheme(t *testing.T) {
	t.Parallel()

	mw := Auth(fakeVerifier{}, response.WriteError)
	for _, h := range []string{"Basic abc", "Bearer", "Bearer   "} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", h)

		mw(protectedEcho(t)).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status=%d, want 401", h, rec.Code)
		}
	}
}

func TestAuth_VerifierErrorPropagates(t *testing.T) {
	t.Parallel()

	mw := Auth(fakeVerifier{err: domain.ErrTokenExpired()}, response.WriteError)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer whatever")

	mw(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rec.Code)
	}
}

func TestAuth_InjectsIdentity(t *testing.T) {
	t.Parallel()

	mw := Auth(fakeVerifier{claims: auth.Claims{
		UserID: "u1", Email: "a@b.com", Role: domain.RoleAdmin,
	}}, response.WriteError)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer tok")

	mw(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if rec.Header().Get("X-User") != "u1" || rec.Header().Get("X-Role") != "admin" {
		t.Fatalf("identity not injected: %v", rec.Header())
	}
}

func TestRequireAtLeast_Hierarchy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		role    domain.Role
		minRole domain.Role
		status  int
	}{
		{domain.RoleUser, domain.RoleUser, http.StatusOK},
		{domain.RoleUser, domain.RoleDataCurator, http.StatusForbidden},
		{domain.RoleUser, domain.RoleAdmin, http.StatusForbidden},
		{domain.RoleDataCurator, domain.RoleDataCurator, http.StatusOK},
		{domain.RoleDataCurator, domain.RoleAdmin, http.StatusForbidden},
		{domain.RoleAdmin, domain.RoleUser, http.StatusOK},
		{domain.RoleAdmin, domain.RoleAdmin, http.StatusOK},
	}

	for _, tc := range cases {
		mw := RequireAtLeast(tc.minRole, response.WriteError)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req = req.WithContext(WithUser(req.Context(), "u1", "a@b.com", tc.role))

		mw(protectedEcho(t)).ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("role=%s min=%s: status=%d, want %d", tc.role, tc.minRole, rec.Code, tc.status)
		}
	}
}

func TestRequireAtLeast_NoIdentityIsUnauthorized(t *testing.T) {
	t.Parallel()

	mw := RequireAtLeast(domain.RoleAdmin, response.WriteError)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	mw(protectedEcho(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", rec.Code)
	}
}

func TestRequestID_MintsAndPropagates(t *testing.T) {
	t.Parallel()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = w.Header().Get(HeaderXRequestID)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" {
		t.Fatalf("expected a minted request id")
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderXRequestID, "req-42")
	h.ServeHTTP(rec, req)
	if rec.Header().Get(HeaderXRequestID) != "req-42" {
		t.Fatalf("caller request id not propagated: %q", rec.Header().Get(HeaderXRequestID))
	}
}
