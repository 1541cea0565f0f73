package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ekklesia/church-directory/internal/application/auth"
	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/infrastructure/memory"
	"github.com/ekklesia/church-directory/internal/infrastructure/security"
	"github.com/ekklesia/church-directory/internal/logger"
	"github.com/ekklesia/church-directory/internal/transport/http/middleware"
)

// mustJSONBody marshals v to JSON and returns a reader for a request body.
func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// mustReadData decodes the {"data": ...} envelope into out.
func mustReadData(t *testing.T, body *bytes.Buffer, out any) {
	t.Helper()
	wrapped := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body.Bytes(), &wrapped); err != nil || len(wrapped.Data) == 0 {
		t.Fatalf("decode envelope failed; body=%s", body.String())
	}
	if err := json.Unmarshal(wrapped.Data, out); err != nil {
		t.Fatalf("decode data failed; body=%s err=%v", body.String(), err)
	}
}

func mustErrCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var eb struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body.Bytes(), &eb); err != nil {
		t.Fatalf("decode error body: %v; body=%s", err, body.String())
	}
	return eb.Error.Code
}

// withUserCtx injects identity the way the Auth middleware would.
func withUserCtx(req *http.Request, userID, email string, role domain.Role) *http.Request {
	ctx := middleware.WithUser(req.Context(), userID, email, role)
	return req.WithContext(ctx)
}

// withURLParam injects a chi URL param (e.g. /churches/{id}).
func withURLParam(req *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

func newAuthService(t *testing.T) (*auth.Service, *memory.UserRepo) {
	t.Helper()
	logger.InitWithWriter(io.Discard)

	users := memory.NewUserRepo()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	signer := security.NewJWTSigner("test-secret", "church-directory", "church-directory-clients", 24*time.Hour)
	return auth.NewService(users, hasher, signer), users
}

func newChurchService(t *testing.T) (*church.Service, *memory.ChurchRepo) {
	t.Helper()
	logger.InitWithWriter(io.Discard)

	repo := memory.NewChurchRepo()
	return church.NewService(repo, repo), repo
}
