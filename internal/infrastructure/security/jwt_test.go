package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ekklesia/church-directory/internal/domain"
)

func testUser() domain.User {
	return domain.User{
		ID:        "u1",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      domain.RoleDataCurator,
	}
}

func TestJWTSigner_IssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "church-directory", "church-directory-clients", 24*time.Hour)
	tok, exp, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected non-empty token")
	}
	if got := time.Until(exp); got < 23*time.Hour {
		t.Fatalf("expected ~24h expiry, got %v", got)
	}

	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("verify err: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "jane@example.com" || claims.Role != domain.RoleDataCurator {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt.IsZero() {
		t.Fatalf("expected exp to be set")
	}
}

func TestJWTSigner_Issue_UniqueJTI(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "iss", "aud", time.Hour)
	t1, _, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}
	t2, _, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}
	if t1 == t2 {
		t.Fatalf("expected distinct tokens per issue")
	}
}

func TestJWTSigner_Verify_Expired_ReturnsTokenExpired(t *testing.T) {
	t.Parallel()

	past := time.Now().Add(-48 * time.Hour)
	issuer := NewJWTSigner("secret", "iss", "aud", 24*time.Hour).WithClock(func() time.Time { return past })
	tok, _, err := issuer.Issue(testUser())
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	verifier := NewJWTSigner("secret", "iss", "aud", 24*time.Hour)
	_, verr := verifier.Verify(tok)
	if !domain.Is(verr, "token_expired") {
		t.Fatalf("expected token_expired, got %v", verr)
	}
}

func TestJWTSigner_Verify_WrongSecret_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s1 := NewJWTSigner("secret1", "iss", "aud", time.Hour)
	s2 := NewJWTSigner("secret2", "iss", "aud", time.Hour)

	tok, _, err := s1.Issue(testUser())
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	_, verr := s2.Verify(tok)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTSigner_Verify_WrongIssuerOrAudience_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "iss", "aud", time.Hour)
	tok, _, err := s.Issue(testUser())
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	if _, verr := NewJWTSigner("secret", "other-iss", "aud", time.Hour).Verify(tok); !domain.Is(verr, "token_invalid") {
		t.Fatalf("wrong issuer: expected token_invalid, got %v", verr)
	}
	if _, verr := NewJWTSigner("secret", "iss", "other-aud", time.Hour).Verify(tok); !domain.Is(verr, "token_invalid") {
		t.Fatalf("wrong audience: expected token_invalid, got %v", verr)
	}
}

func TestJWTSigner_Verify_UnsignedAlg_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	// token minted with alg=none must never verify
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:   "iss",
		Audience: jwt.ClaimStrings{"aud"},
		Subject:  "u1",
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	s := NewJWTSigner("secret", "iss", "aud", time.Hour)
	if _, verr := s.Verify(signed); !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTSigner_Verify_Garbage_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "iss", "aud", time.Hour)
	for _, tok := range []string{"", "not-a-jwt", strings.Repeat("a.", 3)} {
		if _, verr := s.Verify(tok); !domain.Is(verr, "token_invalid") {
			t.Fatalf("token %q: expected token_invalid, got %v", tok, verr)
		}
	}
}

func TestJWTSigner_Verify_UnknownRole_ReturnsTokenInvalid(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "iss", "aud", time.Hour)
	u := testUser()
	u.Role = domain.Role("superuser")
	tok, _, err := s.Issue(u)
	if err != nil {
		t.Fatalf("issue err: %v", err)
	}

	if _, verr := s.Verify(tok); !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}
