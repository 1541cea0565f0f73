package auth

import (
	"context"
	"time"

	"github.com/ekklesia/church-directory/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts. Only describes WHAT the auth service needs,
not HOW it is stored. Email is an exact-match, case-sensitive key; the store
enforces uniqueness at insert time.
*/
type UserRepo interface {
	// GetByEmail looks up by exact email. With activeOnly, deactivated
	// accounts are treated as missing.
	GetByEmail(ctx context.Context, email string, activeOnly bool) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	// Update persists mutable fields (password_hash, role, is_active,
	// updated_at, last_login_at).
	Update(ctx context.Context, u domain.User) error
	// ListActive returns active accounts ordered by email ascending.
	ListActive(ctx context.Context) ([]domain.User, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt. The hash embeds its own salt, so Compare needs only the
password and the stored hash.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies bearer tokens. Used by the service and the auth
middleware. There is no revocation; tokens die only by expiry.
*/
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

type TokenSigner interface {
	Issue(u domain.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (Claims, error)
}
