package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ekklesia/church-directory/internal/domain"
)

type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// Register creates an account and issues a token, the same result shape as
// Login. The email must be unused by any account, active or not.
func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)

	if in.Email == "" {
		return AuthResult{}, domain.ErrMissingField("email")
	}
	if in.Password == "" {
		return AuthResult{}, domain.ErrMissingField("password")
	}
	// Handlers validate this too; the service re-checks so the invariant
	// holds no matter which caller invokes it.
	if in.Password != in.ConfirmPassword {
		return AuthResult{}, domain.ErrPasswordMismatch()
	}

	if _, err := s.users.GetByEmail(ctx, in.Email, false); err == nil {
		return AuthResult{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	now := s.now().UTC()
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return AuthResult{}, err
	}

	token, expiresAt, err := s.signer.Issue(created)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Token: token, ExpiresAt: expiresAt, User: created}, nil
}
