package auth

import (
	"time"

	"github.com/ekklesia/church-directory/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	now func() time.Time
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		signer: signer,
		now:    time.Now,
	}
}

// WithClock overrides the time source; tests use this to pin timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// AuthResult is the common output of Login and Register.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

func domainCode(err error) string {
	if err == nil {
		return ""
	}
	if de, ok := err.(*domain.Error); ok {
		return de.Code
	}
	return "non_domain_error"
}
