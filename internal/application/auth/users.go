package auth

import (
	"context"

	"github.com/ekklesia/church-directory/internal/domain"
)

// GetUserByID returns an active account for profile lookups.
func (s *Service) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	if userID == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	if !u.IsActive {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

// ListUsers returns all active accounts ordered by email ascending.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListActive(ctx)
}
