package auth

import (
	"context"

	"github.com/ekklesia/church-directory/internal/domain"
)

// PasswordChange replaces the password of an authenticated user. A missing or
// deactivated account and a wrong current password all collapse into the same
// failure; the caller only learns that the change did not happen.
func (s *Service) PasswordChange(ctx context.Context, userID, currentPassword, newPassword string) error {
	if userID == "" {
		return domain.ErrTokenMissing()
	}
	if currentPassword == "" || newPassword == "" {
		return domain.ErrMissingField("password")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.ErrInvalidCredentials()
	}
	if !u.IsActive {
		return domain.ErrInvalidCredentials()
	}

	if err := s.hasher.Compare(u.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials()
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = newHash
	u.UpdatedAt = s.now().UTC()
	return s.users.Update(ctx, u)
}
