package auth

import (
	"context"

	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/logger"
)

// SetUserRole assigns a role to an account. Deactivated accounts are treated
// as missing; role administration never resurrects them.
func (s *Service) SetUserRole(ctx context.Context, userID string, role domain.Role) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if !domain.IsValidRole(role) {
		return domain.ErrInvalidRole(string(role))
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return domain.ErrUserNotFound()
	}

	u.Role = role
	u.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info().
		Str("user_id", userID).
		Str("role", string(role)).
		Msg("user_role_updated")
	return nil
}

// Deactivate soft-deletes an account. Accounts are never hard-deleted.
// Deactivating an already-inactive account succeeds (idempotent).
func (s *Service) Deactivate(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	u.IsActive = false
	u.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info().
		Str("user_id", userID).
		Msg("user_deactivated")
	return nil
}
