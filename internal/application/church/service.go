package church

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ekklesia/church-directory/internal/domain"
	"github.com/ekklesia/church-directory/internal/logger"
)

type Service struct {
	churches ChurchRepo
	imports  ImportStore

	now func() time.Time
}

func NewService(churches ChurchRepo, imports ImportStore) *Service {
	return &Service{
		churches: churches,
		imports:  imports,
		now:      time.Now,
	}
}

// WithClock overrides the time source; tests use this to pin timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Get returns one active church. Soft-deleted records are missing on every
// read path.
func (s *Service) Get(ctx context.Context, id string) (domain.Church, error) {
	if id == "" {
		return domain.Church{}, domain.ErrChurchNotFound()
	}
	return s.churches.GetByID(ctx, id, true)
}

type CreateInput struct {
	Name            string
	Address         string
	City            string
	State           string
	ZipCode         string
	Phone           string
	Email           string
	Website         string
	Denomination    string
	Latitude        *float64
	Longitude       *float64
	Description     string
	ServiceSchedule *domain.ServiceSchedule
}

// Create inserts a new church in Pending status. createdBy is the caller's
// email, recorded for audit only.
func (s *Service) Create(ctx context.Context, in CreateInput, createdBy string) (domain.Church, error) {
	if in.Name == "" {
		return domain.Church{}, domain.ErrMissingField("name")
	}

	now := s.now().UTC()
	c := domain.Church{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Address:         in.Address,
		City:            in.City,
		State:           in.State,
		ZipCode:         in.ZipCode,
		Phone:           in.Phone,
		Email:           in.Email,
		Website:         in.Website,
		Denomination:    in.Denomination,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		Description:     in.Description,
		ServiceSchedule: domain.EncodeServiceSchedule(in.ServiceSchedule),
		Status:          domain.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatedBy:       createdBy,
		UpdatedBy:       createdBy,
		IsActive:        true,
	}

	created, err := s.churches.Create(ctx, c)
	if err != nil {
		return domain.Church{}, err
	}

	logger.WithCtx(ctx).Info().
		Str("church_id", created.ID).
		Str("name", created.Name).
		Str("created_by", createdBy).
		Msg("church_created")
	return created, nil
}

// UpdatePatch carries partial updates; nil fields are left unchanged.
type UpdatePatch struct {
	Name            *string
	Address         *string
	City            *string
	State           *string
	ZipCode         *string
	Phone           *string
	Email           *string
	Website         *string
	Denomination    *string
	Latitude        *float64
	Longitude       *float64
	Description     *string
	ServiceSchedule *domain.ServiceSchedule
}

func (s *Service) Update(ctx context.Context, id string, patch UpdatePatch, updatedBy string) (domain.Church, error) {
	c, err := s.churches.GetByID(ctx, id, true)
	if err != nil {
		return domain.Church{}, err
	}

	// Name stays untouched when the patch carries an empty string.
	if patch.Name != nil && *patch.Name != "" {
		c.Name = *patch.Name
	}
	if patch.Address != nil {
		c.Address = *patch.Address
	}
	if patch.City != nil {
		c.City = *patch.City
	}
	if patch.State != nil {
		c.State = *patch.State
	}
	if patch.ZipCode != nil {
		c.ZipCode = *patch.ZipCode
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Website != nil {
		c.Website = *patch.Website
	}
	if patch.Denomination != nil {
		c.Denomination = *patch.Denomination
	}
	if patch.Latitude != nil {
		c.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		c.Longitude = patch.Longitude
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.ServiceSchedule != nil {
		c.ServiceSchedule = domain.EncodeServiceSchedule(patch.ServiceSchedule)
	}

	c.UpdatedBy = updatedBy
	c.UpdatedAt = s.now().UTC()

	if err := s.churches.Update(ctx, c); err != nil {
		return domain.Church{}, err
	}

	logger.WithCtx(ctx).Info().
		Str("church_id", id).
		Str("updated_by", updatedBy).
		Msg("church_updated")
	return c, nil
}

// Delete soft-deletes a church by flipping is_active. The record stays in
// storage and disappears from all read paths.
func (s *Service) Delete(ctx context.Context, id string) error {
	c, err := s.churches.GetByID(ctx, id, false)
	if err != nil {
		return err
	}

	c.IsActive = false
	c.UpdatedAt = s.now().UTC()
	if err := s.churches.Update(ctx, c); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info().
		Str("church_id", id).
		Msg("church_deleted")
	return nil
}

// UpdateStatus is the only way a church moves between pending, verified and
// rejected. The reason is logged, not stored.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.ChurchStatus, reason, updatedBy string) error {
	if !domain.IsValidChurchStatus(status) {
		return domain.ErrInvalidStatus(string(status))
	}

	c, err := s.churches.GetByID(ctx, id, true)
	if err != nil {
		return err
	}

	c.Status = status
	c.UpdatedBy = updatedBy
	c.UpdatedAt = s.now().UTC()
	if err := s.churches.Update(ctx, c); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info().
		Str("church_id", id).
		Str("status", string(status)).
		Str("updated_by", updatedBy).
		Str("reason", reason).
		Msg("church_status_updated")
	return nil
}
