package postgres

import (
	"database/sql"
	"time"

	"github.com/ekklesia/church-directory/internal/domain"
)

type churchRow struct {
	ID              string
	Name            string
	Address         sql.NullString
	City            sql.NullString
	State           sql.NullString
	ZipCode         sql.NullString
	Phone           sql.NullString
	Email           sql.NullString
	Website         sql.NullString
	Denomination    sql.NullString
	Latitude        *float64
	Longitude       *float64
	Status          string
	Description     sql.NullString
	ServiceSchedule sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CreatedBy       sql.NullString
	UpdatedBy       sql.NullString
	IsActive        bool
}

func toDomainChurch(cr churchRow) domain.Church {
	status, ok := domain.ParseChurchStatus(cr.Status)
	if !ok {
		status = domain.StatusPending
	}
	return domain.Church{
		ID:              cr.ID,
		Name:            cr.Name,
		Address:         cr.Address.String,
		City:            cr.City.String,
		State:           cr.State.String,
		ZipCode:         cr.ZipCode.String,
		Phone:           cr.Phone.String,
		Email:           cr.Email.String,
		Website:         cr.Website.String,
		Denomination:    cr.Denomination.String,
		Latitude:        cr.Latitude,
		Longitude:       cr.Longitude,
		Status:          status,
		Description:     cr.Description.String,
		ServiceSchedule: cr.ServiceSchedule.String,
		CreatedAt:       cr.CreatedAt,
		UpdatedAt:       cr.UpdatedAt,
		CreatedBy:       cr.CreatedBy.String,
		UpdatedBy:       cr.UpdatedBy.String,
		IsActive:        cr.IsActive,
	}
}

func (cr *churchRow) fields() []any {
	return []any{
		&cr.ID,
		&cr.Name,
		&cr.Address,
		&cr.City,
		&cr.State,
		&cr.ZipCode,
		&cr.Phone,
		&cr.Email,
		&cr.Website,
		&cr.Denomination,
		&cr.Latitude,
		&cr.Longitude,
		&cr.Status,
		&cr.Description,
		&cr.ServiceSchedule,
		&cr.CreatedAt,
		&cr.UpdatedAt,
		&cr.CreatedBy,
		&cr.UpdatedBy,
		&cr.IsActive,
	}
}
