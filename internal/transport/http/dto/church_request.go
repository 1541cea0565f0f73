package dto

import (
	"github.com/ekklesia/church-directory/internal/application/church"
	"github.com/ekklesia/church-directory/internal/domain"
)

type ServiceTimeView struct {
	Day  string `json:"day"`
	Time string `json:"time"`
	Type string `json:"type"`
}

type ServiceScheduleView struct {
	Services []ServiceTimeView `json:"services"`
}

func (v *ServiceScheduleView) toDomain() *domain.ServiceSchedule {
	if v == nil {
		return nil
	}
	s := &domain.ServiceSchedule{Services: make([]domain.ServiceTime, 0, len(v.Services))}
	for _, t := range v.Services {
		s.Services = append(s.Services, domain.ServiceTime{Day: t.Day, Time: t.Time, Type: t.Type})
	}
	return s
}

type CreateChurchRequest struct {
	Name            string               `json:"name" validate:"required"`
	Address         string               `json:"address"`
	City            string               `json:"city"`
	State           string               `json:"state"`
	ZipCode         string               `json:"zip_code"`
	Phone           string               `json:"phone"`
	Email           string               `json:"email" validate:"omitempty,email"`
	Website         string               `json:"website" validate:"omitempty,url"`
	Denomination    string               `json:"denomination"`
	Latitude        *float64             `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64             `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Description     string               `json:"description"`
	ServiceSchedule *ServiceScheduleView `json:"service_schedule"`
}

func (r *CreateChurchRequest) Validate() error {
	return checkStruct(r)
}

func (r *CreateChurchRequest) ToInput() church.CreateInput {
	return church.CreateInput{
		Name:            r.Name,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		ZipCode:         r.ZipCode,
		Phone:           r.Phone,
		Email:           r.Email,
		Website:         r.Website,
		Denomination:    r.Denomination,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		Description:     r.Description,
		ServiceSchedule: r.ServiceSchedule.toDomain(),
	}
}

// UpdateChurchRequest carries a partial update; absent fields stay unchanged.
type UpdateChurchRequest struct {
	Name            *string              `json:"name"`
	Address         *string              `json:"address"`
	City            *string              `json:"city"`
	State           *string              `json:"state"`
	ZipCode         *string              `json:"zip_code"`
	Phone           *string              `json:"phone"`
	Email           *string              `json:"email" validate:"omitempty,email"`
	Website         *string              `json:"website" validate:"omitempty,url"`
	Denomination    *string              `json:"denomination"`
	Latitude        *float64             `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64             `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Description     *string              `json:"description"`
	ServiceSchedule *ServiceScheduleView `json:"service_schedule"`
}

func (r *UpdateChurchRequest) Validate() error {
	return checkStruct(r)
}

func (r *UpdateChurchRequest) ToPatch() church.UpdatePatch {
	return church.UpdatePatch{
		Name:            r.Name,
		Address:         r.Address,
		City:            r.City,
		State:           r.State,
		ZipCode:         r.ZipCode,
		Phone:           r.Phone,
		Email:           r.Email,
		Website:         r.Website,
		Denomination:    r.Denomination,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		Description:     r.Description,
		ServiceSchedule: r.ServiceSchedule.toDomain(),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

func (r *UpdateStatusRequest) Validate() error {
	return checkStruct(r)
}
