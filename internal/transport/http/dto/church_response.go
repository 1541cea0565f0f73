package dto

import (
	"time"

	"github.com/ekklesia/church-directory/internal/domain"
)

type ChurchView struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Address         string               `json:"address,omitempty"`
	City            string               `json:"city,omitempty"`
	State           string               `json:"state,omitempty"`
	ZipCode         string               `json:"zip_code,omitempty"`
	Phone           string               `json:"phone,omitempty"`
	Email           string               `json:"email,omitempty"`
	Website         string               `json:"website,omitempty"`
	Denomination    string               `json:"denomination,omitempty"`
	Latitude        *float64             `json:"latitude,omitempty"`
	Longitude       *float64             `json:"longitude,omitempty"`
	Status          string               `json:"status"`
	Description     string               `json:"description,omitempty"`
	ServiceSchedule *ServiceScheduleView `json:"service_schedule,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func NewChurchView(c domain.Church) ChurchView {
	return ChurchView{
		ID:              c.ID,
		Name:            c.Name,
		Address:         c.Address,
		City:            c.City,
		State:           c.State,
		ZipCode:         c.ZipCode,
		Phone:           c.Phone,
		Email:           c.Email,
		Website:         c.Website,
		Denomination:    c.Denomination,
		Latitude:        c.Latitude,
		Longitude:       c.Longitude,
		Status:          string(c.Status),
		Description:     c.Description,
		ServiceSchedule: scheduleView(c.ServiceSchedule),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func NewChurchViews(churches []domain.Church) []ChurchView {
	out := make([]ChurchView, 0, len(churches))
	for _, c := range churches {
		out = append(out, NewChurchView(c))
	}
	return out
}

func scheduleView(raw string) *ServiceScheduleView {
	s := domain.DecodeServiceSchedule(raw)
	if s == nil {
		return nil
	}
	v := &ServiceScheduleView{Services: make([]ServiceTimeView, 0, len(s.Services))}
	for _, t := range s.Services {
		v.Services = append(v.Services, ServiceTimeView{Day: t.Day, Time: t.Time, Type: t.Type})
	}
	return v
}

// ChurchPage wraps one page of listing results with its paging echo.
type ChurchPage struct {
	Churches []ChurchView `json:"churches"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}

type ImportResult struct {
	Processed int `json:"processed"`
}
