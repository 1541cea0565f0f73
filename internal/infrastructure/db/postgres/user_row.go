package postgres

import (
	"time"

	"github.com/ekklesia/church-directory/internal/domain"
)

type userRow struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

func toDomainUser(ur userRow) domain.User {
	role, ok := domain.ParseRole(ur.Role)
	if !ok {
		role = domain.RoleUser
	}
	return domain.User{
		ID:           ur.ID,
		Email:        ur.Email,
		FirstName:    ur.FirstName,
		LastName:     ur.LastName,
		PasswordHash: ur.PasswordHash,
		Role:         role,
		IsActive:     ur.IsActive,
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
		LastLoginAt:  ur.LastLoginAt,
	}
}
