package dto

import (
	"github.com/ekklesia/church-directory/internal/domain"
)

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (r *RegisterRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	if r.Password != r.ConfirmPassword {
		return domain.ErrPasswordMismatch()
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return checkStruct(r)
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

func (r *PasswordChangeRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	if r.NewPassword != r.ConfirmPassword {
		return domain.ErrPasswordMismatch()
	}
	return nil
}

type SetRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

func (r *SetRoleRequest) Validate() error {
	return checkStruct(r)
}
