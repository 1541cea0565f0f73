package domain

import "time"

// User is a directory account. PasswordHash never crosses the transport
// boundary; views are built from the other fields only.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}
