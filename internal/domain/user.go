package domain

import "time"

// User is a registered account. PasswordHash stays inside the service
// layer and is stripped before a User crosses a transport boundary.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
