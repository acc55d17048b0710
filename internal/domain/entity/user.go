package entity

import "time"

// User usuario interno del sistema (acceso al panel de administración).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
