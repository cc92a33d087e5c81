package entity

import "time"

// User representa un usuario autenticado, dueño de materiales y estoques.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
