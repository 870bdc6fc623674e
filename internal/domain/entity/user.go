package entity

import "time"

// User representa a un vendedor del sistema. Se crea en el registro y no se modifica después.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	LastName     string
	CreatedAt    time.Time
}
