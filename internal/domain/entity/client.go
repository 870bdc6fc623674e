package entity

import "time"

// Client representa un cliente de la cartera de un vendedor.
// SellerID es el dueño: solo ese usuario puede leer, modificar o eliminar el cliente.
type Client struct {
	ID        string
	Name      string
	LastName  string
	Company   string
	Email     string // único
	Phone     string
	SellerID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
