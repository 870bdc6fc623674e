package dto

import "time"

// CreateClientRequest entrada para registrar un cliente; el vendedor es quien llama.
type CreateClientRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	LastName string `json:"last_name" validate:"required,max=200"`
	Company  string `json:"company" validate:"required,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
}

// UpdateClientRequest entrada para actualizar un cliente; campos nil no cambian.
type UpdateClientRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	LastName *string `json:"last_name" validate:"omitempty,min=1,max=200"`
	Company  *string `json:"company" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	SellerID  string    `json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
