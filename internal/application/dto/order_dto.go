package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea del pedido.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

// CreateOrderRequest entrada para crear un pedido. El total lo calcula el servidor.
type CreateOrderRequest struct {
	ClientID string             `json:"client_id" validate:"required"`
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Status   string             `json:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELED"`
}

// UpdateOrderRequest entrada para editar un pedido; campos nil no cambian.
type UpdateOrderRequest struct {
	ClientID *string            `json:"client_id" validate:"omitempty,min=1"`
	Items    []OrderItemRequest `json:"items" validate:"omitempty,min=1,dive"`
	Status   *string            `json:"status" validate:"omitempty,oneof=PENDING COMPLETED CANCELED"`
}

// OrderItemResponse línea del pedido en la salida.
type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            string              `json:"id"`
	ClientID      string              `json:"client_id"`
	Items         []OrderItemResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	Status        string              `json:"status"`
	SalesPersonID string              `json:"sales_person_id"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
