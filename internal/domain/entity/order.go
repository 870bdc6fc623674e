package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estados válidos de un pedido.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// Valid indica si el estado pertenece al enum.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// HoldsStock indica si un pedido en este estado retiene unidades del inventario.
// Un pedido cancelado libera su stock.
func (s OrderStatus) HoldsStock() bool {
	return s != OrderStatusCanceled
}

// OrderItem una línea del pedido: producto y cantidad solicitada.
type OrderItem struct {
	ProductID string
	Quantity  int
}

// Order representa un pedido de venta. SalesPersonID se fija en la creación y no cambia.
// Total se deriva de precio × cantidad al reservar; nunca se toma del cliente de la API.
type Order struct {
	ID            string
	ClientID      string
	Items         []OrderItem
	Total         decimal.Decimal
	Status        OrderStatus
	SalesPersonID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HeldItems devuelve las líneas que hoy retienen stock (ninguna si está cancelado).
func (o *Order) HeldItems() []OrderItem {
	if o == nil || !o.Status.HoldsStock() {
		return nil
	}
	return o.Items
}
