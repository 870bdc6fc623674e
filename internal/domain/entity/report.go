package entity

import "github.com/shopspring/decimal"

// ClientSales total vendido (pedidos COMPLETED) a un cliente.
// Client es nil si el cliente ya no existe.
type ClientSales struct {
	ClientID string
	Total    decimal.Decimal
	Client   *Client
}

// SalesPersonSales total vendido (pedidos COMPLETED) por un vendedor.
type SalesPersonSales struct {
	SalesPersonID string
	Total         decimal.Decimal
	SalesPerson   *User
}
