package dto

import "github.com/shopspring/decimal"

// TopClientResponse total comprado por un cliente en pedidos COMPLETED.
type TopClientResponse struct {
	ClientID string          `json:"client_id"`
	Total    decimal.Decimal `json:"total"`
	Client   *ClientResponse `json:"client"`
}

// TopSalesPersonResponse total vendido por un vendedor en pedidos COMPLETED.
type TopSalesPersonResponse struct {
	SalesPersonID string          `json:"sales_person_id"`
	Total         decimal.Decimal `json:"total"`
	SalesPerson   *UserResponse   `json:"sales_person"`
}
