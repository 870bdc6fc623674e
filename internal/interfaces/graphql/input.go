package graphql

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
)

// Los argumentos llegan como map[string]interface{} ya validados contra el schema;
// aquí solo se pasan a los DTO tipados que validan los casos de uso.

func inputMap(args map[string]interface{}) map[string]interface{} {
	m, _ := args["input"].(map[string]interface{})
	return m
}

func str(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func optStr(m map[string]interface{}, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optInt(m map[string]interface{}, key string) *int {
	n, ok := m[key].(int)
	if !ok {
		return nil
	}
	return &n
}

func optDecimal(m map[string]interface{}, key string) *decimal.Decimal {
	d, ok := m[key].(decimal.Decimal)
	if !ok {
		return nil
	}
	return &d
}

func toRegisterRequest(m map[string]interface{}) dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:     str(m, "name"),
		LastName: str(m, "lastName"),
		Email:    str(m, "email"),
		Password: str(m, "password"),
	}
}

func toLoginRequest(m map[string]interface{}) dto.LoginRequest {
	return dto.LoginRequest{Email: str(m, "email"), Password: str(m, "password")}
}

func toCreateProductRequest(m map[string]interface{}) dto.CreateProductRequest {
	in := dto.CreateProductRequest{Name: str(m, "name")}
	if n := optInt(m, "stock"); n != nil {
		in.Stock = *n
	}
	if d := optDecimal(m, "price"); d != nil {
		in.Price = *d
	}
	return in
}

func toUpdateProductRequest(m map[string]interface{}) dto.UpdateProductRequest {
	return dto.UpdateProductRequest{
		Name:  optStr(m, "name"),
		Stock: optInt(m, "stock"),
		Price: optDecimal(m, "price"),
	}
}

func toCreateClientRequest(m map[string]interface{}) dto.CreateClientRequest {
	return dto.CreateClientRequest{
		Name:     str(m, "name"),
		LastName: str(m, "lastName"),
		Company:  str(m, "company"),
		Email:    str(m, "email"),
		Phone:    str(m, "phone"),
	}
}

func toUpdateClientRequest(m map[string]interface{}) dto.UpdateClientRequest {
	return dto.UpdateClientRequest{
		Name:     optStr(m, "name"),
		LastName: optStr(m, "lastName"),
		Company:  optStr(m, "company"),
		Email:    optStr(m, "email"),
		Phone:    optStr(m, "phone"),
	}
}

func toOrderItems(v interface{}) []dto.OrderItemRequest {
	list, _ := v.([]interface{})
	if list == nil {
		return nil
	}
	out := make([]dto.OrderItemRequest, 0, len(list))
	for _, raw := range list {
		m, _ := raw.(map[string]interface{})
		it := dto.OrderItemRequest{ProductID: str(m, "id")}
		if n := optInt(m, "quantity"); n != nil {
			it.Quantity = *n
		}
		out = append(out, it)
	}
	return out
}

func toCreateOrderRequest(m map[string]interface{}) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		ClientID: str(m, "client"),
		Items:    toOrderItems(m["order"]),
		Status:   str(m, "status"),
	}
}

func toUpdateOrderRequest(m map[string]interface{}) dto.UpdateOrderRequest {
	return dto.UpdateOrderRequest{
		ClientID: optStr(m, "client"),
		Items:    toOrderItems(m["order"]),
		Status:   optStr(m, "status"),
	}
}
