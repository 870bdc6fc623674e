package dto

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// ToUserResponse convierte la entidad sin exponer el hash del password.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func ToClientResponse(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		LastName:  c.LastName,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		SellerID:  c.SellerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &OrderResponse{
		ID:            o.ID,
		ClientID:      o.ClientID,
		Items:         items,
		Total:         o.Total,
		Status:        string(o.Status),
		SalesPersonID: o.SalesPersonID,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOrderItems convierte las líneas de entrada a entidades.
func ToOrderItems(in []OrderItemRequest) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}
