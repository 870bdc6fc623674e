package graphql

import "github.com/jhoicas/pedidos-api/internal/application/dto"

// Las respuestas se entregan como mapas con los nombres de campo del schema.

func userOut(u *dto.UserResponse) map[string]interface{} {
	if u == nil {
		return nil
	}
	return map[string]interface{}{
		"id":        u.ID,
		"name":      u.Name,
		"lastName":  u.LastName,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	}
}

func productOut(p *dto.ProductResponse) map[string]interface{} {
	if p == nil {
		return nil
	}
	return map[string]interface{}{
		"id":        p.ID,
		"name":      p.Name,
		"stock":     p.Stock,
		"price":     p.Price,
		"createdAt": p.CreatedAt,
		"updatedAt": p.UpdatedAt,
	}
}

func productsOut(list []dto.ProductResponse) []interface{} {
	out := make([]interface{}, 0, len(list))
	for i := range list {
		out = append(out, productOut(&list[i]))
	}
	return out
}

func clientOut(c *dto.ClientResponse) map[string]interface{} {
	if c == nil {
		return nil
	}
	return map[string]interface{}{
		"id":        c.ID,
		"name":      c.Name,
		"lastName":  c.LastName,
		"company":   c.Company,
		"email":     c.Email,
		"phone":     c.Phone,
		"seller":    c.SellerID,
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}

func clientsOut(list []dto.ClientResponse) []interface{} {
	out := make([]interface{}, 0, len(list))
	for i := range list {
		out = append(out, clientOut(&list[i]))
	}
	return out
}

func orderOut(o *dto.OrderResponse) map[string]interface{} {
	if o == nil {
		return nil
	}
	lines := make([]interface{}, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, map[string]interface{}{"id": it.ProductID, "quantity": it.Quantity})
	}
	return map[string]interface{}{
		"id":          o.ID,
		"order":       lines,
		"total":       o.Total,
		"client":      o.ClientID,
		"salesPerson": o.SalesPersonID,
		"status":      o.Status,
		"createdAt":   o.CreatedAt,
		"updatedAt":   o.UpdatedAt,
	}
}

func ordersOut(list []dto.OrderResponse) []interface{} {
	out := make([]interface{}, 0, len(list))
	for i := range list {
		out = append(out, orderOut(&list[i]))
	}
	return out
}

func topClientsOut(list []dto.TopClientResponse) []interface{} {
	out := make([]interface{}, 0, len(list))
	for _, r := range list {
		joined := []interface{}{}
		if r.Client != nil {
			joined = append(joined, clientOut(r.Client))
		}
		out = append(out, map[string]interface{}{"total": r.Total, "client": joined})
	}
	return out
}

func topSalesPersonsOut(list []dto.TopSalesPersonResponse) []interface{} {
	out := make([]interface{}, 0, len(list))
	for _, r := range list {
		joined := []interface{}{}
		if r.SalesPerson != nil {
			joined = append(joined, userOut(r.SalesPerson))
		}
		out = append(out, map[string]interface{}{"total": r.Total, "salesPerson": joined})
	}
	return out
}
