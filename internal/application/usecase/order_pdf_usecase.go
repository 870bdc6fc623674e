package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// OrderLineForPDF línea del pedido con el nombre y precio actuales del producto.
type OrderLineForPDF struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// OrderPDFGenerator puerto para renderizar el resumen de un pedido.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, client *entity.Client, seller *entity.User, lines []OrderLineForPDF) ([]byte, error)
}

// OrderPDFUseCase genera el resumen en PDF de un pedido de quien lo solicita.
type OrderPDFUseCase struct {
	orders    *OrderUseCase
	products  repository.ProductRepository
	users     repository.UserRepository
	generator OrderPDFGenerator
}

// NewOrderPDFUseCase construye el caso de uso.
func NewOrderPDFUseCase(
	orders *OrderUseCase,
	products repository.ProductRepository,
	users repository.UserRepository,
	generator OrderPDFGenerator,
) *OrderPDFUseCase {
	return &OrderPDFUseCase{orders: orders, products: products, users: users, generator: generator}
}

// Download devuelve los bytes del PDF y un nombre de archivo sugerido.
// Los productos eliminados después del pedido aparecen con su ID y precio cero.
func (uc *OrderPDFUseCase) Download(ctx context.Context, callerID, orderID string) ([]byte, string, error) {
	order, client, err := uc.orders.Load(ctx, callerID, orderID)
	if err != nil {
		return nil, "", err
	}
	seller, err := uc.users.GetByID(ctx, order.SalesPersonID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener vendedor: %w", err)
	}

	lines := make([]OrderLineForPDF, 0, len(order.Items))
	for _, it := range order.Items {
		l := OrderLineForPDF{ProductID: it.ProductID, ProductName: it.ProductID, Quantity: it.Quantity}
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener producto %s: %w", it.ProductID, err)
		}
		if p != nil {
			l.ProductName = p.Name
			l.UnitPrice = p.Price
			l.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		}
		lines = append(lines, l)
	}

	pdf, err := uc.generator.GenerateOrderPDF(ctx, order, client, seller, lines)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("pedido-%s.pdf", order.ID), nil
}
