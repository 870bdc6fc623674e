package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// Límites por defecto de los reportes.
const (
	DefaultTopClients      = 10
	DefaultTopSalesPersons = 3
	DefaultSearchLimit     = 10
)

// ReportUseCase reportes de ventas (solo pedidos COMPLETED) y búsqueda de productos.
type ReportUseCase struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
}

// NewReportUseCase construye el caso de uso. reports puede ser un decorador con caché.
func NewReportUseCase(reports repository.ReportRepository, products repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, products: products}
}

// TopClients clientes con mayor total comprado, de mayor a menor. limit <= 0 usa el default.
func (uc *ReportUseCase) TopClients(ctx context.Context, limit int) ([]dto.TopClientResponse, error) {
	if limit <= 0 {
		limit = DefaultTopClients
	}
	rows, err := uc.reports.TopClients(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte top clientes: %w", err)
	}
	out := make([]dto.TopClientResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopClientResponse{
			ClientID: r.ClientID,
			Total:    r.Total,
			Client:   dto.ToClientResponse(r.Client),
		})
	}
	return out, nil
}

// TopSalesPersons vendedores con mayor total vendido, de mayor a menor.
func (uc *ReportUseCase) TopSalesPersons(ctx context.Context, limit int) ([]dto.TopSalesPersonResponse, error) {
	if limit <= 0 {
		limit = DefaultTopSalesPersons
	}
	rows, err := uc.reports.TopSalesPersons(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reporte top vendedores: %w", err)
	}
	out := make([]dto.TopSalesPersonResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopSalesPersonResponse{
			SalesPersonID: r.SalesPersonID,
			Total:         r.Total,
			SalesPerson:   dto.ToUserResponse(r.SalesPerson),
		})
	}
	return out, nil
}

// SearchProductsByName búsqueda de texto sobre el nombre: basta con que coincida una palabra.
func (uc *ReportUseCase) SearchProductsByName(ctx context.Context, text string, limit int) ([]dto.ProductResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text es requerido", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	list, err := uc.products.SearchByName(ctx, text, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *dto.ToProductResponse(p))
	}
	return out, nil
}
