package repository

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura sobre pedidos COMPLETED.
// Los resultados vienen ordenados por total descendente; los empates conservan
// el orden de aparición en el almacenamiento.
type ReportRepository interface {
	TopClients(ctx context.Context, limit int) ([]entity.ClientSales, error)
	TopSalesPersons(ctx context.Context, limit int) ([]entity.SalesPersonSales, error)
}
