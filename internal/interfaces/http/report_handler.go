package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/usecase"
)

// ReportHandler reportes públicos de ventas.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TopClients godoc
// @Summary      Mejores clientes
// @Description  Total comprado en pedidos COMPLETED, de mayor a menor.
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Cantidad"  default(10)
// @Success      200    {array}  dto.TopClientResponse
// @Router       /api/reports/top-clients [get]
func (h *ReportHandler) TopClients(c *fiber.Ctx) error {
	out, err := h.uc.TopClients(c.UserContext(), c.QueryInt("limit", usecase.DefaultTopClients))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopSalesPersons godoc
// @Summary      Mejores vendedores
// @Description  Total vendido en pedidos COMPLETED, de mayor a menor.
// @Tags         reports
// @Produce      json
// @Param        limit  query  int  false  "Cantidad"  default(3)
// @Success      200    {array}  dto.TopSalesPersonResponse
// @Router       /api/reports/top-sales-persons [get]
func (h *ReportHandler) TopSalesPersons(c *fiber.Ctx) error {
	out, err := h.uc.TopSalesPersons(c.UserContext(), c.QueryInt("limit", usecase.DefaultTopSalesPersons))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
