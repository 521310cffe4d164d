package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
)

// OverviewHandler maneja los endpoints descriptivos del dataset.
type OverviewHandler struct {
	uc *usecase.OverviewUseCase
}

// NewOverviewHandler construye el handler.
func NewOverviewHandler(uc *usecase.OverviewUseCase) *OverviewHandler {
	return &OverviewHandler{uc: uc}
}

// GetOverview godoc
// @Summary      Totales globales del negocio de licenciamiento
// @Description  Clientes, productos, ingresos totales, tasa de activación y tasa de churn.
// @Tags         overview
// @Produce      json
// @Success      200  {object}  dto.OverviewDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/overview [get]
func (h *OverviewHandler) GetOverview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetCustomerMetrics godoc
// @Summary      Métricas agregadas de un cliente
// @Tags         overview
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerMetricsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/metrics [get]
func (h *OverviewHandler) GetCustomerMetrics(c *fiber.Ctx) error {
	out, err := h.uc.CustomerMetrics(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetRevenueByCategory godoc
// @Summary      Ingresos por categoría de producto (top 10)
// @Tags         overview
// @Produce      json
// @Param        customer_id  query     string  false  "Restringir al cliente"
// @Success      200  {array}   dto.CategoryRevenueDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/overview/revenue-by-category [get]
func (h *OverviewHandler) GetRevenueByCategory(c *fiber.Ctx) error {
	out, err := h.uc.RevenueByCategory(c.Context(), c.Query("customer_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetActivationByProduct godoc
// @Summary      Unidades activadas por producto (top 10)
// @Tags         overview
// @Produce      json
// @Param        customer_id  query     string  false  "Restringir al cliente"
// @Success      200  {array}   dto.ProductActivationDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/overview/activation-by-product [get]
func (h *OverviewHandler) GetActivationByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ActivationByProduct(c.Context(), c.Query("customer_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListCustomers godoc
// @Summary      Listado de clientes (id y nombre)
// @Tags         overview
// @Produce      json
// @Success      200  {array}  dto.EntityDTO
// @Router       /api/customers [get]
func (h *OverviewHandler) ListCustomers(c *fiber.Ctx) error {
	out, err := h.uc.Customers(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// ListVendors godoc
// @Summary      Listado de proveedores (id y nombre)
// @Tags         overview
// @Produce      json
// @Success      200  {array}  dto.EntityDTO
// @Router       /api/vendors [get]
func (h *OverviewHandler) ListVendors(c *fiber.Ctx) error {
	out, err := h.uc.Vendors(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
