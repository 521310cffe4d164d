package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
)

// RecommendationHandler maneja reglas de asociación y recomendaciones.
type RecommendationHandler struct {
	uc *usecase.AssociationUseCase
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(uc *usecase.AssociationUseCase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// GetRules godoc
// @Summary      Reglas de asociación entre productos
// @Description  Minadas con apriori (escalera de soporte adaptativa) o, como
//               respaldo, por co-ocurrencia de pares. Una lista vacía es una
//               respuesta válida.
// @Tags         recommendations
// @Produce      json
// @Success      200  {object}  dto.AssociationRulesDTO
// @Router       /api/association-rules [get]
func (h *RecommendationHandler) GetRules(c *fiber.Ctx) error {
	out, err := h.uc.Rules(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// RecommendForCustomer godoc
// @Summary      Productos recomendados para un cliente
// @Tags         recommendations
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.RecommendationsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/customer/{id} [get]
func (h *RecommendationHandler) RecommendForCustomer(c *fiber.Ctx) error {
	out, err := h.uc.RecommendForCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// RecommendForVendor godoc
// @Summary      Productos de otros proveedores que compran los clientes del proveedor
// @Tags         recommendations
// @Produce      json
// @Param        id   path      string  true  "ID del proveedor"
// @Success      200  {object}  dto.RecommendationsDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recommendations/vendor/{id} [get]
func (h *RecommendationHandler) RecommendForVendor(c *fiber.Ctx) error {
	out, err := h.uc.RecommendForVendor(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
