package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
)

// ChurnHandler maneja los endpoints del modelo de riesgo de fuga.
type ChurnHandler struct {
	uc *usecase.ChurnUseCase
}

// NewChurnHandler construye el handler.
func NewChurnHandler(uc *usecase.ChurnUseCase) *ChurnHandler {
	return &ChurnHandler{uc: uc}
}

// PredictCustomer godoc
// @Summary      Probabilidad de fuga de un cliente con sus drivers
// @Description  Entrena el modelo sobre el snapshot vigente y devuelve la probabilidad,
//               el nivel de riesgo y la importancia de cada variable. Con menos filas
//               que el mínimo de entrenamiento la respuesta viene marcada como
//               insufficient_data en lugar de fallar.
// @Tags         churn
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.ChurnPredictionDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/churn/customers/{id} [get]
func (h *ChurnHandler) PredictCustomer(c *fiber.Ctx) error {
	out, err := h.uc.PredictCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetModelMetrics godoc
// @Summary      Métricas del modelo de fuga (partición 70/30)
// @Tags         churn
// @Produce      json
// @Success      200  {object}  dto.ChurnModelDTO
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/churn/model [get]
func (h *ChurnHandler) GetModelMetrics(c *fiber.Ctx) error {
	out, err := h.uc.ModelMetrics(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetHighRisk godoc
// @Summary      Clientes con mayor probabilidad de fuga (top 10)
// @Tags         churn
// @Produce      json
// @Success      200  {array}  dto.HighRiskCustomerDTO
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/churn/high-risk [get]
func (h *ChurnHandler) GetHighRisk(c *fiber.Ctx) error {
	out, err := h.uc.HighRisk(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
