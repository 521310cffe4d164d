package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
)

// SurvivalHandler maneja el endpoint de análisis de supervivencia.
type SurvivalHandler struct {
	uc *usecase.SurvivalUseCase
}

// NewSurvivalHandler construye el handler.
func NewSurvivalHandler(uc *usecase.SurvivalUseCase) *SurvivalHandler {
	return &SurvivalHandler{uc: uc}
}

// GetAnalysis godoc
// @Summary      Curva de supervivencia empírica de la base de clientes
// @Description  Probabilidad de seguir activo en puntos de control cada 30 días,
//               más vida promedio, mediana, LTV promedio y retención a 6 meses.
// @Tags         survival
// @Produce      json
// @Success      200  {object}  dto.SurvivalAnalysisDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/survival [get]
func (h *SurvivalHandler) GetAnalysis(c *fiber.Ctx) error {
	out, err := h.uc.Analyze(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
