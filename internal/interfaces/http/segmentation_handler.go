package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
)

// SegmentationHandler maneja el endpoint de segmentación de clientes.
type SegmentationHandler struct {
	uc *usecase.SegmentationUseCase
}

// NewSegmentationHandler construye el handler.
func NewSegmentationHandler(uc *usecase.SegmentationUseCase) *SegmentationHandler {
	return &SegmentationHandler{uc: uc}
}

// GetSegments godoc
// @Summary      Segmentación de la población de clientes por k-means
// @Description  Cada cliente cae en exactamente un segmento etiquetado según su
//               perfil promedio (Premium, Enterprise, Active, At-Risk o Standard).
// @Tags         segments
// @Produce      json
// @Success      200  {object}  dto.SegmentationDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/segments [get]
func (h *SegmentationHandler) GetSegments(c *fiber.Ctx) error {
	out, err := h.uc.Segments(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
