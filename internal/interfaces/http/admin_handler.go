package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/repository"
	"github.com/siddzzzz/Software-Monitization/pkg/logger"
)

// AdminHandler operaciones administrativas sobre el dataset.
type AdminHandler struct {
	source repository.DatasetSource
	store  *dataset.Store
	log    *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(source repository.DatasetSource, store *dataset.Store, log *logger.Logger) *AdminHandler {
	return &AdminHandler{source: source, store: store, log: log.Component("admin")}
}

// ReloadDataset godoc
// @Summary      Recarga el dataset desde su origen y publica el snapshot nuevo
// @Description  El reemplazo es atómico: los requests en curso terminan con el
//               snapshot anterior y los siguientes ven el nuevo. Si la carga
//               falla, el snapshot vigente queda intacto.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/admin/reload [post]
func (h *AdminHandler) ReloadDataset(c *fiber.Ctx) error {
	snap, err := h.source.LoadDataset(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("recarga de dataset fallida")
		return errorResponse(c, err)
	}

	h.store.Replace(snap)
	h.log.Info().Int("customers", len(snap.Customers)).Msg("dataset recargado")

	return c.JSON(dto.StatusResponse{
		Status:  "ok",
		Message: "dataset recargado",
	})
}
