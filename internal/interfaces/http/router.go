package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/repository"
	"github.com/siddzzzz/Software-Monitization/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OverviewUC     *usecase.OverviewUseCase
	ChurnUC        *usecase.ChurnUseCase
	SegmentationUC *usecase.SegmentationUseCase
	AssociationUC  *usecase.AssociationUseCase
	SurvivalUC     *usecase.SurvivalUseCase
	Source         repository.DatasetSource
	Store          *dataset.Store
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Resumen y entidades
	overviewHandler := NewOverviewHandler(deps.OverviewUC)
	api.Get("/overview", overviewHandler.GetOverview)
	api.Get("/overview/revenue-by-category", overviewHandler.GetRevenueByCategory)
	api.Get("/overview/activation-by-product", overviewHandler.GetActivationByProduct)
	api.Get("/customers", overviewHandler.ListCustomers)
	api.Get("/customers/:id/metrics", overviewHandler.GetCustomerMetrics)
	api.Get("/vendors", overviewHandler.ListVendors)

	// Riesgo de fuga
	churn := api.Group("/churn")
	churnHandler := NewChurnHandler(deps.ChurnUC)
	churn.Get("/model", churnHandler.GetModelMetrics)
	churn.Get("/high-risk", churnHandler.GetHighRisk)
	churn.Get("/customers/:id", churnHandler.PredictCustomer)

	// Segmentación
	segmentationHandler := NewSegmentationHandler(deps.SegmentationUC)
	api.Get("/segments", segmentationHandler.GetSegments)

	// Asociaciones y recomendaciones
	recommendationHandler := NewRecommendationHandler(deps.AssociationUC)
	api.Get("/association-rules", recommendationHandler.GetRules)
	api.Get("/recommendations/customer/:id", recommendationHandler.RecommendForCustomer)
	api.Get("/recommendations/vendor/:id", recommendationHandler.RecommendForVendor)

	// Supervivencia
	survivalHandler := NewSurvivalHandler(deps.SurvivalUC)
	api.Get("/survival", survivalHandler.GetAnalysis)

	// Administración
	adminHandler := NewAdminHandler(deps.Source, deps.Store, deps.Log)
	api.Post("/admin/reload", adminHandler.ReloadDataset)
}

// errorResponse mapea errores de dominio a status HTTP con cuerpo uniforme.
func errorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrVendorNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInsufficientData):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_DATA", Message: err.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_INPUT", Message: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "COMPUTATION_ERROR", Message: "error interno al calcular el análisis",
		})
	}
}
