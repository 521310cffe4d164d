package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/siddzzzz/Software-Monitization/internal/application/usecase"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/repository"
	"github.com/siddzzzz/Software-Monitization/internal/infrastructure/csvloader"
	"github.com/siddzzzz/Software-Monitization/internal/infrastructure/postgres"
	httpRouter "github.com/siddzzzz/Software-Monitization/internal/interfaces/http"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
	"github.com/siddzzzz/Software-Monitization/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("data_source", cfg.Data.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Origen del dataset: CSV por defecto, PostgreSQL si se configura.
	var source repository.DatasetSource
	switch cfg.Data.Source {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		source = postgres.NewDatasetSource(pool, log)
	default:
		source = csvloader.NewLoader(cfg.Data, log)
	}

	snap, err := source.LoadDataset(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("carga inicial del dataset")
	}
	store := dataset.NewStore(snap)

	overviewUC := usecase.NewOverviewUseCase(store, cfg.Analytics)
	churnUC := usecase.NewChurnUseCase(store, cfg.Analytics)
	segmentationUC := usecase.NewSegmentationUseCase(store, cfg.Analytics)
	associationUC := usecase.NewAssociationUseCase(store)
	survivalUC := usecase.NewSurvivalUseCase(store, cfg.Analytics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		OverviewUC:     overviewUC,
		ChurnUC:        churnUC,
		SegmentationUC: segmentationUC,
		AssociationUC:  associationUC,
		SurvivalUC:     survivalUC,
		Source:         source,
		Store:          store,
		Log:            log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
