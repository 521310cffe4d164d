package repository

import (
	"context"

	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
)

// DatasetSource origen del snapshot canónico. Implementaciones: lector de CSV
// (ambas variantes de esquema) y consulta a PostgreSQL. LoadDataset construye
// un snapshot completo y nuevo en cada llamada; el caller decide cuándo
// publicarlo en el Store.
type DatasetSource interface {
	LoadDataset(ctx context.Context) (*dataset.Snapshot, error)
}
