// Package postgres adapta las tablas canónicas almacenadas en PostgreSQL al
// snapshot en memoria. Alternativa al lector de CSV para despliegues donde el
// dataset vive en la base operacional.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
	"github.com/siddzzzz/Software-Monitization/internal/domain/repository"
	"github.com/siddzzzz/Software-Monitization/pkg/logger"
)

var _ repository.DatasetSource = (*DatasetSource)(nil)

// DatasetSource lee las cinco tablas canónicas y sintetiza la vista de
// licencias. Los queries ordenan por id para que el snapshot sea determinista.
type DatasetSource struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewDatasetSource construye el adaptador.
func NewDatasetSource(pool *pgxpool.Pool, log *logger.Logger) *DatasetSource {
	return &DatasetSource{pool: pool, log: log.Component("postgres")}
}

// LoadDataset consulta las tablas en paralelo (llamadas independientes) y
// construye el snapshot.
func (s *DatasetSource) LoadDataset(ctx context.Context) (*dataset.Snapshot, error) {
	referenceTime := time.Now()
	start := time.Now()

	type customersResult struct {
		rows []entity.Customer
		err  error
	}
	type vendorsResult struct {
		rows []entity.Vendor
		err  error
	}
	type productsResult struct {
		rows []entity.Product
		err  error
	}
	type entitlementsResult struct {
		rows []entity.Entitlement
		err  error
	}
	type activationsResult struct {
		rows []entity.Activation
		err  error
	}

	cusChan := make(chan customersResult, 1)
	venChan := make(chan vendorsResult, 1)
	proChan := make(chan productsResult, 1)
	entChan := make(chan entitlementsResult, 1)
	actChan := make(chan activationsResult, 1)

	go func() {
		rows, err := s.loadCustomers(ctx)
		cusChan <- customersResult{rows, err}
	}()
	go func() {
		rows, err := s.loadVendors(ctx)
		venChan <- vendorsResult{rows, err}
	}()
	go func() {
		rows, err := s.loadProducts(ctx)
		proChan <- productsResult{rows, err}
	}()
	go func() {
		rows, err := s.loadEntitlements(ctx)
		entChan <- entitlementsResult{rows, err}
	}()
	go func() {
		rows, err := s.loadActivations(ctx)
		actChan <- activationsResult{rows, err}
	}()

	cus := <-cusChan
	ven := <-venChan
	pro := <-proChan
	ent := <-entChan
	act := <-actChan

	if cus.err != nil {
		return nil, fmt.Errorf("dataset: customers: %w", cus.err)
	}
	if ven.err != nil {
		return nil, fmt.Errorf("dataset: vendors: %w", ven.err)
	}
	if pro.err != nil {
		return nil, fmt.Errorf("dataset: products: %w", pro.err)
	}
	if ent.err != nil {
		return nil, fmt.Errorf("dataset: entitlements: %w", ent.err)
	}
	if act.err != nil {
		return nil, fmt.Errorf("dataset: activations: %w", act.err)
	}

	tables := dataset.Tables{
		Customers:    cus.rows,
		Vendors:      ven.rows,
		Products:     pro.rows,
		Entitlements: ent.rows,
		Activations:  act.rows,
	}
	tables.Licenses = dataset.SynthesizeLicenses(tables.Entitlements, tables.Activations, referenceTime)

	s.log.Info().
		Int("customers", len(tables.Customers)).
		Int("entitlements", len(tables.Entitlements)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset cargado desde PostgreSQL")

	return dataset.NewSnapshot(tables, referenceTime), nil
}

func (s *DatasetSource) loadCustomers(ctx context.Context) ([]entity.Customer, error) {
	query := `
		SELECT id, name, status, COALESCE(industry, ''), COALESCE(country, ''), COALESCE(signup_date, 'epoch'::timestamptz)
		FROM customers ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []entity.Customer
	for rows.Next() {
		var c entity.Customer
		var status string
		if err := rows.Scan(&c.ID, &c.Name, &status, &c.Industry, &c.Country, &c.SignupDate); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Status = entity.CustomerStatus(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *DatasetSource) loadVendors(ctx context.Context) ([]entity.Vendor, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM vendors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query vendors: %w", err)
	}
	defer rows.Close()

	var out []entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *DatasetSource) loadProducts(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT id, name, COALESCE(category, ''), COALESCE(vendor_id, '')
		FROM products ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.VendorID); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *DatasetSource) loadEntitlements(ctx context.Context) ([]entity.Entitlement, error) {
	query := `
		SELECT id, customer_id, product_id, purchase_date, quantity, contract_value
		FROM entitlements ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query entitlements: %w", err)
	}
	defer rows.Close()

	var out []entity.Entitlement
	for rows.Next() {
		var e entity.Entitlement
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.ProductID, &e.PurchaseDate, &e.Quantity, &e.ContractValue); err != nil {
			return nil, fmt.Errorf("scan entitlement: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *DatasetSource) loadActivations(ctx context.Context) ([]entity.Activation, error) {
	query := `
		SELECT id, entitlement_id, activation_date, quantity
		FROM activations ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query activations: %w", err)
	}
	defer rows.Close()

	var out []entity.Activation
	for rows.Next() {
		var a entity.Activation
		if err := rows.Scan(&a.ID, &a.EntitlementID, &a.ActivationDate, &a.Quantity); err != nil {
			return nil, fmt.Errorf("scan activation: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
