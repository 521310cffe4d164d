// Package csvloader adapta exports CSV del negocio de licenciamiento al
// snapshot canónico. Soporta dos variantes de esquema: "licensing" (un único
// licenses.csv desnormalizado) y "entitlements" (tablas de eventos separadas).
// Cualquiera sea la variante de origen, el snapshot resultante expone ambas
// vistas: la que falta se sintetiza.
package csvloader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
	"github.com/siddzzzz/Software-Monitization/internal/domain/repository"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
	"github.com/siddzzzz/Software-Monitization/pkg/logger"
)

// Nombres de archivo esperados por variante.
const (
	fileLicenses     = "licenses.csv"
	fileCustomers    = "customers.csv"
	fileVendors      = "vendors.csv"
	fileProducts     = "products.csv"
	fileEntitlements = "entitlements.csv"
	fileActivations  = "activations.csv"
)

var _ repository.DatasetSource = (*Loader)(nil)

// Loader lee los CSV de un directorio y construye el snapshot canónico.
type Loader struct {
	dir     string
	variant string
	log     *logger.Logger
}

// NewLoader construye el loader desde la configuración de datos.
func NewLoader(cfg config.DataConfig, log *logger.Logger) *Loader {
	return &Loader{
		dir:     cfg.Dir,
		variant: cfg.Variant,
		log:     log.Component("csvloader"),
	}
}

// LoadDataset detecta (o respeta) la variante y construye un snapshot nuevo.
// Una fila malformada no aborta la carga: se descarta y se cuenta.
func (l *Loader) LoadDataset(ctx context.Context) (*dataset.Snapshot, error) {
	variant := l.variant
	if variant == "" || variant == "auto" {
		v, err := l.detectVariant()
		if err != nil {
			return nil, err
		}
		variant = v
	}

	referenceTime := time.Now()
	start := time.Now()

	var tables dataset.Tables
	var err error
	switch variant {
	case "licensing":
		tables, err = l.loadLicensing(ctx, referenceTime)
	case "entitlements":
		tables, err = l.loadEntitlements(ctx, referenceTime)
	default:
		return nil, fmt.Errorf("%w: variante de dataset desconocida %q", domain.ErrInvalidInput, variant)
	}
	if err != nil {
		return nil, err
	}

	l.log.Info().
		Str("variant", variant).
		Int("customers", len(tables.Customers)).
		Int("products", len(tables.Products)).
		Int("licenses", len(tables.Licenses)).
		Int("entitlements", len(tables.Entitlements)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset cargado")

	return dataset.NewSnapshot(tables, referenceTime), nil
}

// detectVariant decide el esquema por los archivos presentes. licenses.csv
// gana si ambos existen: es la vista más rica (trae señales de experiencia).
func (l *Loader) detectVariant() (string, error) {
	if fileExists(filepath.Join(l.dir, fileLicenses)) {
		return "licensing", nil
	}
	if fileExists(filepath.Join(l.dir, fileEntitlements)) {
		return "entitlements", nil
	}
	return "", fmt.Errorf("%w: no se encontró %s ni %s en %s",
		domain.ErrInvalidInput, fileLicenses, fileEntitlements, l.dir)
}

// ── Variante licensing ────────────────────────────────────────────────────────

// loadLicensing lee el licenses.csv desnormalizado. Los exports completos
// traen además customers/vendors/products.csv como tablas de referencia; si
// existen se usan tal cual y solo se derivan de las filas de licencias las
// entidades que falten. Los eventos se sintetizan siempre.
func (l *Loader) loadLicensing(ctx context.Context, referenceTime time.Time) (dataset.Tables, error) {
	var t dataset.Tables

	if fileExists(filepath.Join(l.dir, fileCustomers)) {
		if err := l.loadCustomers(ctx, &t); err != nil {
			return t, err
		}
	}
	if err := l.loadVendors(ctx, &t); err != nil {
		return t, err
	}
	if fileExists(filepath.Join(l.dir, fileProducts)) {
		if err := l.loadProducts(ctx, &t); err != nil {
			return t, err
		}
	}

	rows, h, err := l.readAll(ctx, fileLicenses)
	if err != nil {
		return t, err
	}

	cols := licensingColumns{
		customerID:   h.col("customer_id", "account_id"),
		customerName: h.col("customer_name", "customer", "account_name", "company_name"),
		status:       h.col("account_status", "customer_status", "status"),
		industry:     h.col("industry"),
		country:      h.col("country", "region"),
		productID:    h.col("product_id", "sku"),
		productName:  h.col("product_name", "product"),
		category:     h.col("product_category", "category"),
		vendor:       h.col("vendor", "vendor_name", "publisher"),
		purchased: h.col("number_of_quantities_purchased", "license_quantity_purchased",
			"licenses_purchased", "quantity_purchased", "purchased"),
		activated: h.col("number_of_quantities_activated", "license_quantity_activated",
			"licenses_activated", "quantity_activated", "activated"),
		contractValue: h.col("contract_value", "total_contract_value", "revenue"),
		satisfaction:  h.col("satisfaction_score", "satisfaction"),
		tickets:       h.col("support_tickets", "tickets"),
		utilization:   h.col("feature_utilization", "feature_utilization_score", "utilization"),
		frequency:     h.col("frequency_of_product_purchase", "purchase_frequency", "frequency"),
		churnRisk:     h.col("churn_risk", "risk_level"),
		firstPurchase: h.col("days_since_first_quantity_purchased", "days_since_first_purchase"),
		lastPurchase:  h.col("days_since_last_quantity_purchased", "days_since_last_purchase"),
		lastActivation: h.col("days_since_last_quantity_activated",
			"days_since_last_activation"),
	}
	if cols.customerID < 0 && cols.customerName < 0 {
		return t, fmt.Errorf("%w: falta la columna %q en %s",
			domain.ErrInvalidInput, "customer_id", fileLicenses)
	}
	if cols.productID < 0 && cols.productName < 0 {
		return t, fmt.Errorf("%w: falta la columna %q en %s",
			domain.ErrInvalidInput, "product_id", fileLicenses)
	}

	customersSeen := make(map[string]int, len(t.Customers))
	for i, c := range t.Customers {
		customersSeen[c.ID] = i
	}
	vendorsSeen := make(map[string]int, len(t.Vendors))
	for i, v := range t.Vendors {
		vendorsSeen[v.ID] = i
	}
	productsSeen := make(map[string]int, len(t.Products))
	for i, p := range t.Products {
		productsSeen[p.ID] = i
	}
	skipped := 0

	for _, row := range rows {
		customerID := orDefault(cell(row, cols.customerID), cell(row, cols.customerName))
		productID := orDefault(cell(row, cols.productID), cell(row, cols.productName))
		if customerID == "" || productID == "" {
			skipped++
			continue
		}

		if _, ok := customersSeen[customerID]; !ok {
			customersSeen[customerID] = len(t.Customers)
			t.Customers = append(t.Customers, entity.Customer{
				ID:       customerID,
				Name:     orDefault(cell(row, cols.customerName), customerID),
				Status:   parseStatus(cell(row, cols.status)),
				Industry: cell(row, cols.industry),
				Country:  cell(row, cols.country),
			})
		}

		vendorName := cell(row, cols.vendor)
		vendorID := ""
		if vendorName != "" {
			vendorID = vendorName
			if _, ok := vendorsSeen[vendorID]; !ok {
				vendorsSeen[vendorID] = len(t.Vendors)
				t.Vendors = append(t.Vendors, entity.Vendor{ID: vendorID, Name: vendorName})
			}
		}

		if _, ok := productsSeen[productID]; !ok {
			productsSeen[productID] = len(t.Products)
			t.Products = append(t.Products, entity.Product{
				ID:       productID,
				Name:     orDefault(cell(row, cols.productName), productID),
				Category: cell(row, cols.category),
				VendorID: vendorID,
			})
		}

		t.Licenses = append(t.Licenses, entity.License{
			CustomerID:              customerID,
			ProductID:               productID,
			Purchased:               parseInt(cell(row, cols.purchased)),
			Activated:               parseInt(cell(row, cols.activated)),
			ContractValue:           parseDecimal(cell(row, cols.contractValue)),
			Satisfaction:            parseFloat(cell(row, cols.satisfaction)),
			SupportTickets:          parseInt(cell(row, cols.tickets)),
			FeatureUtilization:      parseFloat(cell(row, cols.utilization)),
			PurchaseFrequency:       parseFloat(cell(row, cols.frequency)),
			ChurnRiskLabel:          parseRiskLabel(cell(row, cols.churnRisk)),
			DaysSinceFirstPurchase:  int(parseInt(cell(row, cols.firstPurchase))),
			DaysSinceLastPurchase:   int(parseInt(cell(row, cols.lastPurchase))),
			DaysSinceLastActivation: int(parseInt(cell(row, cols.lastActivation))),
		})
	}

	if skipped > 0 {
		l.log.Warn().Int("rows", skipped).Msg("filas descartadas por campos clave vacíos")
	}

	t.Entitlements, t.Activations = dataset.SynthesizeEvents(t.Licenses, referenceTime)
	return t, nil
}

type licensingColumns struct {
	customerID, customerName, status, industry, country      int
	productID, productName, category, vendor                 int
	purchased, activated, contractValue                      int
	satisfaction, tickets, utilization, frequency, churnRisk int
	firstPurchase, lastPurchase, lastActivation              int
}

// ── Variante entitlements ─────────────────────────────────────────────────────

// loadEntitlements lee las tablas de eventos separadas y sintetiza la vista de
// licencias. vendors.csv y activations.csv son opcionales.
func (l *Loader) loadEntitlements(ctx context.Context, referenceTime time.Time) (dataset.Tables, error) {
	var t dataset.Tables

	if err := l.loadCustomers(ctx, &t); err != nil {
		return t, err
	}
	if err := l.loadVendors(ctx, &t); err != nil {
		return t, err
	}
	if err := l.loadProducts(ctx, &t); err != nil {
		return t, err
	}
	if err := l.loadEntitlementRows(ctx, &t); err != nil {
		return t, err
	}
	if err := l.loadActivationRows(ctx, &t); err != nil {
		return t, err
	}

	t.Licenses = dataset.SynthesizeLicenses(t.Entitlements, t.Activations, referenceTime)
	return t, nil
}

func (l *Loader) loadCustomers(ctx context.Context, t *dataset.Tables) error {
	rows, h, err := l.readAll(ctx, fileCustomers)
	if err != nil {
		return err
	}
	id, err := h.require("customer_id", "id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileCustomers, err)
	}
	name := h.col("customer_name", "company_name", "name")
	status := h.col("status", "account_status")
	industry := h.col("industry")
	country := h.col("country", "region")
	signup := h.col("signup_date", "created_at")

	for _, row := range rows {
		cid := cell(row, id)
		if cid == "" {
			continue
		}
		t.Customers = append(t.Customers, entity.Customer{
			ID:         cid,
			Name:       orDefault(cell(row, name), cid),
			Status:     parseStatus(cell(row, status)),
			Industry:   cell(row, industry),
			Country:    cell(row, country),
			SignupDate: parseDate(cell(row, signup)),
		})
	}
	return nil
}

func (l *Loader) loadVendors(ctx context.Context, t *dataset.Tables) error {
	path := filepath.Join(l.dir, fileVendors)
	if !fileExists(path) {
		return nil
	}
	rows, h, err := l.readAll(ctx, fileVendors)
	if err != nil {
		return err
	}
	id, err := h.require("vendor_id", "id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileVendors, err)
	}
	name := h.col("vendor_name", "name")

	for _, row := range rows {
		vid := cell(row, id)
		if vid == "" {
			continue
		}
		t.Vendors = append(t.Vendors, entity.Vendor{ID: vid, Name: orDefault(cell(row, name), vid)})
	}
	return nil
}

func (l *Loader) loadProducts(ctx context.Context, t *dataset.Tables) error {
	rows, h, err := l.readAll(ctx, fileProducts)
	if err != nil {
		return err
	}
	id, err := h.require("product_id", "id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileProducts, err)
	}
	name := h.col("product_name", "name")
	category := h.col("category", "product_category")
	vendorID := h.col("vendor_id", "vendor")

	for _, row := range rows {
		pid := cell(row, id)
		if pid == "" {
			continue
		}
		t.Products = append(t.Products, entity.Product{
			ID:       pid,
			Name:     orDefault(cell(row, name), pid),
			Category: cell(row, category),
			VendorID: cell(row, vendorID),
		})
	}
	return nil
}

func (l *Loader) loadEntitlementRows(ctx context.Context, t *dataset.Tables) error {
	rows, h, err := l.readAll(ctx, fileEntitlements)
	if err != nil {
		return err
	}
	id, err := h.require("entitlement_id", "id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileEntitlements, err)
	}
	customerID, err := h.require("customer_id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileEntitlements, err)
	}
	productID, err := h.require("product_id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileEntitlements, err)
	}
	date := h.col("purchase_date", "date")
	quantity := h.col("quantity", "quantity_purchased", "seats")
	value := h.col("contract_value", "value", "amount")

	skipped := 0
	for _, row := range rows {
		eid, cid, pid := cell(row, id), cell(row, customerID), cell(row, productID)
		if eid == "" || cid == "" || pid == "" {
			skipped++
			continue
		}
		t.Entitlements = append(t.Entitlements, entity.Entitlement{
			ID:            eid,
			CustomerID:    cid,
			ProductID:     pid,
			PurchaseDate:  parseDate(cell(row, date)),
			Quantity:      parseInt(cell(row, quantity)),
			ContractValue: parseDecimal(cell(row, value)),
		})
	}
	if skipped > 0 {
		l.log.Warn().Int("rows", skipped).Str("file", fileEntitlements).Msg("filas descartadas por ids vacíos")
	}
	return nil
}

func (l *Loader) loadActivationRows(ctx context.Context, t *dataset.Tables) error {
	path := filepath.Join(l.dir, fileActivations)
	if !fileExists(path) {
		return nil
	}
	rows, h, err := l.readAll(ctx, fileActivations)
	if err != nil {
		return err
	}
	id, err := h.require("activation_id", "id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileActivations, err)
	}
	entitlementID, err := h.require("entitlement_id")
	if err != nil {
		return fmt.Errorf("%s: %w", fileActivations, err)
	}
	date := h.col("activation_date", "date")
	quantity := h.col("quantity", "quantity_activated", "seats")

	for _, row := range rows {
		aid, eid := cell(row, id), cell(row, entitlementID)
		if aid == "" || eid == "" {
			continue
		}
		t.Activations = append(t.Activations, entity.Activation{
			ID:             aid,
			EntitlementID:  eid,
			ActivationDate: parseDate(cell(row, date)),
			Quantity:       parseInt(cell(row, quantity)),
		})
	}
	return nil
}

// ── Lectura base ──────────────────────────────────────────────────────────────

// readAll lee un CSV completo y devuelve filas de datos más el encabezado
// resuelto. Filas con número de campos inconsistente no abortan la lectura.
func (l *Loader) readAll(ctx context.Context, name string) ([][]string, header, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, nil, fmt.Errorf("abrir %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado de %s: %w", name, err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Fila malformada: se descarta y se sigue.
			continue
		}
		rows = append(rows, row)
	}
	return rows, newHeader(headerRow), nil
}

func parseStatus(s string) entity.CustomerStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inactive":
		return entity.StatusInactive
	case "suspended":
		return entity.StatusSuspended
	default:
		return entity.StatusActive
	}
}

func parseRiskLabel(s string) entity.RiskLabel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return entity.RiskHigh
	case "medium":
		return entity.RiskMedium
	case "low":
		return entity.RiskLow
	default:
		return ""
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
