package dto

import "github.com/shopspring/decimal"

// ── Resumen global ────────────────────────────────────────────────────────────

// OverviewDTO respuesta de GET /api/overview.
type OverviewDTO struct {
	TotalCustomers    int             `json:"total_customers"`
	TotalProducts     int             `json:"total_products"`
	TotalVendors      int             `json:"total_vendors"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalPurchased    float64         `json:"total_purchased"`
	TotalActivated    float64         `json:"total_activated"`
	ActivationRate    float64         `json:"activation_rate"` // % en [0,100], 1 decimal
	ChurnedCustomers  int             `json:"churned_customers"`
	ChurnRate         float64         `json:"churn_rate"` // % en [0,100], 1 decimal
}

// ── Por cliente ───────────────────────────────────────────────────────────────

// CustomerMetricsDTO respuesta de GET /api/customers/:id/metrics.
type CustomerMetricsDTO struct {
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	Status              string          `json:"status"`
	TotalPurchased      float64         `json:"total_purchased"`
	TotalActivated      float64         `json:"total_activated"`
	ActivationRate      float64         `json:"activation_rate"` // % en [0,100]
	TotalContractValue  decimal.Decimal `json:"total_contract_value"`
	LicenseCount        int             `json:"license_count"`
	DaysSinceFirstBuy   float64         `json:"days_since_first_purchase"`
	DaysSinceLastBuy    float64         `json:"days_since_last_purchase"`
	DaysSinceActivation float64         `json:"days_since_last_activation"`
	SatisfactionScore   float64         `json:"satisfaction_score"`
	SupportTickets      float64         `json:"support_tickets"`
}

// ── Rankings ──────────────────────────────────────────────────────────────────

// CategoryRevenueDTO ingresos agregados por categoría de producto.
type CategoryRevenueDTO struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// ProductActivationDTO unidades activadas por producto, nombre truncado
// para que quepa en gráficos.
type ProductActivationDTO struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Activated   float64 `json:"activated"`
}

// ── Listados de entidades ─────────────────────────────────────────────────────

// EntityDTO par id/nombre para poblar selectores.
type EntityDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
