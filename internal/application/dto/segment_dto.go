package dto

import "github.com/shopspring/decimal"

// SegmentCustomerDTO cliente destacado dentro de un segmento.
type SegmentCustomerDTO struct {
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	ContractValue decimal.Decimal `json:"contract_value"`
}

// SegmentDTO un segmento de clientes con su perfil normalizado.
// Characteristics va en paralelo con CharacteristicLabels de la respuesta,
// cada valor escalado a [0,100].
type SegmentDTO struct {
	Name            string               `json:"name"` // Premium|Enterprise|Active|At-Risk|Standard
	Count           int                  `json:"count"`
	Characteristics []float64            `json:"characteristics"`
	AvgRevenue      decimal.Decimal      `json:"avg_revenue"`
	ChurnRisk       string               `json:"churn_risk"` // High|Medium|Low
	Recommendation  string               `json:"recommendation"`
	TopCustomers    []SegmentCustomerDTO `json:"top_customers"`
}

// SegmentationDTO respuesta de GET /api/segments.
type SegmentationDTO struct {
	CharacteristicLabels []string     `json:"characteristic_labels"`
	Segments             []SegmentDTO `json:"segments"`
	TotalCustomers       int          `json:"total_customers"`
}
