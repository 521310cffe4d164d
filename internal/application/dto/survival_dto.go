package dto

import "github.com/shopspring/decimal"

// SurvivalAnalysisDTO respuesta de GET /api/survival.
// TimePeriods, SurvivalProb y HazardRate son listas paralelas; las
// probabilidades están en [0,1] y nunca contienen NaN.
type SurvivalAnalysisDTO struct {
	TimePeriods     []int           `json:"time_periods"` // días desde la primera compra, pasos de 30
	SurvivalProb    []float64       `json:"survival_prob"`
	HazardRate      []float64       `json:"hazard_rate"`
	AvgLifetimeDays float64         `json:"avg_lifetime"` // en días
	MedianLifetime  float64         `json:"median_lifetime"`
	AvgLTV          decimal.Decimal `json:"avg_ltv"`
	Retention6Mo    float64         `json:"retention_6mo"` // fracción con vida >= 180 días
	TotalCustomers  int             `json:"total_customers"`
	ChurnedCount    int             `json:"churned_count"`
}
