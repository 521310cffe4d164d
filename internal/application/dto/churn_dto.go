package dto

import "github.com/shopspring/decimal"

// ── Predicción por cliente ────────────────────────────────────────────────────

// DriverDTO contribución de una variable al riesgo de fuga del cliente.
type DriverDTO struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"` // magnitud del coeficiente, siempre >= 0
	Impact     string  `json:"impact"`     // Positive (empuja hacia la fuga) | Negative
}

// ChurnPredictionDTO respuesta de GET /api/churn/customers/:id.
type ChurnPredictionDTO struct {
	CustomerID       string      `json:"customer_id"`
	CustomerName     string      `json:"customer_name"`
	ChurnProbability float64     `json:"churn_probability"` // siempre en [0,1]
	RiskLevel        string      `json:"risk_level"`        // High|Medium|Low
	Recommendation   string      `json:"recommendation"`
	Drivers          []DriverDTO `json:"driver_analysis"`
	InsufficientData bool        `json:"insufficient_data,omitempty"` // muestra chica: probabilidad no entrenada
	BaselineModel    bool        `json:"baseline_model,omitempty"`    // clase única: modelo de mayoría
}

// ── Modelo global ─────────────────────────────────────────────────────────────

// ChurnModelDTO métricas del modelo de fuga sobre partición de prueba.
type ChurnModelDTO struct {
	Accuracy      float64   `json:"accuracy"`
	Precision     float64   `json:"precision"`
	Recall        float64   `json:"recall"`
	F1Score       float64   `json:"f1_score"`
	Features      []string  `json:"features"`
	Importances   []float64 `json:"importances"`
	TrainingRows  int       `json:"training_rows"`
	BaselineModel bool      `json:"baseline_model,omitempty"`
}

// ── Clientes de alto riesgo ───────────────────────────────────────────────────

// HighRiskCustomerDTO fila del ranking de clientes con mayor riesgo.
type HighRiskCustomerDTO struct {
	CustomerID        string          `json:"customer_id"`
	CustomerName      string          `json:"customer_name"`
	ChurnProbability  float64         `json:"churn_probability"`
	RiskLevel         string          `json:"risk_level"`
	ContractValue     decimal.Decimal `json:"contract_value"`
	DaysSincePurchase float64         `json:"days_since_last_purchase"`
}
