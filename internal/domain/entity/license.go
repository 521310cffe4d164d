package entity

import "github.com/shopspring/decimal"

// RiskLabel etiqueta de riesgo reportada por la fuente (metadato, no entrenamiento).
type RiskLabel string

const (
	RiskHigh   RiskLabel = "High"
	RiskMedium RiskLabel = "Medium"
	RiskLow    RiskLabel = "Low"
)

// License registro desnormalizado por cliente-producto, tal como lo entrega la
// variante "licensing" del dataset. Para la variante de eventos se sintetiza
// agregando entitlements/activations, con los campos de experiencia en cero.
//
// Los campos de recencia se fijan en el mapeo de esquema al momento de carga,
// relativos a la hora de referencia del snapshot.
type License struct {
	CustomerID    string
	ProductID     string
	Purchased     int64
	Activated     int64
	ContractValue decimal.Decimal

	// Señales de experiencia (solo variante licensing; cero si no existen).
	Satisfaction       float64 // 0-10
	SupportTickets     int64
	FeatureUtilization float64 // 0-100
	PurchaseFrequency  float64
	ChurnRiskLabel     RiskLabel // metadato de la fuente, no es la etiqueta de entrenamiento

	// Recencia en días enteros respecto a la hora de referencia del snapshot.
	DaysSinceFirstPurchase  int
	DaysSinceLastPurchase   int
	DaysSinceLastActivation int
}

// ActivationRate tasa de activación de la licencia, recortada a [0,100] aunque
// los datos de origen violen comprado >= activado.
func (l License) ActivationRate() float64 {
	if l.Purchased <= 0 {
		return 0
	}
	rate := float64(l.Activated) / float64(l.Purchased) * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}
