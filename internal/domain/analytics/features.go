// Package analytics construye los vectores de características por cliente que
// alimentan al clasificador de churn, la segmentación y el análisis de
// supervivencia. Transformación pura: misma entrada, mismo vector.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
)

// FeatureVector agregados numéricos por cliente, derivados y efímeros: se
// recalculan en cada análisis y nunca se persisten.
type FeatureVector struct {
	CustomerID   string
	CustomerName string
	Status       entity.CustomerStatus

	TotalPurchased     float64
	TotalActivated     float64
	TotalContractValue decimal.Decimal

	DaysSinceFirstPurchase  float64
	DaysSinceLastPurchase   float64
	DaysSinceLastActivation float64

	// Señales de experiencia; cero cuando la variante del dataset no las trae.
	Satisfaction       float64 // promedio 0-10
	SupportTickets     float64 // total
	FeatureUtilization float64 // promedio 0-100
	PurchaseFrequency  float64 // promedio

	LicenseCount     int
	HighRiskLicenses int // licencias con etiqueta de riesgo "High" (metadato de la fuente)
}

// ActivationRate tasa de activación del cliente en [0,100], recortada aunque
// los datos violen comprado >= activado.
func (v FeatureVector) ActivationRate() float64 {
	if v.TotalPurchased <= 0 {
		return 0
	}
	rate := v.TotalActivated / v.TotalPurchased * 100
	if rate < 0 {
		return 0
	}
	if rate > 100 {
		return 100
	}
	return rate
}

// Churned etiqueta de churn del cliente bajo la política documentada del motor:
// churn si pasaron más de thresholdDays días desde la última activación, o si
// el estado es Inactive/Suspended. La etiqueta Churn_Risk de la fuente NO
// participa: es metadato de reporte, no de entrenamiento.
func (v FeatureVector) Churned(thresholdDays int) bool {
	return v.DaysSinceLastActivation > float64(thresholdDays) || v.Status.Churned()
}

// FeatureNames nombres de las características numéricas, en el orden en que
// Row las serializa. Compartido por el scorer y el reporte de drivers.
var FeatureNames = []string{
	"Total Purchased",
	"Total Activated",
	"Total Contract Value",
	"Days Since First Purchase",
	"Days Since Last Purchase",
	"Days Since Last Activation",
	"Satisfaction Score",
	"Support Tickets",
	"Feature Utilization",
}

// Row vector numérico en el orden de FeatureNames, listo para el scaler.
func (v FeatureVector) Row() []float64 {
	value, _ := v.TotalContractValue.Float64()
	return []float64{
		v.TotalPurchased,
		v.TotalActivated,
		value,
		v.DaysSinceFirstPurchase,
		v.DaysSinceLastPurchase,
		v.DaysSinceLastActivation,
		v.Satisfaction,
		v.SupportTickets,
		v.FeatureUtilization,
	}
}

// BuildFeatures produce un FeatureVector por cliente del snapshot, en el orden
// de la tabla de clientes. Los clientes sin compras reciben un vector en cero,
// nunca se descartan: segmentación y churn necesitan la población completa.
// Los agregados ausentes se rellenan con 0 antes de entregarse río abajo.
func BuildFeatures(snap *dataset.Snapshot) []FeatureVector {
	vectors := make([]FeatureVector, 0, len(snap.Customers))

	for _, c := range snap.Customers {
		v := FeatureVector{
			CustomerID:         c.ID,
			CustomerName:       c.Name,
			Status:             c.Status,
			TotalContractValue: decimal.Zero,
		}

		licenses := snap.LicensesOf(c.ID)
		v.LicenseCount = len(licenses)

		var satSum, utilSum, freqSum float64
		first, lastPurchase, lastActivation := -1, -1, -1
		for _, l := range licenses {
			v.TotalPurchased += float64(l.Purchased)
			v.TotalActivated += float64(l.Activated)
			v.TotalContractValue = v.TotalContractValue.Add(l.ContractValue)
			v.SupportTickets += float64(l.SupportTickets)
			satSum += l.Satisfaction
			utilSum += l.FeatureUtilization
			freqSum += l.PurchaseFrequency
			if l.ChurnRiskLabel == entity.RiskHigh {
				v.HighRiskLicenses++
			}

			// La primera compra es la más antigua (máximo días); las últimas
			// compra/activación son las más recientes (mínimo días).
			if l.DaysSinceFirstPurchase > first {
				first = l.DaysSinceFirstPurchase
			}
			if lastPurchase == -1 || l.DaysSinceLastPurchase < lastPurchase {
				lastPurchase = l.DaysSinceLastPurchase
			}
			if l.Activated > 0 && (lastActivation == -1 || l.DaysSinceLastActivation < lastActivation) {
				lastActivation = l.DaysSinceLastActivation
			}
		}

		if n := float64(len(licenses)); n > 0 {
			v.Satisfaction = satSum / n
			v.FeatureUtilization = utilSum / n
			v.PurchaseFrequency = freqSum / n
		}
		if first > 0 {
			v.DaysSinceFirstPurchase = float64(first)
		}
		if lastPurchase > 0 {
			v.DaysSinceLastPurchase = float64(lastPurchase)
		}
		if lastActivation > 0 {
			v.DaysSinceLastActivation = float64(lastActivation)
		}

		vectors = append(vectors, v)
	}
	return vectors
}
