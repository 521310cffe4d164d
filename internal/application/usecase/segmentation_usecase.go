package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/domain/analytics"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/ml"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
)

const (
	kmeansSeed      = 42
	kmeansMaxIter   = 100
	topCustomersN   = 10
	premiumValue    = 50000
	premiumVolume   = 100
	enterpriseValue = 20000
	activeVolume    = 50
	atRiskShare     = 0.5
)

// Etiquetas de las características normalizadas de cada segmento, en el orden
// del slice Characteristics.
var characteristicLabels = []string{
	"Revenue",
	"Volume",
	"Satisfaction",
	"Activation",
}

var segmentRecommendations = map[string]string{
	"Premium":    "Assign a dedicated account manager and prioritize roadmap requests.",
	"Enterprise": "Nurture with quarterly business reviews and volume discounts.",
	"Active":     "Promote advanced features and cross-sell complementary products.",
	"At-Risk":    "Launch a win-back campaign with renewal incentives and check-in calls.",
	"Standard":   "Maintain regular touchpoints and monitor adoption trends.",
}

// SegmentationUseCase agrupa clientes por comportamiento de compra con k-means
// y etiqueta cada grupo según su perfil promedio. Determinista: semilla fija.
type SegmentationUseCase struct {
	store *dataset.Store
	cfg   config.AnalyticsConfig
}

// NewSegmentationUseCase construye el caso de uso.
func NewSegmentationUseCase(store *dataset.Store, cfg config.AnalyticsConfig) *SegmentationUseCase {
	return &SegmentationUseCase{store: store, cfg: cfg}
}

// Segments agrupa la población completa. Cada cliente cae en exactamente un
// segmento: la suma de counts es igual al total de clientes.
func (uc *SegmentationUseCase) Segments(_ context.Context) (*dto.SegmentationDTO, error) {
	snap := uc.store.Current()
	features := analytics.BuildFeatures(snap)

	out := &dto.SegmentationDTO{
		CharacteristicLabels: append([]string(nil), characteristicLabels...),
		Segments:             []dto.SegmentDTO{},
		TotalCustomers:       len(features),
	}
	if len(features) == 0 {
		return out, nil
	}

	x := make([][]float64, len(features))
	for i, v := range features {
		value, _ := v.TotalContractValue.Float64()
		x[i] = []float64{
			v.TotalPurchased,
			value,
			v.TotalActivated,
			v.Satisfaction,
			v.SupportTickets,
			v.PurchaseFrequency,
		}
	}

	scaler := ml.FitScaler(x)
	result := ml.KMeans(scaler.TransformAll(x), uc.cfg.SegmentCount, kmeansSeed, kmeansMaxIter)

	groups := make([][]analytics.FeatureVector, result.K)
	for i, c := range result.Assignments {
		groups[c] = append(groups[c], features[i])
	}

	profiles := make([]segmentProfile, 0, result.K)
	for _, members := range groups {
		if len(members) == 0 {
			continue
		}
		profiles = append(profiles, profileSegment(members, uc.cfg.ChurnThresholdDays))
	}

	// Máximos globales para normalizar las características a [0,100].
	var maxValue, maxVolume float64
	for _, p := range profiles {
		if p.avgValue > maxValue {
			maxValue = p.avgValue
		}
		if p.avgPurchased > maxVolume {
			maxVolume = p.avgPurchased
		}
	}

	for _, p := range profiles {
		name := segmentName(p)
		out.Segments = append(out.Segments, dto.SegmentDTO{
			Name:  name,
			Count: len(p.members),
			Characteristics: []float64{
				normalize(p.avgValue, maxValue),
				normalize(p.avgPurchased, maxVolume),
				clamp100(p.avgSatisfaction * 10),
				clamp100(p.avgActivationRate),
			},
			AvgRevenue:     p.avgRevenue.Round(2),
			ChurnRisk:      segmentChurnRisk(name),
			Recommendation: segmentRecommendations[name],
			TopCustomers:   topByContractValue(p.members),
		})
	}
	return out, nil
}

type segmentProfile struct {
	members           []analytics.FeatureVector
	avgValue          float64
	avgRevenue        decimal.Decimal
	avgPurchased      float64
	avgActivated      float64
	avgSatisfaction   float64
	avgActivationRate float64
	churnedShare      float64
}

func profileSegment(members []analytics.FeatureVector, thresholdDays int) segmentProfile {
	p := segmentProfile{members: members, avgRevenue: decimal.Zero}
	n := float64(len(members))

	total := decimal.Zero
	churned := 0.0
	for _, v := range members {
		total = total.Add(v.TotalContractValue)
		p.avgPurchased += v.TotalPurchased
		p.avgActivated += v.TotalActivated
		p.avgSatisfaction += v.Satisfaction
		p.avgActivationRate += v.ActivationRate()
		if v.Churned(thresholdDays) {
			churned++
		}
	}

	p.avgRevenue = total.Div(decimal.NewFromFloat(n))
	p.avgValue, _ = p.avgRevenue.Float64()
	p.avgPurchased /= n
	p.avgActivated /= n
	p.avgSatisfaction /= n
	p.avgActivationRate /= n
	p.churnedShare = churned / n
	return p
}

// segmentName cascada determinista de etiquetado: la primera condición que
// aplica gana, en este orden fijo.
func segmentName(p segmentProfile) string {
	switch {
	case p.churnedShare >= atRiskShare:
		return "At-Risk"
	case p.avgValue > premiumValue && p.avgPurchased > premiumVolume:
		return "Premium"
	case p.avgValue > enterpriseValue:
		return "Enterprise"
	case p.avgActivated > activeVolume:
		return "Active"
	default:
		return "Standard"
	}
}

func segmentChurnRisk(name string) string {
	switch name {
	case "At-Risk":
		return "High"
	case "Premium":
		return "Low"
	default:
		return "Medium"
	}
}

func topByContractValue(members []analytics.FeatureVector) []dto.SegmentCustomerDTO {
	sorted := append([]analytics.FeatureVector(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalContractValue.GreaterThan(sorted[j].TotalContractValue)
	})
	if len(sorted) > topCustomersN {
		sorted = sorted[:topCustomersN]
	}

	out := make([]dto.SegmentCustomerDTO, 0, len(sorted))
	for _, v := range sorted {
		out = append(out, dto.SegmentCustomerDTO{
			CustomerID:    v.CustomerID,
			CustomerName:  v.CustomerName,
			ContractValue: v.TotalContractValue.Round(2),
		})
	}
	return out
}

// normalize escala v contra el máximo observado a [0,100]; máximo cero → 0.
func normalize(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return clamp100(v / max * 100)
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
