package usecase

import (
	"context"
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/siddzzzz/Software-Monitization/internal/application/dto"
	"github.com/siddzzzz/Software-Monitization/internal/domain"
	"github.com/siddzzzz/Software-Monitization/internal/domain/analytics"
	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
)

const (
	rankingTopN     = 10
	chartNameMaxLen = 20
)

// OverviewUseCase agregados descriptivos del dataset: totales globales,
// métricas por cliente y rankings por categoría y producto.
type OverviewUseCase struct {
	store *dataset.Store
	cfg   config.AnalyticsConfig
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(store *dataset.Store, cfg config.AnalyticsConfig) *OverviewUseCase {
	return &OverviewUseCase{store: store, cfg: cfg}
}

// Overview totales globales del snapshot vigente.
func (uc *OverviewUseCase) Overview(_ context.Context) (*dto.OverviewDTO, error) {
	snap := uc.store.Current()

	out := &dto.OverviewDTO{
		TotalCustomers: len(snap.Customers),
		TotalProducts:  len(snap.Products),
		TotalVendors:   len(snap.Vendors),
		TotalRevenue:   decimal.Zero,
	}

	for _, l := range snap.Licenses {
		out.TotalRevenue = out.TotalRevenue.Add(l.ContractValue)
		out.TotalPurchased += float64(l.Purchased)
		out.TotalActivated += float64(l.Activated)
	}
	out.TotalRevenue = out.TotalRevenue.Round(2)

	if out.TotalPurchased > 0 {
		rate := out.TotalActivated / out.TotalPurchased * 100
		out.ActivationRate = round1(clamp100(rate))
	}

	features := analytics.BuildFeatures(snap)
	for _, v := range features {
		if v.Churned(uc.cfg.ChurnThresholdDays) {
			out.ChurnedCustomers++
		}
	}
	if len(features) > 0 {
		out.ChurnRate = round1(float64(out.ChurnedCustomers) / float64(len(features)) * 100)
	}
	return out, nil
}

// CustomerMetrics métricas agregadas de un cliente.
func (uc *OverviewUseCase) CustomerMetrics(_ context.Context, customerID string) (*dto.CustomerMetricsDTO, error) {
	snap := uc.store.Current()
	if _, ok := snap.CustomerByID(customerID); !ok {
		return nil, domain.ErrCustomerNotFound
	}

	features := analytics.BuildFeatures(snap)
	v, ok := findVector(features, customerID)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}

	return &dto.CustomerMetricsDTO{
		CustomerID:          v.CustomerID,
		CustomerName:        v.CustomerName,
		Status:              string(v.Status),
		TotalPurchased:      v.TotalPurchased,
		TotalActivated:      v.TotalActivated,
		ActivationRate:      round1(v.ActivationRate()),
		TotalContractValue:  v.TotalContractValue.Round(2),
		LicenseCount:        v.LicenseCount,
		DaysSinceFirstBuy:   v.DaysSinceFirstPurchase,
		DaysSinceLastBuy:    v.DaysSinceLastPurchase,
		DaysSinceActivation: v.DaysSinceLastActivation,
		SatisfactionScore:   v.Satisfaction,
		SupportTickets:      v.SupportTickets,
	}, nil
}

// RevenueByCategory ingresos agregados por categoría de producto, top 10.
// Con customerID no vacío restringe el agregado a las licencias de ese cliente.
func (uc *OverviewUseCase) RevenueByCategory(_ context.Context, customerID string) ([]dto.CategoryRevenueDTO, error) {
	snap := uc.store.Current()
	licenses, err := scopedLicenses(snap, customerID)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, l := range licenses {
		category := "Uncategorized"
		if p, ok := snap.ProductByID(l.ProductID); ok && p.Category != "" {
			category = p.Category
		}
		byCategory[category] = byCategory[category].Add(l.ContractValue)
	}

	out := make([]dto.CategoryRevenueDTO, 0, len(byCategory))
	for category, revenue := range byCategory {
		out = append(out, dto.CategoryRevenueDTO{Category: category, Revenue: revenue.Round(2)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > rankingTopN {
		out = out[:rankingTopN]
	}
	return out, nil
}

// ActivationByProduct unidades activadas por producto, top 10, con el nombre
// truncado para gráficos. Con customerID no vacío restringe al cliente.
func (uc *OverviewUseCase) ActivationByProduct(_ context.Context, customerID string) ([]dto.ProductActivationDTO, error) {
	snap := uc.store.Current()
	licenses, err := scopedLicenses(snap, customerID)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string]float64)
	for _, l := range licenses {
		byProduct[l.ProductID] += float64(l.Activated)
	}

	out := make([]dto.ProductActivationDTO, 0, len(byProduct))
	for productID, activated := range byProduct {
		out = append(out, dto.ProductActivationDTO{
			ProductID:   productID,
			ProductName: truncateName(snap.ProductName(productID), chartNameMaxLen),
			Activated:   activated,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Activated != out[j].Activated {
			return out[i].Activated > out[j].Activated
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > rankingTopN {
		out = out[:rankingTopN]
	}
	return out, nil
}

// Customers listado id/nombre para selectores.
func (uc *OverviewUseCase) Customers(_ context.Context) ([]dto.EntityDTO, error) {
	snap := uc.store.Current()
	out := make([]dto.EntityDTO, 0, len(snap.Customers))
	for _, c := range snap.Customers {
		out = append(out, dto.EntityDTO{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

// Vendors listado id/nombre para selectores.
func (uc *OverviewUseCase) Vendors(_ context.Context) ([]dto.EntityDTO, error) {
	snap := uc.store.Current()
	out := make([]dto.EntityDTO, 0, len(snap.Vendors))
	for _, v := range snap.Vendors {
		out = append(out, dto.EntityDTO{ID: v.ID, Name: v.Name})
	}
	return out, nil
}

// scopedLicenses devuelve todas las licencias o solo las del cliente indicado.
func scopedLicenses(snap *dataset.Snapshot, customerID string) ([]entity.License, error) {
	if customerID == "" {
		return snap.Licenses, nil
	}
	if _, ok := snap.CustomerByID(customerID); !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return snap.LicensesOf(customerID), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
