package usecase_test

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
	"github.com/siddzzzz/Software-Monitization/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures compartidos por los tests de casos de uso
// ──────────────────────────────────────────────────────────────────────────────

var fixtureReference = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func testAnalyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		ChurnThresholdDays: 90,
		SegmentCount:       4,
		MinTrainingRows:    10,
	}
}

func storeWith(t dataset.Tables) *dataset.Store {
	return dataset.NewStore(dataset.NewSnapshot(t, fixtureReference))
}

// smallTables tres clientes: por debajo del mínimo de entrenamiento.
func smallTables() dataset.Tables {
	return dataset.Tables{
		Customers: []entity.Customer{
			{ID: "c1", Name: "Uno", Status: entity.StatusActive},
			{ID: "c2", Name: "Dos", Status: entity.StatusActive},
			{ID: "c3", Name: "Tres", Status: entity.StatusInactive},
		},
		Products: []entity.Product{
			{ID: "p1", Name: "Producto 1", Category: "Security", VendorID: "v1"},
		},
		Vendors: []entity.Vendor{{ID: "v1", Name: "Vendor 1"}},
		Licenses: []entity.License{
			{CustomerID: "c1", ProductID: "p1", Purchased: 10, Activated: 8,
				ContractValue: decimal.NewFromInt(1000), DaysSinceFirstPurchase: 100, DaysSinceLastActivation: 10},
			{CustomerID: "c2", ProductID: "p1", Purchased: 5, Activated: 1,
				ContractValue: decimal.NewFromInt(500), DaysSinceFirstPurchase: 300, DaysSinceLastActivation: 200},
		},
	}
}

// trainingTables doce clientes con etiquetas mixtas de churn: la mitad activos
// recientes, la otra mitad con recencia larga o estado inactivo. Suficiente
// para entrenar la logística sin caer a la clase mayoritaria.
func trainingTables() dataset.Tables {
	var customers []entity.Customer
	var licenses []entity.License
	products := []entity.Product{
		{ID: "p1", Name: "Security Suite", Category: "Security", VendorID: "v1"},
		{ID: "p2", Name: "Analytics Pro", Category: "Analytics", VendorID: "v1"},
		{ID: "p3", Name: "Backup Cloud", Category: "Storage", VendorID: "v2"},
	}
	vendors := []entity.Vendor{
		{ID: "v1", Name: "Vendor Uno"},
		{ID: "v2", Name: "Vendor Dos"},
	}

	for i := 1; i <= 12; i++ {
		id := fmt.Sprintf("c%02d", i)
		status := entity.StatusActive
		recency := 15 + i // activación reciente: no churn

		if i > 6 {
			// Clientes 7-12: perdidos por recencia o estado.
			recency = 150 + i*10
			if i%2 == 0 {
				status = entity.StatusInactive
			}
		}

		customers = append(customers, entity.Customer{
			ID: id, Name: "Cliente " + id, Status: status,
		})

		productID := products[i%3].ID
		licenses = append(licenses, entity.License{
			CustomerID:              id,
			ProductID:               productID,
			Purchased:               int64(20 + i*10),
			Activated:               int64(10 + i*5),
			ContractValue:           decimal.NewFromInt(int64(5000 + i*3000)),
			Satisfaction:            float64(3 + i%7),
			SupportTickets:          int64(i % 5),
			DaysSinceFirstPurchase:  200 + i*20,
			DaysSinceLastPurchase:   30 + i,
			DaysSinceLastActivation: recency,
		})

		// Los clientes pares compran un segundo producto: canastas con
		// asociaciones minables.
		if i%2 == 0 {
			licenses = append(licenses, entity.License{
				CustomerID:              id,
				ProductID:               "p3",
				Purchased:               10,
				Activated:               5,
				ContractValue:           decimal.NewFromInt(2000),
				DaysSinceFirstPurchase:  100,
				DaysSinceLastPurchase:   40,
				DaysSinceLastActivation: recency,
			})
		}
	}

	return dataset.Tables{
		Customers: customers,
		Vendors:   vendors,
		Products:  products,
		Licenses:  licenses,
	}
}
