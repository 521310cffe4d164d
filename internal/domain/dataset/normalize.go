package dataset

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
)

// Helpers de normalización entre las dos variantes de esquema. El Loader mapea
// columnas crudas a una de las dos vistas (eventos o licencias) y estas
// funciones completan la otra, de modo que todo snapshot expone ambas y los
// componentes nunca dependen de la variante de origen.

// SynthesizeLicenses agrega entitlements/activations en un registro License
// por par (cliente, producto). Los campos de experiencia (satisfacción,
// tickets, utilización) quedan en cero: la variante de eventos no los trae.
func SynthesizeLicenses(
	entitlements []entity.Entitlement,
	activations []entity.Activation,
	referenceTime time.Time,
) []entity.License {
	type accum struct {
		customerID, productID string
		purchased, activated  int64
		value                 decimal.Decimal
		firstPurchase         time.Time
		lastPurchase          time.Time
		lastActivation        time.Time
	}

	entOwner := make(map[string]*accum, len(entitlements))
	byPair := make(map[[2]string]*accum)
	var order [][2]string

	for _, e := range entitlements {
		key := [2]string{e.CustomerID, e.ProductID}
		a, ok := byPair[key]
		if !ok {
			a = &accum{customerID: e.CustomerID, productID: e.ProductID}
			byPair[key] = a
			order = append(order, key)
		}
		a.purchased += e.Quantity
		a.value = a.value.Add(e.ContractValue)
		if a.firstPurchase.IsZero() || e.PurchaseDate.Before(a.firstPurchase) {
			a.firstPurchase = e.PurchaseDate
		}
		if e.PurchaseDate.After(a.lastPurchase) {
			a.lastPurchase = e.PurchaseDate
		}
		entOwner[e.ID] = a
	}

	for _, act := range activations {
		a, ok := entOwner[act.EntitlementID]
		if !ok {
			// Activación huérfana: se ignora, no hay entitlement al que imputarla.
			continue
		}
		a.activated += act.Quantity
		if act.ActivationDate.After(a.lastActivation) {
			a.lastActivation = act.ActivationDate
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i][0] != order[j][0] {
			return order[i][0] < order[j][0]
		}
		return order[i][1] < order[j][1]
	})

	licenses := make([]entity.License, 0, len(order))
	for _, key := range order {
		a := byPair[key]
		licenses = append(licenses, entity.License{
			CustomerID:              a.customerID,
			ProductID:               a.productID,
			Purchased:               a.purchased,
			Activated:               a.activated,
			ContractValue:           a.value,
			DaysSinceFirstPurchase:  daysSince(a.firstPurchase, referenceTime),
			DaysSinceLastPurchase:   daysSince(a.lastPurchase, referenceTime),
			DaysSinceLastActivation: daysSince(a.lastActivation, referenceTime),
		})
	}
	return licenses
}

// SynthesizeEvents reconstruye entitlements/activations a partir de licencias
// desnormalizadas. Las fechas se derivan de los campos de recencia y los ids
// de evento se generan con uuid v4 para que las invariantes referenciales
// (activación -> entitlement -> cliente/producto) se cumplan en toda variante.
func SynthesizeEvents(
	licenses []entity.License,
	referenceTime time.Time,
) ([]entity.Entitlement, []entity.Activation) {
	entitlements := make([]entity.Entitlement, 0, len(licenses))
	var activations []entity.Activation

	for _, l := range licenses {
		ent := entity.Entitlement{
			ID:            uuid.NewString(),
			CustomerID:    l.CustomerID,
			ProductID:     l.ProductID,
			PurchaseDate:  referenceTime.AddDate(0, 0, -l.DaysSinceFirstPurchase),
			Quantity:      l.Purchased,
			ContractValue: l.ContractValue,
		}
		entitlements = append(entitlements, ent)

		if l.Activated > 0 {
			activations = append(activations, entity.Activation{
				ID:             uuid.NewString(),
				EntitlementID:  ent.ID,
				ActivationDate: referenceTime.AddDate(0, 0, -l.DaysSinceLastActivation),
				Quantity:       l.Activated,
			})
		}
	}
	return entitlements, activations
}

// daysSince días enteros entre t y la referencia; 0 para fechas cero o futuras.
func daysSince(t, reference time.Time) int {
	if t.IsZero() {
		return 0
	}
	d := int(reference.Sub(t).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
