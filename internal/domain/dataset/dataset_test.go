package dataset_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddzzzz/Software-Monitization/internal/domain/dataset"
	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
)

var testReference = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func newTestSnapshot() *dataset.Snapshot {
	return dataset.NewSnapshot(dataset.Tables{
		Customers: []entity.Customer{
			{ID: "c1", Name: "Acme"},
			{ID: "c2", Name: "Globex"},
		},
		Vendors: []entity.Vendor{{ID: "v1", Name: "Initech"}},
		Products: []entity.Product{
			{ID: "p1", Name: "Suite", VendorID: "v1"},
			{ID: "p2", Name: "Addon", VendorID: "v1"},
		},
		Licenses: []entity.License{
			{CustomerID: "c1", ProductID: "p2", Purchased: 5},
			{CustomerID: "c1", ProductID: "p1", Purchased: 3},
			{CustomerID: "c1", ProductID: "p1", Purchased: 2}, // mismo producto dos veces
			{CustomerID: "c2", ProductID: "p1", Purchased: 1},
		},
	}, testReference)
}

func TestSnapshot_Indices(t *testing.T) {
	snap := newTestSnapshot()

	c, ok := snap.CustomerByID("c1")
	require.True(t, ok)
	assert.Equal(t, "Acme", c.Name)

	_, ok = snap.CustomerByID("desconocido")
	assert.False(t, ok)

	v, ok := snap.VendorByID("v1")
	require.True(t, ok)
	assert.Equal(t, "Initech", v.Name)

	assert.Equal(t, "Suite", snap.ProductName("p1"))
	assert.Equal(t, "p999", snap.ProductName("p999"), "producto desconocido retorna el id crudo")

	assert.ElementsMatch(t, []string{"p1", "p2"}, snap.ProductsOfVendor("v1"))
	assert.Len(t, snap.LicensesOf("c1"), 3)
	assert.Empty(t, snap.LicensesOf("c3"))
}

func TestSnapshot_CanastaDedupicadaYOrdenada(t *testing.T) {
	snap := newTestSnapshot()

	// c1 tiene p1 dos veces: la canasta lo lista una sola vez, ordenado.
	assert.Equal(t, []string{"p1", "p2"}, snap.Basket("c1"))
	assert.Equal(t, []string{"p1"}, snap.Basket("c2"))
	assert.Empty(t, snap.Basket("c3"))
}

func TestSnapshot_CanastasEnOrdenDeClientes(t *testing.T) {
	snap := newTestSnapshot()

	baskets := snap.Baskets()
	require.Len(t, baskets, 2)
	assert.Equal(t, []string{"p1", "p2"}, baskets[0])
	assert.Equal(t, []string{"p1"}, baskets[1])
}

func TestStore_ReemplazoAtomico(t *testing.T) {
	first := newTestSnapshot()
	store := dataset.NewStore(first)
	assert.Same(t, first, store.Current())

	second := dataset.NewSnapshot(dataset.Tables{
		Customers: []entity.Customer{{ID: "c9", Name: "Nuevo"}},
	}, testReference)
	store.Replace(second)

	assert.Same(t, second, store.Current())
	// El snapshot anterior sigue siendo utilizable por lectores en curso.
	_, ok := first.CustomerByID("c1")
	assert.True(t, ok)
}

func TestLicense_ActivationRate(t *testing.T) {
	l := entity.License{Purchased: 10, Activated: 4, ContractValue: decimal.Zero}
	assert.InDelta(t, 40.0, l.ActivationRate(), 1e-9)

	dirty := entity.License{Purchased: 2, Activated: 10}
	assert.Equal(t, 100.0, dirty.ActivationRate())

	zero := entity.License{Purchased: 0, Activated: 10}
	assert.Equal(t, 0.0, zero.ActivationRate())
}
