// Package dataset define el snapshot canónico en memoria sobre el que operan
// todos los componentes analíticos. El snapshot es inmutable: se construye una
// sola vez por carga y se comparte por referencia; "actualizar" el dataset es
// construir un snapshot nuevo y reemplazarlo atómicamente en el Store.
package dataset

import (
	"sort"
	"time"

	"github.com/siddzzzz/Software-Monitization/internal/domain/entity"
)

// Tables tablas canónicas ya coercionadas por el Loader (fechas como time.Time,
// cantidades como números, ids como strings canónicos).
type Tables struct {
	Customers    []entity.Customer
	Vendors      []entity.Vendor
	Products     []entity.Product
	Entitlements []entity.Entitlement
	Activations  []entity.Activation
	Licenses     []entity.License
}

// Snapshot vista indexada e inmutable de las tablas canónicas.
//
// Además de las tablas expone los índices que los componentes consultan en
// cada request: lookup por id, licencias por cliente y canastas de compra
// (productos únicos por cliente) para el minado de asociaciones.
type Snapshot struct {
	Tables

	// ReferenceTime hora de referencia fijada al construir el snapshot; todos
	// los campos "días desde X" se calculan contra ella para que el análisis
	// sea una función pura de los datos presentes.
	ReferenceTime time.Time

	customersByID      map[string]int
	vendorsByID        map[string]int
	productsByID       map[string]int
	licensesByCustomer map[string][]int
	productsByVendor   map[string][]string
	basketByCustomer   map[string][]string
}

// NewSnapshot construye el snapshot con todos sus índices.
func NewSnapshot(t Tables, referenceTime time.Time) *Snapshot {
	s := &Snapshot{
		Tables:             t,
		ReferenceTime:      referenceTime,
		customersByID:      make(map[string]int, len(t.Customers)),
		vendorsByID:        make(map[string]int, len(t.Vendors)),
		productsByID:       make(map[string]int, len(t.Products)),
		licensesByCustomer: make(map[string][]int),
		productsByVendor:   make(map[string][]string),
		basketByCustomer:   make(map[string][]string),
	}

	for i, c := range t.Customers {
		s.customersByID[c.ID] = i
	}
	for i, v := range t.Vendors {
		s.vendorsByID[v.ID] = i
	}
	for i, p := range t.Products {
		s.productsByID[p.ID] = i
		s.productsByVendor[p.VendorID] = append(s.productsByVendor[p.VendorID], p.ID)
	}
	for i, l := range t.Licenses {
		s.licensesByCustomer[l.CustomerID] = append(s.licensesByCustomer[l.CustomerID], i)
	}

	// Canastas: productos únicos por cliente, ordenados para determinismo.
	seen := make(map[string]map[string]bool)
	for _, l := range t.Licenses {
		if seen[l.CustomerID] == nil {
			seen[l.CustomerID] = make(map[string]bool)
		}
		seen[l.CustomerID][l.ProductID] = true
	}
	for customerID, products := range seen {
		basket := make([]string, 0, len(products))
		for id := range products {
			basket = append(basket, id)
		}
		sort.Strings(basket)
		s.basketByCustomer[customerID] = basket
	}

	return s
}

// CustomerByID retorna el cliente o false si no existe.
func (s *Snapshot) CustomerByID(id string) (entity.Customer, bool) {
	i, ok := s.customersByID[id]
	if !ok {
		return entity.Customer{}, false
	}
	return s.Customers[i], true
}

// VendorByID retorna el proveedor o false si no existe.
func (s *Snapshot) VendorByID(id string) (entity.Vendor, bool) {
	i, ok := s.vendorsByID[id]
	if !ok {
		return entity.Vendor{}, false
	}
	return s.Vendors[i], true
}

// ProductByID retorna el producto o false si no existe.
func (s *Snapshot) ProductByID(id string) (entity.Product, bool) {
	i, ok := s.productsByID[id]
	if !ok {
		return entity.Product{}, false
	}
	return s.Products[i], true
}

// ProductName nombre del producto, o el id crudo si no está en la tabla.
func (s *Snapshot) ProductName(id string) string {
	if p, ok := s.ProductByID(id); ok {
		return p.Name
	}
	return id
}

// LicensesOf licencias del cliente (vacío si no tiene).
func (s *Snapshot) LicensesOf(customerID string) []entity.License {
	idxs := s.licensesByCustomer[customerID]
	out := make([]entity.License, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, s.Licenses[i])
	}
	return out
}

// ProductsOfVendor ids de producto del proveedor.
func (s *Snapshot) ProductsOfVendor(vendorID string) []string {
	return s.productsByVendor[vendorID]
}

// Basket productos únicos comprados por el cliente, ordenados.
func (s *Snapshot) Basket(customerID string) []string {
	return s.basketByCustomer[customerID]
}

// Baskets todas las canastas de compra, en orden de la tabla de clientes para
// que el minado sea determinista. Incluye canastas vacías y de un solo
// producto; el minero descarta las que no aportan asociaciones.
func (s *Snapshot) Baskets() [][]string {
	out := make([][]string, 0, len(s.Customers))
	for _, c := range s.Customers {
		out = append(out, s.basketByCustomer[c.ID])
	}
	return out
}
