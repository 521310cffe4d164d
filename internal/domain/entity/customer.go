package entity

import "time"

// CustomerStatus estado comercial del cliente.
type CustomerStatus string

const (
	StatusActive    CustomerStatus = "Active"
	StatusInactive  CustomerStatus = "Inactive"
	StatusSuspended CustomerStatus = "Suspended"
)

// Churned indica si el estado por sí solo marca al cliente como perdido.
func (s CustomerStatus) Churned() bool {
	return s == StatusInactive || s == StatusSuspended
}

// Customer representa una empresa cliente del negocio de licenciamiento.
// Entidad de referencia inmutable: el motor analítico nunca la modifica.
type Customer struct {
	ID         string
	Name       string
	Status     CustomerStatus
	Industry   string
	Country    string
	SignupDate time.Time
}
