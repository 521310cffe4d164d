package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entitlement evento de compra: otorga al cliente el derecho de usar una
// cantidad de un producto. Un cliente puede tener varios entitlements del
// mismo producto a lo largo del tiempo; la tabla es append-only.
type Entitlement struct {
	ID            string
	CustomerID    string
	ProductID     string
	PurchaseDate  time.Time
	Quantity      int64
	ContractValue decimal.Decimal
}

// Activation evento de uso: registra que una cantidad comprada fue puesta en
// producción. Cero o más por entitlement. La cantidad activada puede exceder
// la comprada en datos sucios; los consumidores recortan las tasas derivadas.
type Activation struct {
	ID             string
	EntitlementID  string
	ActivationDate time.Time
	Quantity       int64
}
