package models

// PaymentMethod is how the customer pays at checkout
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
)

// Defaults applied when an order arrives without customer or payment data.
const (
	DefaultCustomer = "Cliente"
	DefaultPayment  = PaymentCash
)

// IsValid reports whether m is an accepted payment method.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}
