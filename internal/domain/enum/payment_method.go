package enum

import "strings"

// Payment methods accepted at the register
const (
	PaymentCreditCard  = "credit_card"
	PaymentDebitCard   = "debit_card"
	PaymentCash        = "cash"
	PaymentCheck       = "check"
	PaymentStoreCredit = "store_credit"
)

// PaymentLabel normalizes a payment method for receipt display. Credit and
// debit cards both print as "CARD"; everything else is upper-cased with
// underscores replaced by spaces.
func PaymentLabel(method string) string {
	switch method {
	case PaymentCreditCard, PaymentDebitCard:
		return "CARD"
	default:
		return strings.ToUpper(strings.ReplaceAll(method, "_", " "))
	}
}

// IsCardPayment reports whether the method incurs the card processing fee.
func IsCardPayment(method string) bool {
	return method == PaymentCreditCard || method == PaymentDebitCard
}
