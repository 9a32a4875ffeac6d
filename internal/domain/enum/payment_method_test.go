package enum

import "testing"

func TestPaymentLabel(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{PaymentCreditCard, "CARD"},
		{PaymentDebitCard, "CARD"},
		{PaymentCash, "CASH"},
		{PaymentCheck, "CHECK"},
		{PaymentStoreCredit, "STORE CREDIT"},
		{"wire_transfer", "WIRE TRANSFER"},
	}

	for _, tt := range tests {
		if got := PaymentLabel(tt.method); got != tt.want {
			t.Errorf("PaymentLabel(%q) = %q, want %q", tt.method, got, tt.want)
		}
	}
}

func TestIsCardPayment(t *testing.T) {
	for _, method := range []string{PaymentCreditCard, PaymentDebitCard} {
		if !IsCardPayment(method) {
			t.Errorf("%s should incur the card fee", method)
		}
	}
	for _, method := range []string{PaymentCash, PaymentCheck, PaymentStoreCredit} {
		if IsCardPayment(method) {
			t.Errorf("%s should not incur the card fee", method)
		}
	}
}
