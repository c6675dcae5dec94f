package payment

import (
	"fmt"
	"strings"
)

// PaymentType describes which part of the bill is being paid. The dialog
// accepts it but does not change its rendering.
type PaymentType string

const (
	TypePending PaymentType = "pending"
	TypeTotal   PaymentType = "total"
	TypePartial PaymentType = "partial"
)

// DefaultPaymentType is used when the caller does not supply one.
const DefaultPaymentType = TypeTotal

// ParsePaymentType returns the PaymentType named by s. Empty input yields
// DefaultPaymentType.
func ParsePaymentType(s string) (PaymentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultPaymentType, nil
	}
	switch t := PaymentType(s); t {
	case TypePending, TypeTotal, TypePartial:
		return t, nil
	}
	return "", fmt.Errorf("unknown payment type %q (want pending, total or partial)", s)
}

// OrDefault returns t, or DefaultPaymentType when t is empty.
func (t PaymentType) OrDefault() PaymentType {
	if t == "" {
		return DefaultPaymentType
	}
	return t
}

func (t PaymentType) String() string {
	return string(t)
}

// Set implements pflag.Value.
func (t *PaymentType) Set(s string) error {
	v, err := ParsePaymentType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Type implements pflag.Value.
func (t *PaymentType) Type() string {
	return "payment-type"
}
