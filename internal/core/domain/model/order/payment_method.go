package order

import (
	"fmt"

	"localeats/internal/pkg/errs"
)

// PaymentMethod records how the customer intends to pay. It is a tag on
// the order only; no payment is settled.
type PaymentMethod int

const (
	// UnknownPaymentMethod is the invalid zero value.
	UnknownPaymentMethod PaymentMethod = iota

	// Cash is paid to the driver on delivery.
	Cash

	// BankTransfer is paid outside the platform.
	BankTransfer
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		UnknownPaymentMethod: "unknown",
		Cash:                 "cash",
		BankTransfer:         "bank_transfer",
	}
}

// ParsePaymentMethod accepts the wire names "cash" and "bank_transfer".
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, name := range getPaymentMethodStrings() {
		if method != UnknownPaymentMethod && name == s {
			return method, nil
		}
	}
	return UnknownPaymentMethod, errs.NewValueIsInvalidErrorWithCause(
		"paymentMethod", fmt.Errorf("%q is not a supported payment method", s))
}

func (p PaymentMethod) Validate() error {
	if p == UnknownPaymentMethod {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	if _, ok := getPaymentMethodStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not a valid payment method", p))
	}
	return nil
}

func (p PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[p]; ok {
		return s
	}
	return "unknown"
}

func (p PaymentMethod) MarshalText() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *PaymentMethod) UnmarshalText(text []byte) error {
	parsed, err := ParsePaymentMethod(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
