package order

import (
	"errors"
	"strings"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
)

// Customer is the contact snapshot taken when the order is placed. Later
// profile edits do not reach existing orders.
type Customer struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Address string
}

func (c Customer) Validate() error {
	var errList []error
	if err := c.ID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("customer.id", err))
	}
	if strings.TrimSpace(c.Name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("customer.name"))
	}
	return errors.Join(errList...)
}
