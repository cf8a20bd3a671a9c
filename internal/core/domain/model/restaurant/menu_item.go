package restaurant

import (
	"errors"
	"strings"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrMenuItemIsNotConstructed = errors.New("MenuItem must be created via NewMenuItem")

// MenuItem is a value object; edits produce a new item.
type MenuItem struct {
	id          kernel.UUID
	name        string
	description string
	price       kernel.Money
	category    string
	available   bool
	imageURL    string
	guard       guard.ConstructorGuard
}

func NewMenuItem(
	id kernel.UUID,
	name, description string,
	price kernel.Money,
	category string,
	available bool,
	imageURL string,
) (MenuItem, error) {
	item := MenuItem{
		description: strings.TrimSpace(description),
		price:       price,
		available:   available,
		imageURL:    strings.TrimSpace(imageURL),
		guard:       guard.NewConstructorGuard(),
	}

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("menuItem.id", err))
	}
	item.id = id
	if item.name = strings.TrimSpace(name); item.name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("menuItem.name"))
	}
	if item.category = strings.TrimSpace(category); item.category == "" {
		errList = append(errList, errs.NewValueIsRequiredError("menuItem.category"))
	}
	if err := errors.Join(errList...); err != nil {
		return MenuItem{}, err
	}
	return item, nil
}

func (m MenuItem) Validate() error {
	return m.guard.Validate(ErrMenuItemIsNotConstructed)
}

func (m MenuItem) ID() kernel.UUID     { return m.id }
func (m MenuItem) Name() string        { return m.name }
func (m MenuItem) Description() string { return m.description }
func (m MenuItem) Price() kernel.Money { return m.price }
func (m MenuItem) Category() string    { return m.category }
func (m MenuItem) IsAvailable() bool   { return m.available }
func (m MenuItem) ImageURL() string    { return m.imageURL }

// WithAvailability returns a copy with the availability flag changed.
func (m MenuItem) WithAvailability(available bool) MenuItem {
	m.available = available
	return m
}
