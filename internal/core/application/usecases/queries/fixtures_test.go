package queries_test

import (
	"testing"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/require"
)

func newRestaurant(t *testing.T, name, description string, items ...restaurant.MenuItem) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), kernel.NewUUID(), restaurant.Profile{
		Name:        name,
		Description: description,
		Address:     "1 Main St",
	})
	require.NoError(t, err)
	require.NoError(t, r.ReplaceMenu(items))
	return r
}

func newMenuItem(t *testing.T, name, price string) restaurant.MenuItem {
	t.Helper()
	item, err := restaurant.NewMenuItem(kernel.NewUUID(), name, "", kernel.MustMoney(price), "Mains", true, "")
	require.NoError(t, err)
	return item
}

// newOrder builds an order for customerID at r, advanced to status. driverID
// is used only when status requires a driver.
func newOrder(
	t *testing.T,
	customerID kernel.UUID,
	r *restaurant.Restaurant,
	status order.Status,
	driverID kernel.UUID,
) *order.Order {
	t.Helper()
	menu := r.Menu()
	require.NotEmpty(t, menu)
	item, err := order.NewItem(menu[0].ID(), menu[0].Name(), menu[0].Price(), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Customer{ID: customerID, Name: "Cara", Address: "2 Elm St"},
		r.ID(), r.Name(), []order.Item{item}, order.Cash)
	require.NoError(t, err)

	var path []func() error
	switch status {
	case order.Cancelled:
		path = []func() error{o.Cancel}
	default:
		path = []func() error{
			o.Confirm, o.StartPreparing, o.MarkReady,
			func() error { return o.PickUp(driverID) },
			o.StartDelivery, o.Deliver,
		}
	}
	for _, step := range path {
		if o.Status() == status {
			break
		}
		require.NoError(t, step())
	}
	require.Equal(t, status, o.Status())
	return o
}
