package commands_test

import (
	"testing"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

func newTestUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role.String()+"@example.com", "Test "+role.String(), role, "555-0100", "2 Elm St")
	require.NoError(t, err)
	return u
}

func newTestMenuItem(t *testing.T, name, price string, available bool) restaurant.MenuItem {
	t.Helper()
	item, err := restaurant.NewMenuItem(kernel.NewUUID(), name, "", kernel.MustMoney(price), "Mains", available, "")
	require.NoError(t, err)
	return item
}

func newTestRestaurant(t *testing.T, ownerID kernel.UUID, items ...restaurant.MenuItem) *restaurant.Restaurant {
	t.Helper()
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, restaurant.Profile{Name: "Luigi's", Address: "1 Main St"})
	require.NoError(t, err)
	require.NoError(t, r.ReplaceMenu(items))
	return r
}

func newTestOrder(t *testing.T, customerID kernel.UUID, r *restaurant.Restaurant) *order.Order {
	t.Helper()
	menu := r.Menu()
	require.NotEmpty(t, menu)
	item, err := order.NewItem(menu[0].ID(), menu[0].Name(), menu[0].Price(), 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Customer{ID: customerID, Name: "Cara"}, r.ID(), r.Name(),
		[]order.Item{item}, order.Cash)
	require.NoError(t, err)
	return o
}

func advanceTo(t *testing.T, o *order.Order, target order.Status, driverID kernel.UUID) {
	t.Helper()
	steps := map[order.Status]func() error{
		order.Confirmed:      o.Confirm,
		order.Preparing:      o.StartPreparing,
		order.Ready:          o.MarkReady,
		order.PickedUp:       func() error { return o.PickUp(driverID) },
		order.OutForDelivery: o.StartDelivery,
		order.Delivered:      o.Deliver,
	}
	for _, status := range order.AllStatuses() {
		if o.Status() == target {
			return
		}
		if step, ok := steps[status]; ok && status > o.Status() {
			require.NoError(t, step())
		}
	}
	require.Equal(t, target, o.Status())
}
