package queries_test

import (
	"encoding/json"
	"testing"
	"time"

	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionCustomerOrders(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Margherita", "9.50"))
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	older := newOrder(t, customerID, luigi, order.Preparing, driverID)
	older.Stamp(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC))
	newer := newOrder(t, customerID, luigi, order.OutForDelivery, driverID)
	newer.Stamp(time.Date(2026, 5, 1, 11, 0, 0, 0, time.UTC))
	delivered := newOrder(t, customerID, luigi, order.Delivered, driverID)
	delivered.Stamp(time.Date(2026, 4, 30, 9, 0, 0, 0, time.UTC))
	cancelled := newOrder(t, customerID, luigi, order.Cancelled, driverID)
	cancelled.Stamp(time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC))

	result := queries.PartitionCustomerOrders([]*order.Order{older, delivered, newer, cancelled})

	require.Len(t, result.Active, 2)
	assert.True(t, newer.ID().IsEqual(result.Active[0].ID))
	assert.True(t, older.ID().IsEqual(result.Active[1].ID))
	require.Len(t, result.History, 2)
	assert.True(t, cancelled.ID().IsEqual(result.History[0].ID))
	assert.True(t, delivered.ID().IsEqual(result.History[1].ID))
}

func TestPartitionRestaurantOrders(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Margherita", "9.50"))
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	var all []*order.Order
	for _, status := range order.AllStatuses() {
		all = append(all, newOrder(t, customerID, luigi, status, driverID))
	}

	result := queries.PartitionRestaurantOrders(all)

	require.Len(t, result.New, 1)
	assert.Equal(t, order.Pending, result.New[0].Status)
	statuses := make([]order.Status, 0, len(result.InProgress))
	for _, v := range result.InProgress {
		statuses = append(statuses, v.Status)
	}
	assert.ElementsMatch(t, []order.Status{order.Confirmed, order.Preparing, order.Ready}, statuses)
}

func TestNewPoolEntries_EstimatesEarning(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Family pizza", "11.75"))
	customerID := kernel.NewUUID()
	ready := newOrder(t, customerID, luigi, order.Ready, kernel.UUID{})
	claimed := newOrder(t, customerID, luigi, order.PickedUp, kernel.NewUUID())

	entries := queries.NewPoolEntries([]*order.Order{ready, claimed})

	require.Len(t, entries, 1)
	assert.True(t, ready.ID().IsEqual(entries[0].ID))
	assert.InDelta(t, 23.5, entries[0].TotalAmount, 1e-9)
	assert.InDelta(t, 2.35, entries[0].EstimatedEarning, 1e-9)
}

func TestOrderView_JSON(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Margherita", "9.50"))
	o := newOrder(t, kernel.NewUUID(), luigi, order.Pending, kernel.UUID{})

	payload, err := json.Marshal(queries.NewOrderView(o))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "pending", decoded["status"])
	assert.Equal(t, "cash", decoded["paymentMethod"])
	assert.Equal(t, o.ID().String(), decoded["id"])
	assert.InDelta(t, 19.0, decoded["totalAmount"], 1e-9)
	assert.NotContains(t, decoded, "driverId")
}
