package queries_test

import (
	"testing"
	"time"

	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/domain/services"
	"localeats/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrderQueryHandler_Visibility(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Margherita", "9.50"))
	other := newRestaurant(t, "Sushi Go", "", newMenuItem(t, "Salmon roll", "7.00"))
	customerID := kernel.NewUUID()
	driverID := kernel.NewUUID()

	ready := newOrder(t, customerID, luigi, order.Ready, driverID)
	pickedUp := newOrder(t, customerID, luigi, order.PickedUp, driverID)

	tests := []struct {
		name    string
		order   *order.Order
		viewer  services.Actor
		owned   any
		visible bool
	}{
		{"customer sees own order", ready, services.Actor{ID: customerID, Role: user.Customer}, nil, true},
		{"customer cannot see foreign order", ready, services.Actor{ID: kernel.NewUUID(), Role: user.Customer}, nil, false},
		{"any driver sees pool order", ready, services.Actor{ID: kernel.NewUUID(), Role: user.Driver}, nil, true},
		{"assignee sees claimed order", pickedUp, services.Actor{ID: driverID, Role: user.Driver}, nil, true},
		{"other driver cannot see claimed order", pickedUp, services.Actor{ID: kernel.NewUUID(), Role: user.Driver}, nil, false},
		{"owner sees restaurant order", ready, services.Actor{ID: luigi.OwnerID(), Role: user.RestaurantOwner}, luigi, true},
		{"other owner cannot see it", ready, services.Actor{ID: other.OwnerID(), Role: user.RestaurantOwner}, other, false},
		{"owner without restaurant", ready, services.Actor{ID: kernel.NewUUID(), Role: user.RestaurantOwner},
			errs.NewObjectNotFoundError("restaurant", "owner"), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orders := &MockOrderReader{}
			restaurants := &MockRestaurantReader{}
			orders.On("Get", mock.Anything, tc.order.ID()).Return(tc.order, nil).Once()
			switch owned := tc.owned.(type) {
			case error:
				restaurants.On("GetByOwner", mock.Anything, tc.viewer.ID).Return(nil, owned).Once()
			case nil:
			default:
				restaurants.On("GetByOwner", mock.Anything, tc.viewer.ID).Return(owned, nil).Once()
			}
			if tc.visible {
				orders.On("StatusHistory", mock.Anything, tc.order.ID()).Return([]order.StatusChange{}, nil).Once()
			}

			query, err := queries.NewGetOrderQuery(tc.order.ID(), tc.viewer)
			require.NoError(t, err)
			details, err := queries.NewGetOrderQueryHandler(orders, restaurants).Handle(t.Context(), query)

			if tc.visible {
				require.NoError(t, err)
				assert.True(t, tc.order.ID().IsEqual(details.ID))
			} else {
				require.ErrorIs(t, err, errs.ErrObjectNotFound)
			}
			orders.AssertExpectations(t)
			restaurants.AssertExpectations(t)
		})
	}
}

func TestGetOrderQueryHandler_HistoryAndAllowedMoves(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Margherita", "9.50"))
	o := newOrder(t, kernel.NewUUID(), luigi, order.Confirmed, kernel.UUID{})
	owner := services.Actor{ID: luigi.OwnerID(), Role: user.RestaurantOwner}
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	orders := &MockOrderReader{}
	restaurants := &MockRestaurantReader{}
	orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	restaurants.On("GetByOwner", mock.Anything, owner.ID).Return(luigi, nil).Once()
	orders.On("StatusHistory", mock.Anything, o.ID()).Return([]order.StatusChange{{
		OrderID:   o.ID(),
		From:      order.Pending,
		To:        order.Confirmed,
		ActorID:   owner.ID,
		ActorRole: user.RestaurantOwner,
		At:        at,
	}}, nil).Once()

	query, err := queries.NewGetOrderQuery(o.ID(), owner)
	require.NoError(t, err)
	details, err := queries.NewGetOrderQueryHandler(orders, restaurants).Handle(t.Context(), query)

	require.NoError(t, err)
	require.Len(t, details.History, 1)
	assert.Equal(t, order.Confirmed, details.History[0].To)
	assert.Equal(t, at, details.History[0].At)
	assert.ElementsMatch(t, []order.Status{order.Preparing, order.Cancelled}, details.Allowed)
	assert.InDelta(t, 19.0, details.TotalAmount, 1e-9)
}

func TestGetOrderQueryHandler_CustomerHasNoMoves(t *testing.T) {
	luigi := newRestaurant(t, "Luigi's", "", newMenuItem(t, "Margherita", "9.50"))
	customerID := kernel.NewUUID()
	o := newOrder(t, customerID, luigi, order.Pending, kernel.UUID{})

	orders := &MockOrderReader{}
	orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
	orders.On("StatusHistory", mock.Anything, o.ID()).Return(nil, nil).Once()

	query, err := queries.NewGetOrderQuery(o.ID(), services.Actor{ID: customerID, Role: user.Customer})
	require.NoError(t, err)
	details, err := queries.NewGetOrderQueryHandler(orders, &MockRestaurantReader{}).Handle(t.Context(), query)

	require.NoError(t, err)
	assert.NotNil(t, details.Allowed)
	assert.Empty(t, details.Allowed)
	assert.Empty(t, details.History)
}
