package queries_test

import (
	"testing"
	"time"

	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/domain/services"
	"localeats/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.ListRestaurantsQuery{}.Validate(), queries.ErrListRestaurantsQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetRestaurantQuery{}.Validate(), queries.ErrGetRestaurantQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListOrdersQuery{}.Validate(), queries.ErrListOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.GetRestaurantStatsQuery{}.Validate(), queries.ErrGetRestaurantStatsQueryIsNotConstructed)
}

func TestNewListRestaurantsQuery_TrimsSearch(t *testing.T) {
	query := queries.NewListRestaurantsQuery("  pizza ")
	require.NoError(t, query.Validate())
	assert.Equal(t, "pizza", query.Search())
}

func TestNewGetRestaurantQuery_RequiresID(t *testing.T) {
	_, err := queries.NewGetRestaurantQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOwnedRestaurantQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetOrderQuery(t *testing.T) {
	viewer, err := services.NewActor(kernel.NewUUID(), user.Customer)
	require.NoError(t, err)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), viewer)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	_, err = queries.NewGetOrderQuery(kernel.UUID{}, services.Actor{})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestNewGetRestaurantStatsQuery_CoversOneCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	query, err := queries.NewGetRestaurantStatsQuery(kernel.NewUUID(), time.Date(2026, 3, 14, 23, 30, 0, 0, loc))
	require.NoError(t, err)

	from, to := query.Day()
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, loc), to)

	_, err = queries.NewGetRestaurantStatsQuery(kernel.NewUUID(), time.Time{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
