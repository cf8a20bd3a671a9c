package queries

import (
	"errors"
	"time"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/pkg/errs"
	"localeats/internal/pkg/guard"
)

var ErrGetRestaurantStatsQueryIsNotConstructed = errors.New(
	"GetRestaurantStatsQuery must be created via NewGetRestaurantStatsQuery constructor",
)

// GetRestaurantStatsQuery feeds the restaurant dashboard: the current
// kitchen workload and the takings of one calendar day.
//
// Example:
//
//	query, err := NewGetRestaurantStatsQuery(restaurantID, time.Now())
//	if err != nil {
//	    return err
//	}
//	stats, err := NewGetRestaurantStatsQueryHandler(db).Handle(ctx, query)
type GetRestaurantStatsQuery struct {
	restaurantID kernel.UUID
	dayStart     time.Time

	guard guard.ConstructorGuard
}

// NewGetRestaurantStatsQuery takes the calendar day of day in day's own
// location.
func NewGetRestaurantStatsQuery(restaurantID kernel.UUID, day time.Time) (GetRestaurantStatsQuery, error) {
	var errList []error
	if err := restaurantID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("restaurantId", err))
	}
	if day.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("day"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetRestaurantStatsQuery{}, err
	}

	return GetRestaurantStatsQuery{
		restaurantID: restaurantID,
		dayStart:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q GetRestaurantStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantStatsQueryIsNotConstructed)
}

func (q GetRestaurantStatsQuery) RestaurantID() kernel.UUID { return q.restaurantID }

// Day returns the half-open interval covered by the revenue figures.
func (q GetRestaurantStatsQuery) Day() (from, to time.Time) {
	return q.dayStart, q.dayStart.AddDate(0, 0, 1)
}

// RestaurantStats counts orders waiting in each kitchen stage and sums the
// day's non-cancelled orders.
type RestaurantStats struct {
	Pending      int     `json:"pending"`
	Preparing    int     `json:"preparing"`
	Ready        int     `json:"ready"`
	OrdersToday  int     `json:"ordersToday"`
	RevenueToday float64 `json:"revenueToday"`
	AverageOrder float64 `json:"averageOrder"`
}
