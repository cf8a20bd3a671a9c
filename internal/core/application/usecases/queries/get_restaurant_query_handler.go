package queries

import (
	"context"

	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/ports"
)

type GetRestaurantQueryHandler struct {
	restaurants ports.RestaurantReader
}

func NewGetRestaurantQueryHandler(restaurants ports.RestaurantReader) GetRestaurantQueryHandler {
	return GetRestaurantQueryHandler{restaurants: restaurants}
}

func (h GetRestaurantQueryHandler) Handle(ctx context.Context, query GetRestaurantQuery) (RestaurantView, error) {
	if err := query.Validate(); err != nil {
		return RestaurantView{}, err
	}

	var (
		r   *restaurant.Restaurant
		err error
	)
	if query.byOwner {
		r, err = h.restaurants.GetByOwner(ctx, query.ownerID)
	} else {
		r, err = h.restaurants.Get(ctx, query.restaurantID)
	}
	if err != nil {
		return RestaurantView{}, err
	}

	return NewRestaurantView(r), nil
}
