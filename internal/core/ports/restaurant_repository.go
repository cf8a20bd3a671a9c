package ports

import (
	"context"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
)

type RestaurantReader interface {
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error)
	// List returns every restaurant ordered by name.
	List(ctx context.Context) ([]*restaurant.Restaurant, error)
}

type RestaurantRepository interface {
	RestaurantReader
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error
	// Update replaces the stored profile, open flag and whole menu.
	Update(ctx context.Context, aggregate *restaurant.Restaurant) error
}
