package queries

import (
	"context"
	"strings"

	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/ports"
)

type ListRestaurantsQueryHandler struct {
	restaurants ports.RestaurantReader
}

func NewListRestaurantsQueryHandler(restaurants ports.RestaurantReader) ListRestaurantsQueryHandler {
	return ListRestaurantsQueryHandler{restaurants: restaurants}
}

// Handle filters in memory. The restaurant count of a local delivery
// platform is small and the store offers no text search.
func (h ListRestaurantsQueryHandler) Handle(ctx context.Context, query ListRestaurantsQuery) ([]RestaurantView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.restaurants.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query.Search())
	result := make([]RestaurantView, 0, len(all))
	for _, r := range all {
		if needle != "" && !matchesSearch(r, needle) {
			continue
		}
		result = append(result, NewRestaurantView(r))
	}
	return result, nil
}

func matchesSearch(r *restaurant.Restaurant, needle string) bool {
	profile := r.Profile()
	return strings.Contains(strings.ToLower(profile.Name), needle) ||
		strings.Contains(strings.ToLower(profile.Description), needle)
}
