package queries

import (
	"errors"
	"strings"

	"localeats/internal/pkg/guard"
)

var ErrListRestaurantsQueryIsNotConstructed = errors.New(
	"ListRestaurantsQuery must be created via NewListRestaurantsQuery constructor",
)

// ListRestaurantsQuery browses restaurants. An empty search lists all of
// them; otherwise the search is a case-insensitive substring of the name or
// the description.
type ListRestaurantsQuery struct {
	search string

	guard guard.ConstructorGuard
}

func NewListRestaurantsQuery(search string) ListRestaurantsQuery {
	return ListRestaurantsQuery{
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}
}

func (q ListRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrListRestaurantsQueryIsNotConstructed)
}

func (q ListRestaurantsQuery) Search() string { return q.search }
