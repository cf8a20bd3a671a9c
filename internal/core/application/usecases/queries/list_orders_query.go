package queries

import (
	"errors"

	"localeats/internal/core/ports"
	"localeats/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery is the general order query behind every role's order
// lists: a filter and a creation-time sort.
type ListOrdersQuery struct {
	filter ports.OrderFilter
	sort   ports.OrderSort

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(filter ports.OrderFilter, sort ports.OrderSort) ListOrdersQuery {
	return ListOrdersQuery{filter: filter, sort: sort, guard: guard.NewConstructorGuard()}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() ports.OrderFilter { return q.filter }
func (q ListOrdersQuery) Sort() ports.OrderSort     { return q.sort }
