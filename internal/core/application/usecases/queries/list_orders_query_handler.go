package queries

import (
	"context"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/ports"
)

type ListOrdersQueryHandler struct {
	orders ports.OrderReader
}

func NewListOrdersQueryHandler(orders ports.OrderReader) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders}
}

// Handle returns domain orders so callers can partition them before
// building read models.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders, err := h.orders.Find(ctx, query.Filter(), query.Sort())
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	return orders, nil
}
