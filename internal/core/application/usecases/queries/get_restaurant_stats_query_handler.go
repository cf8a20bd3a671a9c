package queries

import (
	"context"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetRestaurantStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetRestaurantStatsQueryHandler(db *gorm.DB) GetRestaurantStatsQueryHandler {
	return GetRestaurantStatsQueryHandler{db: db}
}

func (h GetRestaurantStatsQueryHandler) Handle(
	ctx context.Context,
	query GetRestaurantStatsQuery,
) (RestaurantStats, error) {
	if err := query.Validate(); err != nil {
		return RestaurantStats{}, err
	}

	var stats RestaurantStats
	if err := h.countWorkload(ctx, query, &stats); err != nil {
		return RestaurantStats{}, errs.NewPersistenceError("restaurant stats", err)
	}
	if err := h.sumDay(ctx, query, &stats); err != nil {
		return RestaurantStats{}, errs.NewPersistenceError("restaurant stats", err)
	}
	return stats, nil
}

func (h GetRestaurantStatsQueryHandler) countWorkload(
	ctx context.Context,
	query GetRestaurantStatsQuery,
	stats *RestaurantStats,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		WHERE restaurant_id = ? AND status IN ?
		GROUP BY status
	`, query.RestaurantID().Bytes(), []int{int(order.Pending), int(order.Preparing), int(order.Ready)}).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status order.Status
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}

		//nolint:exhaustive // only kitchen stages are selected
		switch status {
		case order.Pending:
			stats.Pending = count
		case order.Preparing:
			stats.Preparing = count
		case order.Ready:
			stats.Ready = count
		}
	}

	return rows.Err()
}

func (h GetRestaurantStatsQueryHandler) sumDay(
	ctx context.Context,
	query GetRestaurantStatsQuery,
	stats *RestaurantStats,
) error {
	from, to := query.Day()

	var count int
	var revenue decimal.Decimal
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE restaurant_id = ? AND status <> ? AND created_at >= ? AND created_at < ?
	`, query.RestaurantID().Bytes(), int(order.Cancelled), from.UTC(), to.UTC()).Row().Scan(&count, &revenue)
	if err != nil {
		return err
	}

	stats.OrdersToday = count
	stats.RevenueToday = revenue.Round(2).InexactFloat64()
	if count > 0 {
		stats.AverageOrder = revenue.Div(decimal.NewFromInt(int64(count))).Round(2).InexactFloat64()
	}
	return nil
}
