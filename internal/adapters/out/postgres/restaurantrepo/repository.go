package restaurantrepo

import (
	"context"
	"errors"

	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRestaurantRepository struct {
	db   *gorm.DB
	opts shared.Options
}

func NewGormRestaurantRepository(db *gorm.DB, opts ...shared.Option) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db, opts: shared.NewOptions(opts...)}
}

var _ ports.RestaurantRepository = (*GormRestaurantRepository)(nil)

// Add fails with a ConflictError when the owner already has a restaurant.
func (r *GormRestaurantRepository) Add(ctx context.Context, aggregate *restaurant.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "owner_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return shared.Wrap("add restaurant", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("owner", aggregate.OwnerID().String(), "already owns a restaurant")
	}
	return nil
}

// Update replaces the stored document, menu included.
func (r *GormRestaurantRepository) Update(ctx context.Context, aggregate *restaurant.Restaurant) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()
	result := r.db.WithContext(ctx).Model(&RestaurantDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "owner_id").
		Updates(&dto)
	if result.Error != nil {
		return shared.Wrap("update restaurant", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", aggregate.ID().String())
	}
	return nil
}

func (r *GormRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "restaurant", id.String(), "id = ?", id.Bytes())
}

func (r *GormRestaurantRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*restaurant.Restaurant, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "restaurant of owner", ownerID.String(), "owner_id = ?", ownerID.Bytes())
}

func (r *GormRestaurantRepository) List(ctx context.Context) ([]*restaurant.Restaurant, error) {
	var dtos []RestaurantDTO
	err := r.opts.Read(ctx, func(ctx context.Context) error {
		dtos = nil
		return r.db.WithContext(ctx).Order("name ASC, id ASC").Find(&dtos).Error
	})
	if err != nil {
		return nil, shared.Wrap("list restaurants", err)
	}

	restaurants := make([]*restaurant.Restaurant, 0, len(dtos))
	for _, dto := range dtos {
		res, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		restaurants = append(restaurants, res)
	}
	return restaurants, nil
}

func (r *GormRestaurantRepository) first(
	ctx context.Context,
	name, key string,
	query string,
	args ...any,
) (*restaurant.Restaurant, error) {
	var dto RestaurantDTO
	err := r.opts.Read(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).Where(query, args...).First(&dto).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(name, key)
		}
		return nil, shared.Wrap("get restaurant", err)
	}
	return toDomain(dto)
}
