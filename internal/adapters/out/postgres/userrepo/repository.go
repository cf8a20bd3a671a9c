package userrepo

import (
	"context"
	"errors"

	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUserRepository struct {
	db   *gorm.DB
	opts shared.Options
}

func NewGormUserRepository(db *gorm.DB, opts ...shared.Option) *GormUserRepository {
	return &GormUserRepository{db: db, opts: shared.NewOptions(opts...)}
}

var _ ports.UserRepository = (*GormUserRepository)(nil)

// Add fails with a ConflictError when the email is taken.
func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return shared.Wrap("add user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("email", aggregate.Email(), "already registered")
	}
	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	ctx, cancel := r.opts.Context(ctx)
	defer cancel()
	result := r.db.WithContext(ctx).Model(&UserDTO{}).Where("id = ?", dto.ID).
		Select("name", "phone", "address", "is_online", "restaurant_id").
		Updates(&dto)
	if result.Error != nil {
		return shared.Wrap("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID().String())
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	err := r.opts.Read(ctx, func(ctx context.Context) error {
		return r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, shared.Wrap("get user", err)
	}

	return toDomain(dto)
}
