package ports

import (
	"context"

	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/user"
)

type UserReader interface {
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

type UserRepository interface {
	UserReader
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error
}
