package ports

import (
	"context"
)

// UnitOfWorkFactory creates one UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction boundary. Orders written through its
// repository are announced on the change feed after a successful Commit,
// never before.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	RestaurantRepository() RestaurantRepository
	UserRepository() UserRepository
	// IdentityProvider registers credentials inside the same transaction,
	// so a sign-up that fails later leaves no credentials behind.
	IdentityProvider() IdentityProvider
}
