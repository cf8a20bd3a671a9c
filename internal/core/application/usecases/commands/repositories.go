// Package commands contains the operations that change LocalEats state.
// Every handler validates its command, opens a unit of work, loads the
// aggregates it needs, applies domain behaviour and commits.
package commands

import (
	"context"

	"localeats/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	IdentityFactory interface {
		IdentityProvider() ports.IdentityProvider
	}

	// UoW spans orders, restaurants and users. Used by order placement and
	// lifecycle moves, which read all three.
	UoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
		UserRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// RestaurantUoW covers restaurant registration and menu management.
	RestaurantUoW interface {
		TxManager
		RestaurantRepoFactory
		UserRepoFactory
	}

	RestaurantUoWFactory interface {
		Create() RestaurantUoW
	}

	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// SignUpUoW stores credentials and the user profile together.
	SignUpUoW interface {
		TxManager
		UserRepoFactory
		IdentityFactory
	}

	SignUpUoWFactory interface {
		Create() SignUpUoW
	}
)
