// Package apptest runs the whole LocalEats stack on a temporary SQLite
// database with an in-process change bus, for end-to-end tests of the
// views and the inbound adapters.
package apptest

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"localeats/cmd"
	"localeats/internal/adapters/out/changefeed"
	"localeats/internal/adapters/out/identity"
	"localeats/internal/adapters/out/postgres/pgtest"
	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/application/views"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const Password = "secret-password"

type App struct {
	Root  *cmd.CompositionRoot
	Views *views.Factory
	DB    *gorm.DB

	seq int
}

// Config is a configuration suitable for tests: cheap hashing, no rate
// limit and jobs that never fire on their own.
func Config() cmd.Config {
	return cmd.Config{
		HTTPPort:        "0",
		DBDriver:        "sqlite",
		JWTSecret:       "test-secret-0123456789abcdef",
		JWTTTL:          time.Hour,
		BcryptCost:      bcrypt.MinCost,
		PoolRefreshSpec: "@every 1h",
		FeedResyncSpec:  "@every 1h",
		LogLevel:        slog.LevelError,
	}
}

// New starts the stack. Everything is torn down when t ends.
func New(t *testing.T) *App {
	t.Helper()

	db := pgtest.OpenSQLite(t)
	require.NoError(t, identity.Migrate(db))

	bus := changefeed.NewMemoryBus()
	root, err := cmd.NewCompositionRoot(Config(), db, bus, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = root.Hub().Run(ctx, bus)
	}()
	require.Eventually(t, func() bool { return bus.Listeners() == 1 }, time.Second, time.Millisecond)

	t.Cleanup(func() {
		cancel()
		<-done
		_ = root.Close()
	})

	return &App{Root: root, Views: root.CreateViewFactory(), DB: db}
}

// SignUp registers a user with a generated email and Password.
func (a *App) SignUp(t *testing.T, role user.Role) views.Session {
	t.Helper()
	return a.SignUpWithEmail(t, role, fmt.Sprintf("%s-%d@example.com", role, a.seq+1))
}

// SignUpWithEmail registers a user with Password and returns its session.
func (a *App) SignUpWithEmail(t *testing.T, role user.Role, email string) views.Session {
	t.Helper()

	a.seq++
	command, err := commands.NewSignUpCommand(email, Password, fmt.Sprintf("%s %d", role, a.seq), role,
		"+1 555 0100", fmt.Sprintf("%d Main Street", a.seq))
	require.NoError(t, err)

	userID, err := a.Root.CreateSignUpCommandHandler().Handle(t.Context(), command)
	require.NoError(t, err)

	session, err := views.NewSession(userID, role)
	require.NoError(t, err)
	return session
}

// OpenRestaurant signs up an owner and registers an open restaurant with
// the given menu.
func (a *App) OpenRestaurant(t *testing.T, name string, menu ...restaurant.MenuItem) (views.Session, queries.RestaurantView) {
	t.Helper()

	owner := a.SignUp(t, user.RestaurantOwner)
	view, err := a.Views.Restaurant(owner)
	require.NoError(t, err)

	_, err = view.Register(t.Context(), restaurant.Profile{
		Name:         name,
		Description:  name + " kitchen",
		Address:      "1 Market Square",
		DeliveryTime: "30-40 min",
		DeliveryFee:  kernel.MustMoney("2.50"),
	})
	require.NoError(t, err)
	if len(menu) > 0 {
		require.NoError(t, view.ReplaceMenu(t.Context(), menu))
	}

	registered, err := view.Restaurant(t.Context())
	require.NoError(t, err)
	return owner, registered
}

// MenuItem builds an available item in the "Mains" category.
func MenuItem(t *testing.T, name, price string) restaurant.MenuItem {
	t.Helper()

	item, err := restaurant.NewMenuItem(kernel.NewUUID(), name, "", kernel.MustMoney(price), "Mains", true, "")
	require.NoError(t, err)
	return item
}
