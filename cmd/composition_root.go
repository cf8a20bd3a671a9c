package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"localeats/api"
	httpin "localeats/internal/adapters/in/http"
	"localeats/internal/adapters/in/ws"
	"localeats/internal/adapters/out/changefeed"
	"localeats/internal/adapters/out/identity"
	"localeats/internal/adapters/out/metrics"
	"localeats/internal/adapters/out/postgres"
	"localeats/internal/adapters/out/postgres/shared"
	"localeats/internal/core/application/usecases/commands"
	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/application/views"
	"localeats/internal/core/ports"
	"localeats/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived adapters and builds the use cases
// on top of them.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	bus        ports.OrderChangeBus
	uowFactory *postgres.GormUnitOfWorkFactory
	hub        *changefeed.Hub
	metrics    *metrics.Metrics
	identity   *identity.GormIdentityProvider
	tokens     *identity.JWTIssuer
}

// NewCompositionRoot wires the store, the change feed and identity. Orders
// committed by a unit of work are published on bus; the caller runs
// Hub().Run to feed them back into the subscriptions.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	bus ports.OrderChangeBus,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tokens, err := identity.NewJWTIssuer(configs.JWTSecret, configs.JWTTTL)
	if err != nil {
		return nil, err
	}

	opts := []shared.Option{shared.WithOpTimeout(configs.DBOpTimeout)}
	credentials := identity.NewGormIdentityProvider(gormDB, configs.BcryptCost, opts...)
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, bus, logger, opts...).WithCredentials(credentials)
	hub := changefeed.NewHub(uowFactory.OrderReader(), logger)
	m := metrics.New()
	m.WatchSubscriptions(hub.Len)

	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		logger:     logger,
		bus:        bus,
		uowFactory: uowFactory,
		hub:        hub,
		metrics:    m,
		identity:   credentials,
		tokens:     tokens,
	}, nil
}

func (c *CompositionRoot) Hub() *changefeed.Hub      { return c.hub }
func (c *CompositionRoot) Tokens() ports.TokenIssuer { return c.tokens }

// Close shuts the feed down and releases the bus. The database is owned
// by the caller.
func (c *CompositionRoot) Close() error {
	c.hub.Close()
	return c.bus.Close()
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReorderCommandHandler() commands.ReorderCommandHandler {
	return commands.NewReorderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.userUoWFactory())
}

func (c *CompositionRoot) CreateSignUpCommandHandler() commands.SignUpCommandHandler {
	return commands.NewSignUpCommandHandler(c.signUpUoWFactory())
}

func (c *CompositionRoot) CreateRegisterRestaurantCommandHandler() commands.RegisterRestaurantCommandHandler {
	return commands.NewRegisterRestaurantCommandHandler(c.restaurantUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRestaurantCommandHandler() commands.UpdateRestaurantCommandHandler {
	return commands.NewUpdateRestaurantCommandHandler(c.restaurantUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.OrderReader(), c.uowFactory.RestaurantReader())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.uowFactory.OrderReader())
}

func (c *CompositionRoot) CreateListRestaurantsQueryHandler() queries.ListRestaurantsQueryHandler {
	return queries.NewListRestaurantsQueryHandler(c.uowFactory.RestaurantReader())
}

func (c *CompositionRoot) CreateGetRestaurantQueryHandler() queries.GetRestaurantQueryHandler {
	return queries.NewGetRestaurantQueryHandler(c.uowFactory.RestaurantReader())
}

func (c *CompositionRoot) CreateGetRestaurantStatsQueryHandler() queries.GetRestaurantStatsQueryHandler {
	return queries.NewGetRestaurantStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSignInQueryHandler() queries.SignInQueryHandler {
	return queries.NewSignInQueryHandler(c.identity, c.uowFactory.UserReader())
}

func (c *CompositionRoot) CreateGetUserQueryHandler() queries.GetUserQueryHandler {
	return queries.NewGetUserQueryHandler(c.uowFactory.UserReader())
}

// CreateViewFactory opens role views backed by every use case above.
func (c *CompositionRoot) CreateViewFactory() *views.Factory {
	return views.NewFactory(views.Handlers{
		PlaceOrder:         c.CreatePlaceOrderCommandHandler(),
		Reorder:            c.CreateReorderCommandHandler(),
		ChangeOrderStatus:  c.CreateChangeOrderStatusCommandHandler(),
		SetAvailability:    c.CreateSetDriverAvailabilityCommandHandler(),
		RegisterRestaurant: c.CreateRegisterRestaurantCommandHandler(),
		UpdateRestaurant:   c.CreateUpdateRestaurantCommandHandler(),
		ListRestaurants:    c.CreateListRestaurantsQueryHandler(),
		GetRestaurant:      c.CreateGetRestaurantQueryHandler(),
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		RestaurantStats:    c.CreateGetRestaurantStatsQueryHandler(),
		GetUser:            c.CreateGetUserQueryHandler(),
	}, c.hub)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.hub, views.IsPoolFilter, c.configs.PoolRefreshSpec, c.configs.FeedResyncSpec, c.logger)
}

// CreateRouter builds the HTTP API together with the WebSocket endpoint.
func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}

	factory := c.CreateViewFactory()
	server := httpin.NewServer(
		factory,
		c.CreateSignUpCommandHandler(),
		c.CreateSignInQueryHandler(),
		c.CreateGetUserQueryHandler(),
		c.tokens,
		c.logger,
	)
	wsHandler := ws.NewHandler(factory, c.tokens, c.checkOrigin(), c.logger)

	return httpin.NewRouter(server, httpin.RouterConfig{
		Document:     doc,
		Metrics:      c.metrics,
		WebSocket:    wsHandler.Orders,
		RateLimitRPS: c.configs.RateLimitRPS,
		LogLevel:     c.configs.LogLevel,
		Logger:       c.logger,
	})
}

func (c *CompositionRoot) checkOrigin() func(r *http.Request) bool {
	if len(c.configs.AllowedOrigins) == 0 {
		return nil
	}
	allowed := c.configs.AllowedOrigins
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin)
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) restaurantUoWFactory() commands.RestaurantUoWFactory {
	return FuncRestaurantUoWFactory(func() commands.RestaurantUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) signUpUoWFactory() commands.SignUpUoWFactory {
	return FuncSignUpUoWFactory(func() commands.SignUpUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRestaurantUoWFactory func() commands.RestaurantUoW

func (f FuncRestaurantUoWFactory) Create() commands.RestaurantUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}

type FuncSignUpUoWFactory func() commands.SignUpUoW

func (f FuncSignUpUoWFactory) Create() commands.SignUpUoW {
	return f()
}
