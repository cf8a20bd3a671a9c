package http

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"localeats/internal/adapters/out/metrics"
	"localeats/internal/core/application/views"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	// Document is the loaded OpenAPI description used for request
	// validation and the Swagger UI.
	Document *openapi3.T
	Metrics  *metrics.Metrics
	// WebSocket serves GET /ws/orders when set.
	WebSocket echo.HandlerFunc
	// RateLimitRPS is the sustained per-client request rate; zero or less
	// disables limiting.
	RateLimitRPS float64
	LogLevel     slog.Level
	Logger       *slog.Logger
}

// NewRouter wires every LocalEats route onto a new echo instance.
func NewRouter(s *Server, cfg RouterConfig) (*echo.Echo, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(cfg.LogLevel))
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger.With("component", "http"))

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "http")))
	if cfg.Metrics != nil {
		e.Use(observe(cfg.Metrics))
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}
	if cfg.RateLimitRPS > 0 {
		e.Use(rateLimiter(cfg.RateLimitRPS))
	}

	e.GET("/health", s.Health)

	if cfg.Document != nil {
		validate, err := validateRequests(cfg.Document)
		if err != nil {
			return nil, err
		}
		e.Use(validate)
		if err = registerDocs(cfg.Document); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	if cfg.WebSocket != nil {
		e.GET("/ws/orders", cfg.WebSocket)
	}

	v1 := e.Group("/api/v1")
	v1.POST("/auth/signup", s.SignUp)
	v1.POST("/auth/signin", s.SignIn)

	authed := v1.Group("", bearerAuth(s.tokens))
	authed.GET("/me", s.GetProfile)

	authed.GET("/restaurants", s.ListRestaurants)
	authed.POST("/restaurants", s.RegisterRestaurant)
	authed.GET("/restaurants/:restaurantId", s.GetRestaurant)
	authed.PUT("/restaurants/:restaurantId", s.UpdateRestaurantProfile)
	authed.PUT("/restaurants/:restaurantId/open", s.SetRestaurantOpen)
	authed.POST("/restaurants/:restaurantId/menu", s.AddMenuItem)
	authed.PUT("/restaurants/:restaurantId/menu", s.ReplaceMenu)
	authed.PATCH("/restaurants/:restaurantId/menu/:itemId", s.SetMenuItemAvailability)
	authed.DELETE("/restaurants/:restaurantId/menu/:itemId", s.RemoveMenuItem)

	authed.GET("/restaurant", s.GetOwnedRestaurant)
	authed.GET("/restaurant/orders", s.GetRestaurantOrders)
	authed.GET("/restaurant/stats", s.GetRestaurantStats)

	authed.POST("/orders", s.PlaceOrder)
	authed.GET("/orders/:orderId", s.GetOrder)
	authed.POST("/orders/:orderId/reorder", s.Reorder)
	authed.POST("/orders/:orderId/cancel", s.CancelOrder)
	authed.POST("/orders/:orderId/accept", s.restaurantMove((*views.RestaurantView).Accept))
	authed.POST("/orders/:orderId/reject", s.restaurantMove((*views.RestaurantView).Reject))
	authed.POST("/orders/:orderId/prepare", s.restaurantMove((*views.RestaurantView).StartPreparing))
	authed.POST("/orders/:orderId/ready", s.restaurantMove((*views.RestaurantView).MarkReady))
	authed.POST("/orders/:orderId/claim", s.driverMove((*views.DriverView).Claim))
	authed.POST("/orders/:orderId/dispatch", s.driverMove((*views.DriverView).StartDelivery))
	authed.POST("/orders/:orderId/deliver", s.driverMove((*views.DriverView).CompleteDelivery))

	authed.GET("/customer/orders", s.GetCustomerOrders)

	authed.PUT("/driver/availability", s.SetDriverAvailability)
	authed.GET("/driver/pool", s.GetDriverPool)
	authed.GET("/driver/deliveries", s.GetDriverDeliveries)

	return e, nil
}

func rateLimiter(rps float64) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     int(math.Ceil(rps)) * 2,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    http.StatusTooManyRequests,
				Message: "rate limit exceeded",
			})
		},
	})
}

func echoLogLevel(level slog.Level) log.Lvl {
	switch {
	case level <= slog.LevelDebug:
		return log.DEBUG
	case level <= slog.LevelInfo:
		return log.INFO
	case level <= slog.LevelWarn:
		return log.WARN
	default:
		return log.ERROR
	}
}
