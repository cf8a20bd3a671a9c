// Package ws streams live order views over WebSocket. A connection is
// bound to the signed-in user's role: customers receive their orders,
// restaurant owners their kitchen board and drivers the pool together
// with their own deliveries. Every frame is a full snapshot.
package ws

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"localeats/internal/core/application/usecases/queries"
	"localeats/internal/core/application/views"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/core/ports"
	"localeats/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Frame types.
const (
	FrameCustomerOrders   = "customer_orders"
	FrameRestaurantOrders = "restaurant_orders"
	FrameDriverPool       = "driver_pool"
	FrameDriverDeliveries = "driver_deliveries"
)

// Frame is one message sent to the client.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Handler struct {
	views    *views.Factory
	tokens   ports.TokenIssuer
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler accepts connections from origins allowed by checkOrigin; nil
// keeps the gorilla default of same-origin only.
func NewHandler(
	factory *views.Factory,
	tokens ports.TokenIssuer,
	checkOrigin func(r *http.Request) bool,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		views:  factory,
		tokens: tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger.With("component", "ws"),
	}
}

// Orders handles GET /ws/orders. Browsers cannot set headers on a
// WebSocket handshake, so the token may also come as ?token=.
func (h *Handler) Orders(c echo.Context) error {
	session, err := h.authenticate(c.Request())
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	client := newClient(conn)
	subs, err := h.subscribe(ctx, session, client)
	defer func() {
		for _, sub := range subs {
			sub.Close()
		}
	}()
	if err != nil {
		h.logger.WarnContext(ctx, "websocket subscription failed",
			"user_id", session.UserID().String(), "error", err)
		client.closeWith(websocket.CloseInternalServerErr, "subscription failed")
		return nil
	}

	go client.writePump(ctx)
	client.readPump()
	return nil
}

func (h *Handler) authenticate(r *http.Request) (views.Session, error) {
	token := r.URL.Query().Get("token")
	if header := r.Header.Get(echo.HeaderAuthorization); token == "" && strings.HasPrefix(header, "Bearer ") {
		token = strings.TrimPrefix(header, "Bearer ")
	}
	if token == "" {
		return views.Session{}, errs.NewUnauthorizedError("missing token")
	}
	userID, role, err := h.tokens.Verify(token)
	if err != nil {
		return views.Session{}, err
	}
	return views.NewSession(userID, role)
}

func (h *Handler) subscribe(ctx context.Context, s views.Session, c *client) ([]ports.Subscription, error) {
	switch s.Role() {
	case user.Customer:
		v, err := h.views.Customer(s)
		if err != nil {
			return nil, err
		}
		sub, err := v.WatchOrders(ctx, func(o queries.CustomerOrders) { c.push(FrameCustomerOrders, o) })
		if err != nil {
			return nil, err
		}
		return []ports.Subscription{sub}, nil

	case user.RestaurantOwner:
		v, err := h.views.Restaurant(s)
		if err != nil {
			return nil, err
		}
		sub, err := v.WatchOrders(ctx, func(o queries.RestaurantOrders) { c.push(FrameRestaurantOrders, o) })
		if err != nil {
			return nil, err
		}
		return []ports.Subscription{sub}, nil

	case user.Driver:
		v, err := h.views.Driver(s)
		if err != nil {
			return nil, err
		}
		pool, err := v.WatchPool(ctx, func(p []queries.PoolEntry) { c.push(FrameDriverPool, p) })
		if err != nil {
			return nil, err
		}
		deliveries, err := v.WatchDeliveries(ctx, func(d []queries.OrderView) { c.push(FrameDriverDeliveries, d) })
		if err != nil {
			return []ports.Subscription{pool}, err
		}
		return []ports.Subscription{pool, deliveries}, nil

	default:
		return nil, errors.New("no live view for role " + s.Role().String())
	}
}
