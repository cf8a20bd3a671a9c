package http

import (
	"context"
	"net/http"

	"localeats/internal/core/application/views"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/restaurant"
	"localeats/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) restaurantOwner(c echo.Context) (*views.RestaurantView, error) {
	session, err := sessionFrom(c)
	if err != nil {
		return nil, err
	}
	return s.views.Restaurant(session)
}

// ownedRestaurant opens the owner's view and checks that the restaurantId
// in the path is the restaurant the owner runs.
func (s *Server) ownedRestaurant(c echo.Context) (*views.RestaurantView, error) {
	view, err := s.restaurantOwner(c)
	if err != nil {
		return nil, err
	}
	restaurantID, err := pathUUID(c, "restaurantId")
	if err != nil {
		return nil, err
	}
	owned, err := view.Restaurant(c.Request().Context())
	if err != nil {
		return nil, err
	}
	if !owned.ID.IsEqual(restaurantID) {
		return nil, errs.NewForbiddenError("manage another owner's restaurant", view.Session().Role().String())
	}
	return view, nil
}

// RegisterRestaurant handles POST /api/v1/restaurants.
func (s *Server) RegisterRestaurant(c echo.Context) error {
	view, err := s.restaurantOwner(c)
	if err != nil {
		return err
	}
	var req RestaurantProfileRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	profile, err := req.toProfile()
	if err != nil {
		return err
	}
	created, err := view.Register(c.Request().Context(), profile)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// GetOwnedRestaurant handles GET /api/v1/restaurant.
func (s *Server) GetOwnedRestaurant(c echo.Context) error {
	view, err := s.restaurantOwner(c)
	if err != nil {
		return err
	}
	r, err := view.Restaurant(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// UpdateRestaurantProfile handles PUT /api/v1/restaurants/{restaurantId}.
func (s *Server) UpdateRestaurantProfile(c echo.Context) error {
	view, err := s.ownedRestaurant(c)
	if err != nil {
		return err
	}
	var req RestaurantProfileRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	profile, err := req.toProfile()
	if err != nil {
		return err
	}
	if err = view.UpdateProfile(c.Request().Context(), profile); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetRestaurantOpen handles PUT /api/v1/restaurants/{restaurantId}/open.
func (s *Server) SetRestaurantOpen(c echo.Context) error {
	view, err := s.ownedRestaurant(c)
	if err != nil {
		return err
	}
	var req OpenRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	if err = view.SetOpen(c.Request().Context(), *req.IsOpen); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMenuItem handles POST /api/v1/restaurants/{restaurantId}/menu.
func (s *Server) AddMenuItem(c echo.Context) error {
	view, err := s.ownedRestaurant(c)
	if err != nil {
		return err
	}
	var req MenuItemRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	item, err := req.toMenuItem()
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err = view.AddMenuItem(ctx, item); err != nil {
		return err
	}
	r, err := view.Restaurant(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// ReplaceMenu handles PUT /api/v1/restaurants/{restaurantId}/menu.
func (s *Server) ReplaceMenu(c echo.Context) error {
	view, err := s.ownedRestaurant(c)
	if err != nil {
		return err
	}
	var req ReplaceMenuRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	items := make([]restaurant.MenuItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, err := itemReq.toMenuItem()
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	ctx := c.Request().Context()
	if err = view.ReplaceMenu(ctx, items); err != nil {
		return err
	}
	r, err := view.Restaurant(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// SetMenuItemAvailability handles
// PATCH /api/v1/restaurants/{restaurantId}/menu/{itemId}.
func (s *Server) SetMenuItemAvailability(c echo.Context) error {
	view, err := s.ownedRestaurant(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	var req AvailabilityRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	if err = view.SetMenuItemAvailability(c.Request().Context(), itemID, *req.IsAvailable); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveMenuItem handles DELETE /api/v1/restaurants/{restaurantId}/menu/{itemId}.
func (s *Server) RemoveMenuItem(c echo.Context) error {
	view, err := s.ownedRestaurant(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return err
	}
	if err = view.RemoveMenuItem(c.Request().Context(), itemID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRestaurantOrders handles GET /api/v1/restaurant/orders.
func (s *Server) GetRestaurantOrders(c echo.Context) error {
	view, err := s.restaurantOwner(c)
	if err != nil {
		return err
	}
	board, err := view.Orders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

// GetRestaurantStats handles GET /api/v1/restaurant/stats.
func (s *Server) GetRestaurantStats(c echo.Context) error {
	view, err := s.restaurantOwner(c)
	if err != nil {
		return err
	}
	day, err := queryDay(c, s.now())
	if err != nil {
		return err
	}
	stats, err := view.Stats(c.Request().Context(), day)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// restaurantMove adapts a kitchen action such as
// (*views.RestaurantView).Accept to POST /api/v1/orders/{orderId}/<action>.
func (s *Server) restaurantMove(
	move func(*views.RestaurantView, context.Context, kernel.UUID) error,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := s.restaurantOwner(c)
		if err != nil {
			return err
		}
		orderID, err := pathUUID(c, "orderId")
		if err != nil {
			return err
		}
		if err = move(view, c.Request().Context(), orderID); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
