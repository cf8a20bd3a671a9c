package http

import (
	"net/http"

	"localeats/internal/core/application/views"
	"localeats/internal/core/domain/model/kernel"
	"localeats/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

func (s *Server) customer(c echo.Context) (*views.CustomerView, error) {
	session, err := sessionFrom(c)
	if err != nil {
		return nil, err
	}
	return s.views.Customer(session)
}

// ListRestaurants handles GET /api/v1/restaurants.
func (s *Server) ListRestaurants(c echo.Context) error {
	view, err := s.customer(c)
	if err != nil {
		return err
	}
	search, err := queryString(c, "search")
	if err != nil {
		return err
	}
	list, err := view.ListRestaurants(c.Request().Context(), search)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetRestaurant handles GET /api/v1/restaurants/{restaurantId}.
func (s *Server) GetRestaurant(c echo.Context) error {
	view, err := s.customer(c)
	if err != nil {
		return err
	}
	restaurantID, err := pathUUID(c, "restaurantId")
	if err != nil {
		return err
	}
	r, err := view.Restaurant(c.Request().Context(), restaurantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	view, err := s.customer(c)
	if err != nil {
		return err
	}
	var req PlaceOrderRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return err
	}
	payment, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return err
	}
	cart, err := views.NewCart(restaurantID)
	if err != nil {
		return err
	}
	for _, line := range req.Items {
		menuItemID, err := kernel.UUIDFromString(line.MenuItemID)
		if err != nil {
			return err
		}
		if err = cart.Add(views.CartLine{MenuItemID: menuItemID, Quantity: line.Quantity}); err != nil {
			return err
		}
	}

	details, err := view.PlaceOrder(c.Request().Context(), cart, payment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, details)
}

// GetCustomerOrders handles GET /api/v1/customer/orders.
func (s *Server) GetCustomerOrders(c echo.Context) error {
	view, err := s.customer(c)
	if err != nil {
		return err
	}
	orders, err := view.Orders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Reorder handles POST /api/v1/orders/{orderId}/reorder.
func (s *Server) Reorder(c echo.Context) error {
	view, err := s.customer(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	details, err := view.Reorder(c.Request().Context(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, details)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	view, err := s.customer(c)
	if err != nil {
		return err
	}
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}
	if err = view.CancelOrder(c.Request().Context(), orderID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
