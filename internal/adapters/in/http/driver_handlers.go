package http

import (
	"context"
	"net/http"

	"localeats/internal/core/application/views"
	"localeats/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) driver(c echo.Context) (*views.DriverView, error) {
	session, err := sessionFrom(c)
	if err != nil {
		return nil, err
	}
	return s.views.Driver(session)
}

// SetDriverAvailability handles PUT /api/v1/driver/availability.
func (s *Server) SetDriverAvailability(c echo.Context) error {
	view, err := s.driver(c)
	if err != nil {
		return err
	}
	var req OnlineRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	if err = view.SetOnline(c.Request().Context(), *req.Online); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDriverPool handles GET /api/v1/driver/pool.
func (s *Server) GetDriverPool(c echo.Context) error {
	view, err := s.driver(c)
	if err != nil {
		return err
	}
	pool, err := view.AvailablePool(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pool)
}

// GetDriverDeliveries handles GET /api/v1/driver/deliveries.
func (s *Server) GetDriverDeliveries(c echo.Context) error {
	view, err := s.driver(c)
	if err != nil {
		return err
	}
	deliveries, err := view.ActiveDeliveries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deliveries)
}

func (s *Server) driverMove(
	move func(*views.DriverView, context.Context, kernel.UUID) error,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := s.driver(c)
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
