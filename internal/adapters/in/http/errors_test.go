package http

import (
	"errors"
	"net/http"
	"testing"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/user"
	"localeats/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), http.StatusBadRequest},
		{"unauthorized", errs.NewUnauthorizedError("invalid token"), http.StatusUnauthorized},
		{"forbidden", errs.NewForbiddenError("open driver view", "customer"), http.StatusForbidden},
		{"invalid transition", errs.NewInvalidTransitionError(order.Pending, order.Cancelled, user.Customer), http.StatusUnprocessableEntity},
		{"not found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound},
		{"conflict", errs.NewConflictError("order", "42", "already claimed"), http.StatusConflict},
		{"persistence", errs.NewPersistenceError("get order", errors.New("connection refused")), http.StatusServiceUnavailable},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), http.StatusMethodNotAllowed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, message := statusFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.NotEmpty(t, message)
		})
	}
}

func TestStatusFor_HidesInfrastructureDetails(t *testing.T) {
	_, message := statusFor(errs.NewPersistenceError("get order", errors.New("dial tcp 10.0.0.7:5432")))
	assert.NotContains(t, message, "10.0.0.7")

	_, message = statusFor(errors.New("pq: password authentication failed"))
	assert.NotContains(t, message, "password")
}
