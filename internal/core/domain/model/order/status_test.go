package order_test

import (
	"encoding/json"
	"testing"

	"localeats/internal/core/domain/model/order"
	"localeats/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	expected := []string{"pending", "confirmed", "preparing", "ready", "picked_up", "out_for_delivery", "delivered", "cancelled"}
	for i, status := range order.AllStatuses() {
		assert.Equal(t, expected[i], status.String())

		parsed, err := order.ParseStatus(expected[i])
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatus_Validate(t *testing.T) {
	assert.ErrorIs(t, order.UnknownStatus.Validate(), errs.ErrValueIsRequired)
	assert.IsType(t, &errs.ValueIsInvalidError{}, order.Status(42).Validate())
	for _, status := range order.AllStatuses() {
		assert.NoError(t, status.Validate())
	}

	_, err := order.ParseStatus("lost")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_TransitionTo(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:        {order.Confirmed, order.Cancelled},
		order.Confirmed:      {order.Preparing, order.Cancelled},
		order.Preparing:      {order.Ready, order.Cancelled},
		order.Ready:          {order.PickedUp},
		order.PickedUp:       {order.OutForDelivery},
		order.OutForDelivery: {order.Delivered},
	}

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			expectAllowed := false
			for _, candidate := range allowed[from] {
				if candidate == to {
					expectAllowed = true
				}
			}

			next, err := from.TransitionTo(to)
			if expectAllowed {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, next)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidTransition, "%s -> %s", from, to)
				assert.Equal(t, order.UnknownStatus, next)
			}
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	for _, status := range []order.Status{order.Pending, order.Confirmed, order.Preparing, order.Ready, order.PickedUp, order.OutForDelivery} {
		assert.False(t, status.IsTerminal(), status.String())
	}
}

func TestStatus_ValidateCanHaveDriver(t *testing.T) {
	for _, status := range order.AllStatuses() {
		if status.RequiresDriver() {
			assert.NoError(t, status.ValidateCanHaveDriver(true), status.String())
			assert.Error(t, status.ValidateCanHaveDriver(false), status.String())
		} else {
			assert.NoError(t, status.ValidateCanHaveDriver(false), status.String())
			assert.Error(t, status.ValidateCanHaveDriver(true), status.String())
		}
	}
}

func TestPaymentMethod(t *testing.T) {
	cash, err := order.ParsePaymentMethod("cash")
	require.NoError(t, err)
	assert.Equal(t, order.Cash, cash)

	transfer, err := order.ParsePaymentMethod("bank_transfer")
	require.NoError(t, err)
	assert.Equal(t, order.BankTransfer, transfer)

	_, err = order.ParsePaymentMethod("card")
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.ErrorIs(t, order.UnknownPaymentMethod.Validate(), errs.ErrValueIsRequired)
}

func TestStatus_JSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Status order.Status `json:"status"`
	}{order.OutForDelivery})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"out_for_delivery"}`, string(payload))

	var decoded struct {
		Status order.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"picked_up"}`), &decoded))
	assert.Equal(t, order.PickedUp, decoded.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"lost"}`), &decoded))
	_, err = json.Marshal(order.UnknownStatus)
	assert.Error(t, err)
}
