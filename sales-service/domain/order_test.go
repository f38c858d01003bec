package domain

import (
	"testing"

	"github.com/motorline/sales-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCommand() PlaceOrderCommand {
	return PlaceOrderCommand{
		CustomerName:     "Asha Rao",
		Phone:            "+91-9000000001",
		Email:            "asha@example.com",
		Address:          "12 Hill Road",
		ModelName:        "Creta",
		VariantID:        models.GenerateUUID(),
		Variant:          "SX",
		Colour:           "white",
		FuelType:         "petrol",
		TransmissionType: "manual",
		Quantity:         1,
		TotalPrice:       models.NewMoney(1850000_00, "INR"),
		BookingAmount:    models.NewMoney(25000_00, "INR"),
		PaymentMode:      "FINANCE",
	}
}

func TestPlaceOrder(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*PlaceOrderCommand)
		expectedError string
	}{
		{
			name:   "valid order",
			mutate: func(cmd *PlaceOrderCommand) {},
		},
		{
			name:          "zero quantity",
			mutate:        func(cmd *PlaceOrderCommand) { cmd.Quantity = 0 },
			expectedError: "quantity must be positive",
		},
		{
			name:          "negative quantity",
			mutate:        func(cmd *PlaceOrderCommand) { cmd.Quantity = -2 },
			expectedError: "quantity must be positive",
		},
		{
			name:          "missing customer name",
			mutate:        func(cmd *PlaceOrderCommand) { cmd.CustomerName = "" },
			expectedError: "customer name is required",
		},
		{
			name:          "missing variant",
			mutate:        func(cmd *PlaceOrderCommand) { cmd.VariantID = "" },
			expectedError: "variant ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			order, err := PlaceOrder(cmd)
			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, order)
				return
			}

			require.NoError(t, err)
			assert.False(t, order.ID.IsEmpty())
			assert.Equal(t, OrderStatusPending, order.Status)
			assert.Equal(t, 1, order.Version.Value)
		})
	}
}

func TestOrderTransitions(t *testing.T) {
	t.Run("happy path pending to delivered", func(t *testing.T) {
		order, err := PlaceOrder(validCommand())
		require.NoError(t, err)

		require.NoError(t, order.Block())
		assert.Equal(t, OrderStatusBlocked, order.Status)

		require.NoError(t, order.Allot())
		assert.Equal(t, OrderStatusAllotted, order.Status)

		require.NoError(t, order.Dispatch())
		assert.Equal(t, OrderStatusDispatched, order.Status)

		require.NoError(t, order.Deliver())
		assert.Equal(t, OrderStatusDelivered, order.Status)

		// Version bumps once per transition.
		assert.Equal(t, 5, order.Version.Value)
	})

	t.Run("allot requires blocked", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		err := order.Allot()
		assert.True(t, IsInvalidStatus(err))
	})

	t.Run("dispatch requires allotted", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Block())
		err := order.Dispatch()
		assert.True(t, IsInvalidStatus(err))
	})

	t.Run("revert to pending after rejection", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Block())
		require.NoError(t, order.RevertToPending())
		assert.Equal(t, OrderStatusPending, order.Status)
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancel pending order", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCanceled, order.Status)
	})

	t.Run("cancel blocked order", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Block())
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCanceled, order.Status)
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Cancel())
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCanceled, order.Status)
	})

	t.Run("cancel rejected after dispatch", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Block())
		require.NoError(t, order.Allot())
		require.NoError(t, order.Dispatch())

		err := order.Cancel()
		assert.ErrorIs(t, err, ErrCancelAfterDispatch)
		assert.Equal(t, OrderStatusDispatched, order.Status)
	})

	t.Run("cancel rejected after delivery", func(t *testing.T) {
		order, _ := PlaceOrder(validCommand())
		require.NoError(t, order.Block())
		require.NoError(t, order.Allot())
		require.NoError(t, order.Dispatch())
		require.NoError(t, order.Deliver())

		err := order.Cancel()
		assert.ErrorIs(t, err, ErrCancelAfterDispatch)
	})
}

func TestOrderStatusPredicates(t *testing.T) {
	assert.True(t, OrderStatusCanceled.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.False(t, OrderStatusDispatched.IsTerminal())

	assert.True(t, OrderStatusDispatched.AfterDispatch())
	assert.True(t, OrderStatusDelivered.AfterDispatch())
	assert.True(t, OrderStatusCompleted.AfterDispatch())
	assert.False(t, OrderStatusBlocked.AfterDispatch())
	assert.False(t, OrderStatusAllotted.AfterDispatch())
}
