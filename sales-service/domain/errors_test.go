package domain

import (
	"testing"

	"github.com/motorline/sales-system/shared/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestTransient(t *testing.T) {
	base := errors.New("connection refused")

	assert.True(t, IsTransient(Transient(base)))
	assert.False(t, IsTransient(base))
	assert.Nil(t, Transient(nil))

	// Classification survives further wrapping.
	wrapped := errors.Wrap(Transient(base), "failed to save order")
	assert.True(t, IsTransient(wrapped))

	// Message of the underlying error is preserved.
	assert.Contains(t, Transient(base).Error(), "connection refused")
}

func TestStageError(t *testing.T) {
	orderID := models.GenerateUUID()

	err := NewStageError(orderID, StageAwaitingDelivery, true, ErrDeliveryNotConfirmed)
	assert.Contains(t, err.Error(), orderID.String())
	assert.Contains(t, err.Error(), string(StageAwaitingDelivery))
	assert.ErrorIs(t, err, ErrDeliveryNotConfirmed)
	assert.True(t, IsStalled(err))

	assert.Nil(t, NewStageError(orderID, StageAllocation, false, nil))
}

func TestIsInvalidStatus(t *testing.T) {
	err := NewInvalidStatusError(models.GenerateUUID(), OrderStatusPending, OrderStatusAllotted)
	assert.True(t, IsInvalidStatus(err))
	assert.True(t, IsInvalidStatus(errors.Wrap(err, "dispatch failed")))
	assert.False(t, IsInvalidStatus(ErrOrderNotFound))
}
