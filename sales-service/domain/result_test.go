package domain

import (
	"testing"

	"github.com/motorline/sales-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func TestFulfillmentResultOverallStatus(t *testing.T) {
	orderID := models.GenerateUUID()

	tests := []struct {
		name     string
		result   *FulfillmentResult
		expected OrderStatus
	}{
		{
			name:     "order only reflects raw status",
			result:   &FulfillmentResult{Order: &Order{ID: orderID, Status: OrderStatusBlocked}},
			expected: OrderStatusBlocked,
		},
		{
			name: "approved finance wins over blocked order",
			result: &FulfillmentResult{
				Order:   &Order{ID: orderID, Status: OrderStatusBlocked},
				Finance: &FinanceDecision{OrderID: orderID, Status: FinanceStatusApproved},
			},
			expected: OrderStatusAllotted,
		},
		{
			name: "rejected finance does not override order",
			result: &FulfillmentResult{
				Order:   &Order{ID: orderID, Status: OrderStatusPending},
				Finance: &FinanceDecision{OrderID: orderID, Status: FinanceStatusRejected},
			},
			expected: OrderStatusPending,
		},
		{
			name: "dispatch wins over finance",
			result: &FulfillmentResult{
				Order:    &Order{ID: orderID, Status: OrderStatusAllotted},
				Finance:  &FinanceDecision{OrderID: orderID, Status: FinanceStatusApproved},
				Dispatch: &DispatchRecord{OrderID: orderID, Status: DispatchStatusDispatched},
			},
			expected: OrderStatusDispatched,
		},
		{
			name: "delivery wins over everything",
			result: &FulfillmentResult{
				Order:    &Order{ID: orderID, Status: OrderStatusDispatched},
				Finance:  &FinanceDecision{OrderID: orderID, Status: FinanceStatusApproved},
				Dispatch: &DispatchRecord{OrderID: orderID, Status: DispatchStatusDispatched},
				Delivery: &DeliveryRecord{OrderID: orderID, Status: DeliveryStatusDelivered},
			},
			expected: OrderStatusDelivered,
		},
		{
			name: "stale order row cannot regress a delivered aggregate",
			result: &FulfillmentResult{
				Order:    &Order{ID: orderID, Status: OrderStatusBlocked},
				Delivery: &DeliveryRecord{OrderID: orderID, Status: DeliveryStatusDelivered},
			},
			expected: OrderStatusDelivered,
		},
		{
			name: "preparing dispatch does not claim dispatched",
			result: &FulfillmentResult{
				Order:    &Order{ID: orderID, Status: OrderStatusAllotted},
				Dispatch: &DispatchRecord{OrderID: orderID, Status: DispatchStatusPreparing},
			},
			expected: OrderStatusAllotted,
		},
		{
			name:     "empty aggregate defaults to pending",
			result:   &FulfillmentResult{},
			expected: OrderStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.OverallStatus())
		})
	}
}

func TestSagaStageIsFinal(t *testing.T) {
	assert.True(t, StageCompleted.IsFinal())
	assert.True(t, StageCanceled.IsFinal())
	assert.True(t, StageStalled.IsFinal())
	assert.False(t, StageAllocation.IsFinal())
	assert.False(t, StageAwaitingFinance.IsFinal())
	assert.False(t, StageAwaitingDelivery.IsFinal())
}
