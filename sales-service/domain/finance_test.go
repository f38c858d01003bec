package domain

import (
	"testing"

	"github.com/motorline/sales-system/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceDecision(t *testing.T) {
	t.Run("new decision is pending", func(t *testing.T) {
		decision := NewFinanceDecision(models.GenerateUUID(), "Asha Rao")
		assert.Equal(t, FinanceStatusPending, decision.Status)
		assert.Empty(t, decision.DecidedBy)
	})

	t.Run("approve records the actor", func(t *testing.T) {
		decision := NewFinanceDecision(models.GenerateUUID(), "Asha Rao")
		require.NoError(t, decision.Approve("underwriter-7"))
		assert.Equal(t, FinanceStatusApproved, decision.Status)
		assert.Equal(t, "underwriter-7", decision.DecidedBy)
	})

	t.Run("replayed approval is a no-op", func(t *testing.T) {
		decision := NewFinanceDecision(models.GenerateUUID(), "Asha Rao")
		require.NoError(t, decision.Approve("underwriter-7"))
		require.NoError(t, decision.Approve("underwriter-9"))
		// First decision wins.
		assert.Equal(t, "underwriter-7", decision.DecidedBy)
	})

	t.Run("replayed rejection is a no-op", func(t *testing.T) {
		decision := NewFinanceDecision(models.GenerateUUID(), "Asha Rao")
		require.NoError(t, decision.Reject(SystemTimeoutActor))
		require.NoError(t, decision.Reject("underwriter-7"))
		assert.Equal(t, SystemTimeoutActor, decision.DecidedBy)
	})

	t.Run("contradicting a settled decision fails", func(t *testing.T) {
		approved := NewFinanceDecision(models.GenerateUUID(), "Asha Rao")
		require.NoError(t, approved.Approve("underwriter-7"))
		assert.ErrorIs(t, approved.Reject("underwriter-9"), ErrFinanceAlreadyDecided)

		rejected := NewFinanceDecision(models.GenerateUUID(), "Asha Rao")
		require.NoError(t, rejected.Reject("underwriter-7"))
		assert.ErrorIs(t, rejected.Approve("underwriter-9"), ErrFinanceAlreadyDecided)
	})
}
