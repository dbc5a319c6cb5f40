package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	t.Run("pending moves to ordered", func(t *testing.T) {
		next, err := NextStatus(POPending)
		require.NoError(t, err)
		assert.Equal(t, POOrdered, next)
	})

	t.Run("ordered moves to received", func(t *testing.T) {
		next, err := NextStatus(POOrdered)
		require.NoError(t, err)
		assert.Equal(t, POReceived, next)
	})

	t.Run("received is terminal", func(t *testing.T) {
		_, err := NextStatus(POReceived)
		assert.ErrorIs(t, err, ErrPurchaseOrderReceived)
	})

	t.Run("unknown status fails", func(t *testing.T) {
		_, err := NextStatus("SHIPPED")
		assert.Error(t, err)
	})
}

func TestPurchaseOrderAdvance(t *testing.T) {
	po := PurchaseOrder{Status: POPending}

	require.NoError(t, po.Advance())
	assert.Equal(t, POOrdered, po.Status)

	require.NoError(t, po.Advance())
	assert.Equal(t, POReceived, po.Status)

	err := po.Advance()
	assert.ErrorIs(t, err, ErrPurchaseOrderReceived)
	assert.Equal(t, POReceived, po.Status, "a failed advance leaves the order unchanged")
}
