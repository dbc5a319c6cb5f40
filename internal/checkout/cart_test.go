package checkout

import (
	"testing"

	"go-uniform-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(name string, price int64, stock int) model.Uniform {
	u := model.Uniform{
		Code:  "U-" + name,
		Name:  name,
		Price: price,
		Stock: stock,
	}
	u.ID = uuid.New()
	return u
}

func TestCartAddLine(t *testing.T) {
	t.Run("adds a new line with quantity one", func(t *testing.T) {
		c := NewCart(Options{})
		item := uniform("Shirt S", 65000, 5)

		require.NoError(t, c.AddLine(item))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Quantity)
		assert.Equal(t, item.ID, lines[0].Item.ID)
	})

	t.Run("rejects out of stock items", func(t *testing.T) {
		c := NewCart(Options{})
		item := uniform("Shirt S", 65000, 0)

		err := c.AddLine(item)
		assert.ErrorIs(t, err, ErrOutOfStock)
		assert.Empty(t, c.Lines())
	})

	t.Run("repeated adds increment quantity up to the stock ceiling", func(t *testing.T) {
		c := NewCart(Options{})
		item := uniform("Shirt S", 65000, 3)

		for i := 0; i < 5; i++ {
			require.NoError(t, c.AddLine(item))
		}

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity, "quantity is silently capped at stock")
	})

	t.Run("refreshes the item snapshot on repeat add", func(t *testing.T) {
		c := NewCart(Options{})
		item := uniform("Shirt S", 65000, 5)
		require.NoError(t, c.AddLine(item))

		item.Price = 70000
		require.NoError(t, c.AddLine(item))

		lines := c.Lines()
		assert.Equal(t, int64(70000), lines[0].Item.Price)
		assert.Equal(t, int64(140000), c.Subtotal())
	})
}

func TestCartSetQuantity(t *testing.T) {
	c := NewCart(Options{})
	item := uniform("Trousers M", 90000, 4)
	require.NoError(t, c.AddLine(item))

	t.Run("clamps below one up to one", func(t *testing.T) {
		require.NoError(t, c.SetQuantity(0, -3))
		assert.Equal(t, 1, c.Lines()[0].Quantity)
	})

	t.Run("clamps above stock down to stock", func(t *testing.T) {
		require.NoError(t, c.SetQuantity(0, 99))
		assert.Equal(t, 4, c.Lines()[0].Quantity)
	})

	t.Run("accepts values inside the range", func(t *testing.T) {
		require.NoError(t, c.SetQuantity(0, 2))
		assert.Equal(t, 2, c.Lines()[0].Quantity)
	})

	t.Run("unknown line index fails", func(t *testing.T) {
		assert.ErrorIs(t, c.SetQuantity(7, 1), ErrLineNotFound)
	})
}

func TestCartSubtotal(t *testing.T) {
	c := NewCart(Options{})
	shirt := uniform("Shirt S", 65000, 10)
	trousers := uniform("Trousers M", 90000, 10)

	require.NoError(t, c.AddLine(shirt))
	require.NoError(t, c.AddLine(shirt))
	require.NoError(t, c.AddLine(trousers))

	assert.Equal(t, int64(2*65000+90000), c.Subtotal())

	require.NoError(t, c.RemoveLine(1))
	assert.Equal(t, int64(2*65000), c.Subtotal(), "subtotal is recomputed after removal")
}

func TestCartPhaseMachine(t *testing.T) {
	t.Run("begin on an empty cart fails", func(t *testing.T) {
		c := NewCart(Options{})
		assert.ErrorIs(t, c.Begin(), ErrEmptyCart)
		assert.Equal(t, PhaseIdle, c.Phase())
	})

	t.Run("direct-to-payment flow skips shipping", func(t *testing.T) {
		c := NewCart(Options{})
		require.NoError(t, c.AddLine(uniform("Shirt S", 65000, 5)))

		require.NoError(t, c.Begin())
		assert.Equal(t, PhasePayment, c.Phase())

		// No shipping step in this flow, so stepping back is invalid.
		assert.ErrorIs(t, c.BackToShipping(), ErrInvalidPhase)
	})

	t.Run("shipping-first flow walks SHIPPING then PAYMENT", func(t *testing.T) {
		c := NewCart(Options{RequireShippingBeforePayment: true})
		require.NoError(t, c.AddLine(uniform("Shirt S", 65000, 5)))

		require.NoError(t, c.Begin())
		assert.Equal(t, PhaseShipping, c.Phase())

		info := model.ShippingInfo{CustomerName: "Budi", PhoneNumber: "0812", Address: "Jl. Merdeka 1"}
		require.NoError(t, c.SubmitShipping(info))
		assert.Equal(t, PhasePayment, c.Phase())
		assert.Equal(t, info, c.Shipping())

		require.NoError(t, c.BackToShipping())
		assert.Equal(t, PhaseShipping, c.Phase())
	})

	t.Run("shipping-first flow rejects empty shipping info", func(t *testing.T) {
		c := NewCart(Options{RequireShippingBeforePayment: true})
		require.NoError(t, c.AddLine(uniform("Shirt S", 65000, 5)))
		require.NoError(t, c.Begin())

		assert.Error(t, c.SubmitShipping(model.ShippingInfo{}))
		assert.Equal(t, PhaseShipping, c.Phase())
	})

	t.Run("double begin fails", func(t *testing.T) {
		c := NewCart(Options{})
		require.NoError(t, c.AddLine(uniform("Shirt S", 65000, 5)))
		require.NoError(t, c.Begin())
		assert.ErrorIs(t, c.Begin(), ErrInvalidPhase)
	})

	t.Run("cancel returns to idle and keeps the lines", func(t *testing.T) {
		c := NewCart(Options{})
		require.NoError(t, c.AddLine(uniform("Shirt S", 65000, 5)))
		require.NoError(t, c.Begin())

		require.NoError(t, c.Cancel())
		assert.Equal(t, PhaseIdle, c.Phase())
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("success is terminal", func(t *testing.T) {
		c := NewCart(Options{})
		item := uniform("Shirt S", 65000, 5)
		require.NoError(t, c.AddLine(item))
		require.NoError(t, c.Begin())

		c.Complete()
		assert.Equal(t, PhaseSuccess, c.Phase())
		assert.Empty(t, c.Lines())

		assert.ErrorIs(t, c.AddLine(item), ErrCheckoutFinished)
		assert.ErrorIs(t, c.SetQuantity(0, 1), ErrCheckoutFinished)
		assert.ErrorIs(t, c.Cancel(), ErrCheckoutFinished)
	})
}

func TestCartBuildItems(t *testing.T) {
	c := NewCart(Options{})
	shirt := uniform("Shirt S", 65000, 5)
	require.NoError(t, c.AddLine(shirt))
	require.NoError(t, c.SetQuantity(0, 3))

	txID := uuid.New()
	items, total := c.BuildItems(txID)

	require.Len(t, items, 1)
	assert.Equal(t, txID, items[0].TransactionID)
	assert.Equal(t, shirt.ID, items[0].UniformID)
	assert.Equal(t, "Shirt S", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(65000), items[0].Price)
	assert.Equal(t, int64(195000), total)
}
