package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeItems_MergesDuplicates(t *testing.T) {
	items, err := NormalizeItems([]Item{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
		{ProductID: "p1", Quantity: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []Item{{ProductID: "p1", Quantity: 5}, {ProductID: "p2", Quantity: 1}}, items)
}

func TestNormalizeItems_Rejects(t *testing.T) {
	_, err := NormalizeItems(nil)
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = NormalizeItems([]Item{{ProductID: "p1", Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NormalizeItems([]Item{{ProductID: " ", Quantity: 1}})
	assert.ErrorIs(t, err, ErrEmptyProductID)

	_, err = NormalizeItems([]Item{{ProductID: "p1", Quantity: MaxQuantity + 1}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNormalizeItems_MergedTotalIsBounded(t *testing.T) {
	items, err := NormalizeItems([]Item{
		{ProductID: "p1", Quantity: MaxQuantity - 1},
		{ProductID: "p1", Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, items[0].Quantity)

	_, err = NormalizeItems([]Item{
		{ProductID: "p1", Quantity: MaxQuantity/2 + 1},
		{ProductID: "p1", Quantity: MaxQuantity/2 + 1},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNormalizeItems_CanonicalisesUUIDs(t *testing.T) {
	const id = "0b5e2a4c-8d6f-4f51-9a3e-1c2d3e4f5a6b"
	items, err := NormalizeItems([]Item{
		{ProductID: "0B5E2A4C-8D6F-4F51-9A3E-1C2D3E4F5A6B", Quantity: 1},
		{ProductID: "urn:uuid:" + id, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []Item{{ProductID: id, Quantity: 3}}, items)
}

func TestOrderTotal(t *testing.T) {
	p1, p2 := "p1", "p2"
	order, err := NewOrder("c1", []Line{
		{ProductID: &p1, Price: decimal.RequireFromString("5.00"), Quantity: 3},
		{ProductID: &p2, Price: decimal.RequireFromString("0.99"), Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "16.98", order.Total().StringFixed(2))
}

func TestNewOrder_Invalid(t *testing.T) {
	_, err := NewOrder("", []Line{{Quantity: 1}})
	assert.ErrorIs(t, err, ErrEmptyCustomerID)

	_, err = NewOrder("c1", nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestClone_IsDeep(t *testing.T) {
	pid := "p1"
	order, err := NewOrder("c1", []Line{{ProductID: &pid, Price: decimal.NewFromInt(1), Quantity: 1}})
	require.NoError(t, err)

	clone := order.Clone()
	*clone.CustomerID = "other"
	*clone.Lines[0].ProductID = "other"
	assert.Equal(t, "c1", *order.CustomerID)
	assert.Equal(t, "p1", *order.Lines[0].ProductID)
}
