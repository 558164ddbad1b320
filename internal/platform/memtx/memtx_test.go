package memtx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithinTransaction_RollsBackInReverseOrder(t *testing.T) {
	tx := NewTransactor()
	var calls []int

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		require.True(t, InTransaction(ctx))
		OnRollback(ctx, func() { calls = append(calls, 1) })
		OnRollback(ctx, func() { calls = append(calls, 2) })
		return errors.New("boom")
	})

	require.EqualError(t, err, "boom")
	require.Equal(t, []int{2, 1}, calls)
}

func TestWithinTransaction_CommitDropsUndo(t *testing.T) {
	tx := NewTransactor()
	called := false

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		OnRollback(ctx, func() { called = true })
		return nil
	})

	require.NoError(t, err)
	require.False(t, called)
}

func TestWithinTransaction_NestedJoinsOuter(t *testing.T) {
	tx := NewTransactor()
	var calls int

	err := tx.WithinTransaction(context.Background(), func(ctx context.Context) error {
		inner := tx.WithinTransaction(ctx, func(ctx context.Context) error {
			OnRollback(ctx, func() { calls++ })
			return nil
		})
		require.NoError(t, inner)
		return errors.New("outer failed")
	})

	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestOnRollback_OutsideTransactionIsNoop(t *testing.T) {
	require.False(t, InTransaction(context.Background()))
	OnRollback(context.Background(), func() { t.Fatal("must not run") })
}
