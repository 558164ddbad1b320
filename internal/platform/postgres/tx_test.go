package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestValidUUIDs_DropsMalformed(t *testing.T) {
	id := uuid.NewString()
	require.Equal(t, []string{id}, ValidUUIDs([]string{"X", id, ""}))
	require.Empty(t, ValidUUIDs([]string{"not-a-uuid"}))
}

func TestValidUUIDs_Canonicalises(t *testing.T) {
	id := uuid.NewString()
	got := ValidUUIDs([]string{strings.ToUpper(id), "urn:uuid:" + id, "{" + id + "}"})
	require.Equal(t, []string{id}, got)
}

func TestTransactor_NotConfigured(t *testing.T) {
	var tx *Transactor
	err := tx.WithinTransaction(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestConnect_EmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.Error(t, err)
}

func TestConnectOrFallback_EmptyDSN(t *testing.T) {
	db, cleanup := ConnectOrFallback(context.Background(), nil, "")
	require.Nil(t, db)
	cleanup()
}
