//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "orders-api"
	ConsumerName = "checkout-portal"

	StateCatalogSeeded = "customer and product in stock exist"
	StateOrderExists   = "order 5b3f0a52 exists"
	StateOrderMissing  = "no order with id 9d7c"
)

const (
	CustomerID      = "0f0c3f4e-7b1a-4d5e-9a55-3c1f3bb1c001"
	ProductID       = "6a2d3c1b-1f4e-4b7a-8c9d-2e5f6a7b8c02"
	ExistingOrderID = "5b3f0a52-8e1d-4c3b-a2f1-0d9e8c7b6a03"
	MissingOrderID  = "9d7c6b5a-4e3f-4a1b-8c2d-1e0f9a8b7c04"

	CustomerName  = "Pact Customer"
	CustomerEmail = "pact.customer@example.com"
	ProductName   = "Pact Notebook"
	ProductPrice  = "4.25"
	ProductStock  = 10
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the checkout portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderRequest is the placement body shared by both sides of the contract.
func ExampleOrderRequest(quantity int) map[string]any {
	return map[string]any{
		"customer_id": CustomerID,
		"products": []map[string]any{
			{"id": ProductID, "quantity": quantity},
		},
	}
}

func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
