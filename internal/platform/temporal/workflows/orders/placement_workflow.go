package orders

import (
	"strings"

	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-orders-api/internal/platform/temporal/sequences"
)

const (
	// PlacementWorkflowName is the public identifier for registering the workflow.
	PlacementWorkflowName = "orders.workflows.Placement"
	// PlacementTaskQueue is the queue consumed by the worker processing order workflows.
	PlacementTaskQueue = "ORDER_PLACEMENT"
)

// PlacementWorkflowInput captures the placement request plus the caller's trace id.
type PlacementWorkflowInput struct {
	Command ports.CreateOrderInput
	TraceID string
}

// PlacementWorkflow places an order durably. A command without an idempotency
// key is keyed by the workflow id, so activity retries replay the first commit.
func PlacementWorkflow(ctx workflow.Context, input PlacementWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	if strings.TrimSpace(input.Command.IdempotencyKey) == "" {
		input.Command.IdempotencyKey = workflow.GetInfo(ctx).WorkflowExecution.ID
	}
	logger.Info("PlacementWorkflow started", withTraceID(input.TraceID, "customerId", input.Command.CustomerID)...)
	order, err := sequences.RunOrderPlacementSequence(ctx, input.Command)
	if err != nil {
		logger.Warn("PlacementWorkflow failed", withTraceID(input.TraceID, "customerId", input.Command.CustomerID, "error", err)...)
		return nil, err
	}
	logger.Info("PlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
