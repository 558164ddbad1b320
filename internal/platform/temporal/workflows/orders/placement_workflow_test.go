package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/testsuite"

	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/application"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-orders-api/internal/domains/orders/ports"
	productdomain "github.com/Apurer/go-gin-orders-api/internal/domains/products/domain"
	orderactivities "github.com/Apurer/go-gin-orders-api/internal/platform/temporal/activities/orders"
)

type stubService struct {
	order *domain.Order
	err   error
	calls int
	keys  []string
}

func (s *stubService) CreateOrder(_ context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	s.calls++
	s.keys = append(s.keys, input.IdempotencyKey)
	return s.order, s.err
}

func (s *stubService) GetOrder(context.Context, string) (*domain.Order, error) {
	return s.order, s.err
}

func newEnv(t *testing.T, svc ports.Service) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PlacementWorkflow)
	acts := orderactivities.NewActivities(svc)
	env.RegisterActivityWithOptions(acts.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return env
}

func TestPlacementWorkflow_ReturnsOrder(t *testing.T) {
	productID := "p-1"
	svc := &stubService{order: &domain.Order{
		ID:    "o-1",
		Lines: []domain.Line{{ID: "l-1", ProductID: &productID, Price: decimal.RequireFromString("5.00"), Quantity: 3}},
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(PlacementWorkflow, PlacementWorkflowInput{Command: ports.CreateOrderInput{
		CustomerID: "c-1",
		Items:      []domain.Item{{ProductID: productID, Quantity: 3}},
	}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, "15.00", order.Total().StringFixed(2))
}

func TestPlacementWorkflow_RejectionIsNotRetried(t *testing.T) {
	svc := &stubService{err: &application.InsufficientStockError{
		Product:   &productdomain.Product{ID: "p-1", Quantity: 7},
		Requested: 8,
	}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(PlacementWorkflow, PlacementWorkflowInput{Command: ports.CreateOrderInput{CustomerID: "c-1"}})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	assert.Equal(t, 1, svc.calls)

	var stock *application.InsufficientStockError
	require.ErrorAs(t, orderactivities.DecodeError(err), &stock)
	assert.Equal(t, "p-1", stock.Product.ID)
	assert.Equal(t, 8, stock.Requested)
}

func TestPlacementWorkflow_KeysCommandByWorkflowID(t *testing.T) {
	svc := &stubService{order: &domain.Order{ID: "o-1"}}
	env := newEnv(t, svc)
	env.SetStartWorkflowOptions(client.StartWorkflowOptions{ID: "order-placement-wf-1"})

	env.ExecuteWorkflow(PlacementWorkflow, PlacementWorkflowInput{Command: ports.CreateOrderInput{CustomerID: "c-1"}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, []string{"order-placement-wf-1"}, svc.keys)
}

func TestPlacementWorkflow_KeepsCallerKey(t *testing.T) {
	svc := &stubService{order: &domain.Order{ID: "o-1"}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(PlacementWorkflow, PlacementWorkflowInput{Command: ports.CreateOrderInput{CustomerID: "c-1", IdempotencyKey: "k-1"}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, []string{"k-1"}, svc.keys)
}
