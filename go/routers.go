package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every bounded context.
type ApiHandleFunctions struct {
	CustomerAPI CustomerAPI
	ProductAPI  ProductAPI
	OrderAPI    OrderAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine. Middleware must
// be attached to router before calling it.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},
		{"RegisterCustomer", http.MethodPost, "/v1/customers", handleFunctions.CustomerAPI.RegisterCustomer},
		{"GetCustomerById", http.MethodGet, "/v1/customers/:customerId", handleFunctions.CustomerAPI.GetCustomerById},
		{"CreateProduct", http.MethodPost, "/v1/products", handleFunctions.ProductAPI.CreateProduct},
		{"SetProductStock", http.MethodPut, "/v1/products/stock", handleFunctions.ProductAPI.SetProductStock},
		{"GetProductById", http.MethodGet, "/v1/products/:productId", handleFunctions.ProductAPI.GetProductById},
		{"CreateOrder", http.MethodPost, "/v1/orders", handleFunctions.OrderAPI.CreateOrder},
		{"GetOrderById", http.MethodGet, "/v1/orders/:orderId", handleFunctions.OrderAPI.GetOrderById},
	}
}
