package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customerhttpmapper "github.com/Apurer/go-gin-orders-api/internal/domains/customers/adapters/http/mapper"
	customersports "github.com/Apurer/go-gin-orders-api/internal/domains/customers/ports"
)

// CustomerAPI wires HTTP transport with the customers bounded context.
type CustomerAPI struct {
	service customersports.Service
}

// NewCustomerAPI creates a CustomerAPI backed by the provided service.
func NewCustomerAPI(service customersports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Post /v1/customers
// Register a customer
func (api *CustomerAPI) RegisterCustomer(c *gin.Context) {
	var payload customerhttpmapper.CreateCustomer
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	created, err := api.service.Register(c.Request.Context(), customerhttpmapper.ToRegisterInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customerhttpmapper.FromDomainCustomer(created))
}

// Get /v1/customers/:customerId
// Find customer by ID
func (api *CustomerAPI) GetCustomerById(c *gin.Context) {
	id, ok := bindUUIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customerhttpmapper.FromDomainCustomer(customer))
}
