package ordersserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/go-gin-orders-api/internal/domains/products/adapters/http/mapper"
	productsports "github.com/Apurer/go-gin-orders-api/internal/domains/products/ports"
)

// ProductAPI wires HTTP transport with the products bounded context.
type ProductAPI struct {
	service productsports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productsports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /v1/products
// Create a product
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload producthttpmapper.CreateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), producthttpmapper.ToCreateInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producthttpmapper.FromDomainProduct(created))
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProductById(c *gin.Context) {
	id, ok := bindUUIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Put /v1/products/stock
// Overwrite quantities on hand for a batch of products
func (api *ProductAPI) SetProductStock(c *gin.Context) {
	var payload []producthttpmapper.StockEntry
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	updated, err := api.service.SetStock(c.Request.Context(), producthttpmapper.ToAdjustments(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProducts(updated))
}
