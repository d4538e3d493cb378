// Package order - order and checkout API controller.
package order

import (
	"context"
	"net/http"
	"strconv"

	"mealshop/api/response"
	checkoutapp "mealshop/application/checkout"
	orderapp "mealshop/application/order"
	"mealshop/pkg/errors"

	"github.com/gin-gonic/gin"
)

const defaultPageLimit = 20

// Controller handles order lifecycle and checkout requests.
type Controller struct {
	orderService    *orderapp.Service
	checkoutService *checkoutapp.Service
}

func NewController(orderService *orderapp.Service, checkoutService *checkoutapp.Service) *Controller {
	return &Controller{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers order and checkout routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkout", c.Checkout)

	orderGroup := router.Group("/orders")
	{
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.GET("/customer/:customerId", c.GetCustomerOrders)
		orderGroup.GET("/customer/:customerId/last", c.GetLastOrder)
		orderGroup.POST("/:id/confirm", c.ConfirmOrder)
		orderGroup.POST("/:id/pay", c.PayOrder)
		orderGroup.POST("/:id/complete", c.CompleteOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
	}
}

// CheckoutRequest is the body of POST /api/v1/checkout.
type CheckoutRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
	Street     string `json:"street" binding:"required"`
	Building   int    `json:"building" binding:"required"`
}

// Checkout places an order from the customer's cart.
// POST /api/v1/checkout
func (c *Controller) Checkout(ctx *gin.Context) {
	var req CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.checkoutService.Checkout(ctx.Request.Context(), checkoutapp.CheckoutCommand{
		CustomerID: req.CustomerID,
		Street:     req.Street,
		Building:   req.Building,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order placed successfully")
}

// GetOrder returns a single order by id.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.GetOrder(ctx.Request.Context(), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// GetCustomerOrders returns every order of one customer.
// GET /api/v1/orders/customer/:customerId
func (c *Controller) GetCustomerOrders(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.GetCustomerOrders(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "customer orders retrieved successfully")
}

// GetLastOrder returns the customer's most recently placed order.
// GET /api/v1/orders/customer/:customerId/last
func (c *Controller) GetLastOrder(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.GetLastOrder(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "last order retrieved successfully")
}

// ListOrders pages through all orders by ascending id.
// GET /api/v1/orders?start_id=0&limit=20
func (c *Controller) ListOrders(ctx *gin.Context) {
	startID, err := strconv.ParseInt(ctx.DefaultQuery("start_id", "0"), 10, 64)
	if err != nil || startID < 0 {
		response.HandleError(ctx, errors.BadRequest("invalid start_id"), "invalid start_id", http.StatusBadRequest)
		return
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 {
		response.HandleError(ctx, errors.BadRequest("invalid limit"), "invalid limit", http.StatusBadRequest)
		return
	}

	orders, err := c.orderService.ListOrders(ctx.Request.Context(), startID, limit)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	pagination := response.Pagination{
		Limit:   limit,
		HasMore: len(orders) == limit,
	}
	if len(orders) > 0 {
		pagination.NextStartID = orders[len(orders)-1].ID
	}

	response.HandlePaginated(ctx, orders, pagination, "orders retrieved successfully")
}

// ConfirmOrder moves an order from NEW to CONFIRMED.
// POST /api/v1/orders/:id/confirm
func (c *Controller) ConfirmOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.ConfirmOrder, "order confirmed successfully")
}

// PayOrder moves an order from CONFIRMED to PAID.
// POST /api/v1/orders/:id/pay
func (c *Controller) PayOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.PayOrder, "order paid successfully")
}

// CompleteOrder moves an order from PAID to COMPLETED.
// POST /api/v1/orders/:id/complete
func (c *Controller) CompleteOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.CompleteOrder, "order completed successfully")
}

// CancelOrder cancels an order that is not paid yet.
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.CancelOrder, "order cancelled successfully")
}

func (c *Controller) transition(ctx *gin.Context, fn func(context.Context, string) error, message string) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	if err := fn(ctx.Request.Context(), orderID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, message)
}
