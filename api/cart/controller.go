// Package cart - cart API controller.
package cart

import (
	"net/http"
	"strconv"

	"mealshop/api/response"
	cartapp "mealshop/application/cart"
	"mealshop/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles cart requests.
type Controller struct {
	cartService *cartapp.Service
}

func NewController(cartService *cartapp.Service) *Controller {
	return &Controller{cartService: cartService}
}

// RegisterRoutes registers cart routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("/:customerId", c.GetCart)
		cartGroup.POST("/:customerId/meals", c.AddMeal)
		cartGroup.DELETE("/:customerId/meals/:mealId", c.RemoveMeal)
	}
}

// AddMealRequest is the body of POST /api/v1/cart/:customerId/meals.
type AddMealRequest struct {
	MealID int64 `json:"meal_id" binding:"required"`
}

// AddMeal puts one unit of a meal into the customer's cart.
// POST /api/v1/cart/:customerId/meals
func (c *Controller) AddMeal(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	var req AddMealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	mealID := strconv.FormatInt(req.MealID, 10)
	if err := c.cartService.AddMealToCart(ctx.Request.Context(), customerID, mealID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "meal added to cart")
}

// RemoveMeal takes one unit of a meal out of the cart.
// DELETE /api/v1/cart/:customerId/meals/:mealId
func (c *Controller) RemoveMeal(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	mealID := ctx.Param("mealId")
	if customerID == "" || mealID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID and meal ID are required"), "customer ID and meal ID are required", http.StatusBadRequest)
		return
	}

	if err := c.cartService.RemoveMealFromCart(ctx.Request.Context(), customerID, mealID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}

// GetCart reads the customer's cart. A customer without a cart gets an
// empty one back.
// GET /api/v1/cart/:customerId
func (c *Controller) GetCart(ctx *gin.Context) {
	customerID := ctx.Param("customerId")
	if customerID == "" {
		response.HandleError(ctx, errors.BadRequest("customer ID is required"), "customer ID is required", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.GetCart(ctx.Request.Context(), customerID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart retrieved successfully")
}
