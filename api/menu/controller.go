/*
Package menu - menu API controller.

Responsibilities:
 1. Parse and validate HTTP input.
 2. Delegate to the meal application service.
 3. Answer through the response package.

Binding errors answer 400 directly; business errors go through
response.HandleAppError which maps domain errors to status codes.
*/
package menu

import (
	"net/http"

	"mealshop/api/response"
	mealapp "mealshop/application/meal"
	"mealshop/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller handles menu requests.
type Controller struct {
	mealService *mealapp.Service
}

func NewController(mealService *mealapp.Service) *Controller {
	return &Controller{mealService: mealService}
}

// RegisterRoutes registers menu routes.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	menuGroup := router.Group("/menu")
	{
		menuGroup.POST("", c.AddMeal)
		menuGroup.GET("", c.GetMenu)
		menuGroup.GET("/:id", c.GetMeal)
		menuGroup.PUT("/:id/price", c.ChangePrice)
		menuGroup.DELETE("/:id", c.RemoveMeal)
	}
}

// AddMealRequest is the body of POST /api/v1/menu. PriceAmount is in minor
// currency units.
type AddMealRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	PriceAmount int64  `json:"price_amount" binding:"required"`
}

// AddMeal puts a new meal on the menu.
// POST /api/v1/menu
func (c *Controller) AddMeal(ctx *gin.Context) {
	var req AddMealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	meal, err := c.mealService.AddMealToMenu(ctx.Request.Context(), mealapp.AddMealCommand{
		Name:        req.Name,
		Description: req.Description,
		PriceAmount: req.PriceAmount,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, meal, "meal added to menu")
}

// GetMenu lists every meal currently on the menu.
// GET /api/v1/menu
func (c *Controller) GetMenu(ctx *gin.Context) {
	meals, err := c.mealService.GetMenu(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, meals, "menu retrieved successfully")
}

// GetMeal returns a single meal by id.
// GET /api/v1/menu/:id
func (c *Controller) GetMeal(ctx *gin.Context) {
	mealID := ctx.Param("id")
	if mealID == "" {
		response.HandleError(ctx, errors.BadRequest("meal ID is required"), "meal ID is required", http.StatusBadRequest)
		return
	}

	meal, err := c.mealService.GetMeal(ctx.Request.Context(), mealID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, meal, "meal retrieved successfully")
}

// ChangePriceRequest is the body of PUT /api/v1/menu/:id/price.
type ChangePriceRequest struct {
	PriceAmount int64 `json:"price_amount" binding:"required"`
}

// ChangePrice updates the menu price of a meal.
// PUT /api/v1/menu/:id/price
func (c *Controller) ChangePrice(ctx *gin.Context) {
	mealID := ctx.Param("id")
	if mealID == "" {
		response.HandleError(ctx, errors.BadRequest("meal ID is required"), "meal ID is required", http.StatusBadRequest)
		return
	}

	var req ChangePriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	if err := c.mealService.ChangeMealPrice(ctx.Request.Context(), mealID, req.PriceAmount); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, nil, "meal price updated successfully")
}

// RemoveMeal takes a meal off the menu.
// DELETE /api/v1/menu/:id
func (c *Controller) RemoveMeal(ctx *gin.Context) {
	mealID := ctx.Param("id")
	if mealID == "" {
		response.HandleError(ctx, errors.BadRequest("meal ID is required"), "meal ID is required", http.StatusBadRequest)
		return
	}

	if err := c.mealService.RemoveMealFromMenu(ctx.Request.Context(), mealID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
