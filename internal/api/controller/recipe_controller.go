package controller

import (
	"ctchen222/Recipe-Box/internal/api/middleware"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/api/response"
	"ctchen222/Recipe-Box/internal/api/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RecipeController handles the recipe endpoints.
type RecipeController struct {
	recipeService service.RecipeService
}

// NewRecipeController creates a new RecipeController.
func NewRecipeController(recipeService service.RecipeService) *RecipeController {
	return &RecipeController{
		recipeService: recipeService,
	}
}

// List returns the caller's recipes.
func (rc *RecipeController) List(c *gin.Context) {
	recipes, err := rc.recipeService.ListRecipes(c.Request.Context(), middleware.FromContext(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	views := make([]models.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, recipes[i].View())
	}
	response.SuccessResponseList(c, views)
}

// Create stores a new recipe for the caller.
func (rc *RecipeController) Create(c *gin.Context) {
	if !requireSession(c) {
		return
	}

	var req models.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	recipe, err := rc.recipeService.CreateRecipe(c.Request.Context(), middleware.FromContext(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.CreatedResponse(c, recipe.View())
}

// Delete removes one of the caller's recipes.
func (rc *RecipeController) Delete(c *gin.Context) {
	if !requireSession(c) {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, models.ErrNotFound)
		return
	}

	if err := rc.recipeService.DeleteRecipe(c.Request.Context(), middleware.FromContext(c), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContentResponse(c)
}

// requireSession rejects anonymous callers before the request is decoded.
// The services still resolve the identity themselves.
func requireSession(c *gin.Context) bool {
	if !middleware.FromContext(c).Authenticated() {
		response.Fail(c, models.ErrUnauthorized)
		return false
	}
	return true
}
