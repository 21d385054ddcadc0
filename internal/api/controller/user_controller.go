package controller

import (
	"ctchen222/Recipe-Box/internal/api/middleware"
	"ctchen222/Recipe-Box/internal/api/models"
	"ctchen222/Recipe-Box/internal/api/response"
	"ctchen222/Recipe-Box/internal/api/service"

	"github.com/gin-gonic/gin"
)

// UserController handles signup, login and the session endpoints.
type UserController struct {
	authService service.AuthService
}

// NewUserController creates a new UserController.
func NewUserController(authService service.AuthService) *UserController {
	return &UserController{
		authService: authService,
	}
}

// Signup handles the user registration endpoint.
func (uc *UserController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	user, err := uc.authService.Signup(c.Request.Context(), middleware.FromContext(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.CreatedResponse(c, user.View())
}

// Login handles the user login endpoint.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	user, err := uc.authService.Login(c.Request.Context(), middleware.FromContext(c), &req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessResponse(c, user.View())
}

// Logout ends the current session.
func (uc *UserController) Logout(c *gin.Context) {
	if err := uc.authService.Logout(c.Request.Context(), middleware.FromContext(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContentResponse(c)
}

// CheckSession returns the user the session belongs to.
func (uc *UserController) CheckSession(c *gin.Context) {
	user, err := uc.authService.CurrentUser(c.Request.Context(), middleware.FromContext(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessResponse(c, user.View())
}

func (uc *UserController) DeleteAccount(c *gin.Context) {
	if err := uc.authService.DeleteAccount(c.Request.Context(), middleware.FromContext(c)); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContentResponse(c)
}
