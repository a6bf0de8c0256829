package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/application/identity"
)

// AccountHandler serves registration and the customer profile
type AccountHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(userService *identity.UserService) *AccountHandler {
	return &AccountHandler{userService: userService}
}

// Register godoc
// @ID           register
// @Summary      Register an account
// @Description  Public sign-up. Username and email must be unused; the password needs eight characters with a letter and a digit.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "Registration form"
// @Success      201 {object} APIResponse[identity.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// MyAccount godoc
// @ID           getMyAccount
// @Summary      Current account
// @Tags         account
// @Produce      json
// @Success      200 {object} APIResponse[identity.UserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account [get]
func (h *AccountHandler) MyAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	user, err := h.userService.MyAccount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// EditProfile godoc
// @ID           editMyAccount
// @Summary      Edit profile
// @Description  Replace names and email. The email must not belong to another account.
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request body identity.EditProfileRequest true "Profile"
// @Success      200 {object} APIResponse[identity.UserResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /account [put]
func (h *AccountHandler) EditProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req identity.EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.EditProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
