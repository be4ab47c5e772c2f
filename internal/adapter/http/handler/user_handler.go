package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/helper"
	"taskhub/internal/adapter/http/middleware"
	"taskhub/internal/adapter/http/validation"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/model/response"
	"taskhub/internal/core/port"
	"taskhub/internal/core/util"
)

type UserHandler struct {
	users port.UserService
	auth  port.AuthService
}

func NewUserHandler(users port.UserService, authSvc port.AuthService) *UserHandler {
	return &UserHandler{
		users: users,
		auth:  authSvc,
	}
}

func (u *UserHandler) GetProfile(c *gin.Context) {
	current := middleware.CurrentUser(c)

	user, err := u.users.Get(c.Request.Context(), current.ID)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.UserFromDomain(user))
}

func (u *UserHandler) UpdateProfile(c *gin.Context) {
	current := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.UpdateProfileRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := u.users.UpdateDisplayName(c.Request.Context(), current.ID, params.DisplayName)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.UserFromDomain(user))
}

// ChangePassword swaps the stored hash. Tokens issued before the change
// stay valid until they expire.
func (u *UserHandler) ChangePassword(c *gin.Context) {
	current := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.ChangePasswordRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	if err := u.auth.ChangePassword(c.Request.Context(), current.ID, params.OldPassword, params.NewPassword); err != nil {
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, gin.H{"message": "Password updated"})
}
