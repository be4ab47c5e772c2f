package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/adapter/http/helper"
	"taskhub/internal/adapter/http/validation"
	"taskhub/internal/core/model/request"
	"taskhub/internal/core/model/response"
	"taskhub/internal/core/port"
	"taskhub/internal/core/util"
	"taskhub/pkg/auth"
)

type AuthHandler struct {
	svc    port.AuthService
	tokens *auth.TokenManager
}

func NewAuthHandler(svc port.AuthService, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		svc:    svc,
		tokens: tokens,
	}
}

func (a *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.RegisterRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Register(ctx, &params)

	if err != nil {
		slog.Error("Auth#Register", "error", err)
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusCreated, response.UserFromDomain(user))
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Login(ctx, &params)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	token, err := a.tokens.CreateToken(user)

	if err != nil {
		slog.Error("Auth#Login token signing", "error", err)
		helper.SendDomainError(c, err)
		return
	}

	helper.SendSuccess(c, http.StatusOK, response.AuthResponse{
		Token: token,
		User:  response.UserFromDomain(user),
	})
}
