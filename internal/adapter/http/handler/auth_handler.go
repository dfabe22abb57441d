package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/helper"
	"github.com/Manni1403/taskboard-assessment/internal/adapter/http/validation"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/request"
	"github.com/Manni1403/taskboard-assessment/internal/core/model/response"
	"github.com/Manni1403/taskboard-assessment/internal/core/port"
	"github.com/Manni1403/taskboard-assessment/internal/core/util"
	"github.com/Manni1403/taskboard-assessment/pkg/auth"
)

type AuthHandler struct {
	svc port.AuthService
}

func NewAuthHandler(svc port.AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

func (a *AuthHandler) RegisterByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Registration(ctx, &params)

	if err != nil {
		slog.Error("Auth#Registration", "error", err)
		helper.SendBadRequestError(c, "registration", err.Error())
		return
	}

	userResponse := response.UserResponse{
		UUID:      user.UUID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}

	helper.SendSuccess(c, http.StatusCreated, userResponse)
}

func (a *AuthHandler) AuthByEmailAndPassword(c *gin.Context) {
	ctx := c.Request.Context()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := validation.Validator.Struct(params); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Authenticate(ctx, &params)

	if err != nil {
		slog.Error("Auth#AuthByEmailAndPassword", "error", err)
		helper.SendUnauthorizedError(c, "Invalid email or password")
		return
	}

	accessToken, err := auth.CreateJwtTokenForUser(user.ID)

	if err != nil {
		helper.SendUnauthorizedError(c, "Failed to generate access token")
		return
	}

	c.JSON(http.StatusOK, response.AuthResponse{
		AccessToken: accessToken,
		User: response.UserResponse{
			UUID:  user.UUID.String(),
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
