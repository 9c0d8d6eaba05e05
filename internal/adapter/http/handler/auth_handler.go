package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
)

type AuthHandler struct {
	svc     port.AuthService
	issuer  *auth.JWT
	metrics *config.AppMetrics
}

func NewAuthHandler(svc port.AuthService, issuer *auth.JWT, metrics *config.AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		issuer:  issuer,
		metrics: metrics,
	}
}

func (a *AuthHandler) countOperation(operation string) {
	if a.metrics != nil {
		a.metrics.RecordUserOperation(operation)
	}
}

func (a *AuthHandler) SignUp(c *gin.Context) {
	req, err := util.BindBody[request.SignUpRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "body", "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(req); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Registration(c.Request.Context(), &req)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	token, err := a.issuer.Issue(*user)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	a.countOperation("signup")

	c.JSON(http.StatusCreated, response.TokenResponse{
		Token: token,
		User: response.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
	})
}

func (a *AuthHandler) Login(c *gin.Context) {
	req, err := util.BindBody[request.LoginRequest](c)

	if err != nil {
		helper.SendBadRequestError(c, "body", "Invalid request body")
		return
	}

	if err := validation.Validator.Struct(req); err != nil {
		helper.SendValidationError(c, err)
		return
	}

	user, err := a.svc.Authenticate(c.Request.Context(), &req)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	token, err := a.issuer.Issue(*user)

	if err != nil {
		helper.SendDomainError(c, err)
		return
	}

	a.countOperation("login")

	c.JSON(http.StatusOK, response.TokenResponse{
		Token: token,
		User: response.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
	})
}
