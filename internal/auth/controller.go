package auth

import (
	"net/http"

	"tixground/internal/shared/config"
	"tixground/internal/shared/utils/response"
	"tixground/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	config    *config.Config
	validator *validator.Validate
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{
		service:   service,
		config:    cfg,
		validator: validator.New(),
	}
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, token, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid Credentials", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to login", nil, nil)
		}
		return
	}

	ctx.SetCookie(
		c.config.Session.CookieName,
		token,
		int(c.config.Session.TTL.Seconds()),
		"/",
		"",
		false,
		true, // HttpOnly
	)

	logger.GetDefault().LogAuthSuccess(ctx.Request.Context(), req.Username)
	response.RespondJSON(ctx, "success", http.StatusOK, "Login Success", resp, nil)
}
