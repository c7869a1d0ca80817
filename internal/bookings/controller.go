package bookings

import (
	"net/http"

	"tixground/internal/captcha"
	"tixground/internal/seats"
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

// Book handles the finalize call. Failure bodies are bare human-readable
// reasons: that is the collaborator contract the wizard surfaces verbatim
// to the user.
func (c *Controller) Book(ctx *gin.Context) {
	var req BookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondText(ctx, http.StatusBadRequest, "Bad Request")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondText(ctx, http.StatusBadRequest, "Bad Request")
		return
	}

	captchaID, _ := ctx.Cookie(c.config.Captcha.CookieName)

	resp, err := c.service.Confirm(ctx.Request.Context(), captchaID, &req)
	if err != nil {
		logger.GetDefault().LogBookingRejected(ctx.Request.Context(), req.SeatID, err.Error())
		switch err {
		case captcha.ErrCaptchaExpired:
			response.RespondText(ctx, http.StatusBadRequest, "Captcha expired")
		case captcha.ErrCaptchaMismatch:
			response.RespondText(ctx, http.StatusForbidden, "Incorrect Captcha")
		case seats.ErrAlreadyBooked:
			response.RespondText(ctx, http.StatusConflict, "Already Booked")
		case seats.ErrSeatNotFound:
			response.RespondText(ctx, http.StatusNotFound, "Seat not found")
		default:
			response.RespondText(ctx, http.StatusInternalServerError, "Booking failed")
		}
		return
	}

	logger.GetDefault().LogBookingConfirmed(ctx.Request.Context(), resp.SeatID, resp.Reference)
	response.RespondJSON(ctx, "success", http.StatusOK, "Booking Confirmed", resp, nil)
}
