package shows

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListDates returns the ordered date labels. The wire shape is a bare JSON
// array: the wizard client and the automation exercising it both consume
// the list directly, not an envelope.
func (c *Controller) ListDates(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.ListDates(ctx.Request.Context()))
}
