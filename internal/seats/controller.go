package seats

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

// ListSeats returns the seat grid as a bare JSON array of seat records.
// The session middleware in front of this handler supplies the 401 the
// wizard reads as session expiry.
func (c *Controller) ListSeats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.service.List(ctx.Request.Context()))
}
