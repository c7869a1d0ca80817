package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes registers the finalize endpoint. No session guard
// here: the original site authenticates the booking purely through the
// captcha cookie, and the harness keeps that quirk as practice material.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/book", controller.Book)
}
