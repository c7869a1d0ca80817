package shows

import (
	"github.com/gin-gonic/gin"
)

// SetupShowRoutes registers the date listing endpoint
func SetupShowRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/dates", controller.ListDates)
}
