package payment

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes mounts the polling endpoints under the API group and
// the payment page itself on the engine root, since it must live on a
// separate top-level path from the rest of the API.
func SetupPaymentRoutes(engine *gin.Engine, rg *gin.RouterGroup, ctrl *Controller) {
	engine.GET("/payment", ctrl.Page)

	paymentRoutes := rg.Group("/payment")
	{
		paymentRoutes.POST("/complete", ctrl.Complete)
		paymentRoutes.GET("/events", ctrl.Events)
	}
}
