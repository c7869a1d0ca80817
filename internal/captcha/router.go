package captcha

import (
	"github.com/gin-gonic/gin"
)

// SetupCaptchaRoutes registers the challenge image endpoint
func SetupCaptchaRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/captcha", controller.GetImage)
}
