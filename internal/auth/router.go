package auth

import (
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers the login endpoint
func SetupAuthRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.POST("/login", controller.Login)
}
