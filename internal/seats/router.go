package seats

import (
	"tixground/internal/shared/config"
	"tixground/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes registers the session-guarded seat listing
func SetupSeatRoutes(rg *gin.RouterGroup, cfg *config.Config, controller *Controller) {
	seats := rg.Group("/seats")
	seats.Use(middleware.SessionAuth(cfg))
	{
		seats.GET("", controller.ListSeats)
	}
}
