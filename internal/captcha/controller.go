package captcha

import (
	"net/http"

	"tixground/internal/shared/config"
	"tixground/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	config  *config.Config
}

func NewController(service Service, cfg *config.Config) *Controller {
	return &Controller{
		service: service,
		config:  cfg,
	}
}

// GetImage issues a fresh challenge and renders it. The cache-busting
// query parameter the client appends is deliberately ignored; the no-store
// headers do the real work of keeping every fetch fresh.
func (c *Controller) GetImage(ctx *gin.Context) {
	challenge, err := c.service.Issue(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to issue captcha", nil, nil)
		return
	}

	ctx.SetCookie(c.config.Captcha.CookieName, challenge.ID, int(c.config.Captcha.TTL.Seconds()), "/", "", false, false)

	ctx.Header("Content-Type", "image/svg+xml")
	ctx.Header("Cache-Control", "no-store, no-cache, must-revalidate")
	ctx.String(http.StatusOK, c.service.RenderSVG(challenge.Code))
}
