package payment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tixground/internal/shared/utils/response"
	"tixground/pkg/logger"
)

type Controller struct {
	bus         *Bus
	pollTimeout time.Duration
	log         *logger.Logger
}

func NewController(bus *Bus, pollTimeout time.Duration, log *logger.Logger) *Controller {
	return &Controller{bus: bus, pollTimeout: pollTimeout, log: log}
}

// Page serves the standalone payment surface.
func (ctrl *Controller) Page(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(paymentPage))
}

// Complete is hit by the payment page once the form is submitted. It
// broadcasts the sentinel to every subscriber currently waiting on Events.
func (ctrl *Controller) Complete(c *gin.Context) {
	ctrl.bus.Publish(Sentinel)
	ctrl.log.Info("payment completion published")
	response.RespondJSON(c, "success", http.StatusOK, "Payment Recorded", nil, nil)
}

// Events long-polls for the next sentinel. Responds 200 with the sentinel
// text when one arrives, 204 when the poll window closes without one.
func (ctrl *Controller) Events(c *gin.Context) {
	ch, cancel := ctrl.bus.Subscribe()
	defer cancel()

	timer := time.NewTimer(ctrl.pollTimeout)
	defer timer.Stop()

	select {
	case msg := <-ch:
		response.RespondText(c, http.StatusOK, msg)
	case <-timer.C:
		c.Status(http.StatusNoContent)
	case <-c.Request.Context().Done():
		c.Status(http.StatusNoContent)
	}
}
