package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, APIResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondText writes a bare plain-text body. The booking endpoint contract
// fixes failure bodies as human-readable reasons, not JSON envelopes.
func RespondText(c *gin.Context, code int, message string) {
	c.String(code, message)
}
