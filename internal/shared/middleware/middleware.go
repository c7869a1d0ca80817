package middleware

import (
	"net/http"

	"tixground/internal/shared/config"
	"tixground/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// SessionAuth creates a session-cookie authentication middleware.
// The wizard carries its session as a signed cookie, the way the practice
// site issues it at login; a missing or invalid cookie reads as session
// expiry to the client.
func SessionAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || tokenString == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Session cookie is required", nil, nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Session.Secret), nil
		})

		if err != nil || !token.Valid {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid or expired session", nil, nil)
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if tokenType, ok := claims["type"]; !ok || tokenType != "session" {
				response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid token type", nil, nil)
				c.Abort()
				return
			}
			c.Set("username", claims["username"])
		}

		c.Next()
	}
}
