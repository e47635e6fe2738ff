package httpserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "userID"

// identityMiddleware extracts the storefront user id from an optional
// bearer token. Authentication itself belongs to the identity provider: a
// missing or invalid token just leaves the checkout anonymous, it never
// rejects the request.
func identityMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || token == "" {
			c.Next()
			return
		}
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			c.Next()
			return
		}
		if claims, ok := parsed.Claims.(jwt.MapClaims); ok {
			if uid, _ := claims["user_id"].(string); uid != "" {
				c.Set(userIDKey, uid)
			}
		}
		c.Next()
	}
}
