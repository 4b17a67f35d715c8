package middleware

import (
	"strings"

	"gcse_prep_backend/internal/config"
	"gcse_prep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the identity token and stores the claims in
// the request context. The engine does not authenticate users itself;
// it trusts the learner id the token carries.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
