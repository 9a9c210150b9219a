package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradelink/backend/internal/interfaces/http/dto"
)

// RequireRole restricts a route to requests whose token carries one of
// the given roles. It must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, ok := GetJWTRole(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse("FORBIDDEN", "Insufficient permissions for this operation"))
			return
		}
		c.Next()
	}
}
