package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/pkg/response"
)

// RequireRoles gates a route on the authenticated user's role. It must run
// after Auth. Insufficient role yields 403, distinct from the 401 an
// unauthenticated request gets.
func RequireRoles(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		for _, role := range allowed {
			if u.Role == role {
				c.Next()
				return
			}
		}
		response.AbortError(c, http.StatusForbidden, "insufficient role")
	}
}

// RequireAdmin is the common admin-only gate.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(entity.RoleAdmin)
}
