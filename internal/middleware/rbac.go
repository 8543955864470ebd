package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/models"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
	"github.com/escola-dev/escola-api/pkg/response"
)

// RequireRoles blocks callers whose role is not in the allowed set.
// Superusers always pass.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		identity := value.(models.Identity)

		if identity.IsSuperuser {
			c.Next()
			return
		}
		if _, ok := allowed[identity.Role]; ok {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireCoordinatorTier restricts a route to coordination staff.
func RequireCoordinatorTier() gin.HandlerFunc {
	return RequireRoles(models.RoleCoordinator, models.RoleDirector, models.RoleITStaff)
}

// RequireTeacher restricts a route to teachers.
func RequireTeacher() gin.HandlerFunc {
	return RequireRoles(models.RoleTeacher)
}
