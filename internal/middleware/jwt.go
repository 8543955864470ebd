package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/escola-dev/escola-api/internal/models"
	"github.com/escola-dev/escola-api/internal/service"
	appErrors "github.com/escola-dev/escola-api/pkg/errors"
	"github.com/escola-dev/escola-api/pkg/response"
)

// ContextUserKey is the gin context key storing the resolved caller identity.
const ContextUserKey = "currentUser"

// JWT protects routes by requiring a valid access token. The validated
// claims are resolved into a full identity here, once per request, so
// handlers never probe for the student profile link themselves.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		identity, err := authService.ResolveIdentity(c.Request.Context(), claims)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, identity)
		c.Next()
	}
}

// Identity extracts the caller identity stored by JWT. The zero identity is
// returned when the middleware did not run; scoped queries treat it as
// "sees nothing".
func Identity(c *gin.Context) models.Identity {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return models.Identity{}
	}
	identity, ok := value.(models.Identity)
	if !ok {
		return models.Identity{}
	}
	return identity
}
