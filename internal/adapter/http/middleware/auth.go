package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

const identityKey = "x-identity"

// Authenticate rejects any request without a verifiable bearer credential.
// The verified identity is stashed on the gin context for downstream
// handlers; nothing past this middleware runs without one.
func Authenticate(verifier port.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendDomainError(c, &domain.AuthenticationError{
				Kind:   domain.AuthenticationInvalid,
				Reason: "missing bearer credential",
			})
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendDomainError(c, &domain.AuthenticationError{
				Kind:   domain.AuthenticationInvalid,
				Reason: "malformed authorization header",
			})
			return
		}

		identity, err := verifier.Verify(strings.TrimPrefix(bearer, "Bearer "))

		if err != nil {
			helper.SendDomainError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (domain.Identity, bool) {
	value, ok := c.Get(identityKey)

	if !ok {
		return domain.Identity{}, false
	}

	identity, ok := value.(domain.Identity)

	return identity, ok
}
