package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"usermgmt/internal/auth"
	"usermgmt/internal/metrics"
)

// principalKey is the gin context key the authenticated principal is
// stored under.
const principalKey = "principal"

// BasicAuth re-authenticates every request from the presented HTTP
// Basic credentials. There is no session: the store is consulted on
// each call and the resulting principal lives only in this request's
// context.
func BasicAuth(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			metrics.IncAuth("missing")
			unauthorized(c)
			return
		}

		principal, err := authn.Authenticate(email, password)
		if err != nil {
			metrics.IncAuth("invalid")
			unauthorized(c)
			return
		}

		metrics.IncAuth("success")
		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom extracts the principal placed by BasicAuth. A nil
// return means the request never passed authentication.
func PrincipalFrom(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="users"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"result":  "error",
		"message": "Неверные логин или пароль",
	})
}
