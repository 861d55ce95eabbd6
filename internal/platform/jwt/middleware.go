package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"credit_backend/internal/shared/identity"
)

const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// AuthRequired returns a Gin middleware that validates bearer tokens signed
// with secret and stores the caller's id, email and role in the context.
func AuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abort(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			abort(c, http.StatusInternalServerError, "server misconfigured")
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// only HMAC is accepted
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		role, err := identity.ParseRole(stringClaim(claims, "role"))
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(ContextUserID, sub)
		c.Set(ContextEmail, stringClaim(claims, "email"))
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not one of roles. It must run
// after AuthRequired.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		for _, r := range roles {
			if caller.Role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "insufficient role")
	}
}

// CallerFrom returns the authenticated caller stored by AuthRequired.
func CallerFrom(c *gin.Context) (identity.Caller, bool) {
	id := c.GetString(ContextUserID)
	if id == "" {
		return identity.Caller{}, false
	}
	role, _ := c.Get(ContextRole)
	r, _ := role.(identity.Role)
	return identity.Caller{ID: id, Role: r}, true
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": http.StatusText(status), "message": message})
}
