package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit_backend/internal/shared/identity"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func runAuth(secret, header string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	AuthRequired(secret)(c)
	return w, c
}

func TestAuthRequired_MissingBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no header", ""},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"bearer lowercase", "bearer token123"},
		{"no space after Bearer", "Bearertoken123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runAuth("test-secret", tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestAuthRequired_MissingSecret(t *testing.T) {
	t.Parallel()

	w, _ := runAuth("", "Bearer sometoken")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	t.Parallel()

	const testSecret = "test-secret-key-for-invalid"

	tests := []struct {
		name  string
		token string
	}{
		{"malformed token", "not.a.valid.token"},
		{"random string", "randomstring"},
		{"wrong secret", createToken("wrong-secret", jwt.MapClaims{"sub": "u1", "role": "user"}, time.Hour)},
		{"expired token", createToken(testSecret, jwt.MapClaims{"sub": "u1", "role": "user"}, -time.Hour)},
		{"missing subject", createToken(testSecret, jwt.MapClaims{"role": "user"}, time.Hour)},
		{"numeric subject", createToken(testSecret, jwt.MapClaims{"sub": float64(7), "role": "user"}, time.Hour)},
		{"unknown role", createToken(testSecret, jwt.MapClaims{"sub": "u1", "role": "root"}, time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := runAuth(testSecret, "Bearer "+tt.token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	t.Parallel()

	const testSecret = "test-secret-key-for-valid"

	tests := []struct {
		name     string
		userID   string
		role     string
		wantRole identity.Role
	}{
		{"regular user", "user-1", "user", identity.RoleUser},
		{"admin", "admin-1", "admin", identity.RoleAdmin},
		{"role claim absent defaults to user", "user-2", "", identity.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := jwt.MapClaims{"sub": tt.userID, "email": "test@example.com"}
			if tt.role != "" {
				claims["role"] = tt.role
			}
			token := createToken(testSecret, claims, time.Hour)

			w, c := runAuth(testSecret, "Bearer "+token)
			require.False(t, c.IsAborted(), "response: %s", w.Body.String())

			caller, ok := CallerFrom(c)
			require.True(t, ok)
			assert.Equal(t, tt.userID, caller.ID)
			assert.Equal(t, tt.wantRole, caller.Role)
			assert.Equal(t, "test@example.com", c.GetString(ContextEmail))
		})
	}
}

func TestAuthRequired_InvalidSigningMethod(t *testing.T) {
	t.Parallel()

	const testSecret = "test-secret-key-for-signing"

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	tokenStr, _ := token.SignedString(jwt.UnsafeAllowNoneSignatureType)

	w, _ := runAuth(testSecret, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	const secret = "role-secret"
	g := NewGenerator(secret, time.Hour)
	userToken, err := g.GenerateToken("u1", "u1@example.com", "user")
	require.NoError(t, err)
	adminToken, err := g.GenerateToken("a1", "a1@example.com", "admin")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", AuthRequired(secret), RequireRole(identity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"admin passes", adminToken, http.StatusNoContent},
		{"user forbidden", userToken, http.StatusForbidden},
		{"anonymous", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RequireRole(identity.RoleAdmin)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func createToken(secret string, claims jwt.MapClaims, expiration time.Duration) string {
	claims["exp"] = time.Now().Add(expiration).Unix()
	claims["iat"] = time.Now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}
