package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateAndVerifyToken(t *testing.T) {
	j := JWT{Secret: "unit-test-secret"}

	token, err := j.CreateToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := j.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := JWT{Secret: "right"}
	verifier := JWT{Secret: "wrong"}

	token, err := issuer.CreateToken(42)
	assert.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestGinJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "middleware-test-secret")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinJwtMiddleware())
	router.GET("/private", func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": c.GetInt("x-user-id")})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/private", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Token abc")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := CreateJwtTokenForUser(42)
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "42")
	})
}
