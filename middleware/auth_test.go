package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clipchain/pkg/context"
	"clipchain/pkg/jwt"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func newEngine(required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", Auth(secret, required), func(c *gin.Context) {
		fid, ok := context.GetFid(c)
		c.JSON(http.StatusOK, gin.H{"fid": fid, "ok": ok})
	})
	return r
}

func TestAuth_OptionalWithoutHeader(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fid":0,"ok":false}`, w.Body.String())
}

func TestAuth_RequiredWithoutHeader(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	token, err := jwt.GenerateToken(secret, 4242, jwt.TypeAccess, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newEngine(true).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"fid":4242,"ok":true}`, w.Body.String())
}

func TestAuth_BadToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	newEngine(false).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_SubjectMustBeFid(t *testing.T) {
	for _, sub := range []string{"0", "alice", ""} {
		claims := jwt.Claims{
			Type: jwt.TypeAccess,
			RegisteredClaims: gojwt.RegisteredClaims{
				Subject:   sub,
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(secret)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		newEngine(false).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "subject %q", sub)
	}
}
