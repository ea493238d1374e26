package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/service"
)

const testSecret = "middleware-test-secret"

func newTestAuthService() *service.AuthService {
	return service.NewAuthService(&config.Config{JWTSecret: testSecret}, nil)
}

func signTestToken(t *testing.T, userID int, isAdmin bool) string {
	t.Helper()
	now := time.Now()
	claims := service.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "test-jti",
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID:  userID,
		IsAdmin: isAdmin,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestOptionalJWT(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authService := newTestAuthService()

	newRouter := func(capture **service.Claims) *gin.Engine {
		r := gin.New()
		r.POST("/donate", OptionalJWT(authService), func(c *gin.Context) {
			*capture = GetClaims(c)
			c.Status(http.StatusCreated)
		})
		return r
	}

	t.Run("SignedInCallerGetsClaims", func(t *testing.T) {
		var claims *service.Claims
		r := newRouter(&claims)

		req := httptest.NewRequest(http.MethodPost, "/donate", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, 42, false))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status %d", w.Code)
		}
		if claims == nil || claims.UserID != 42 {
			t.Fatalf("claims %+v", claims)
		}
	})

	t.Run("AnonymousCallerPassesWithoutClaims", func(t *testing.T) {
		var claims *service.Claims
		r := newRouter(&claims)

		req := httptest.NewRequest(http.MethodPost, "/donate", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status %d", w.Code)
		}
		if claims != nil {
			t.Fatalf("claims %+v", claims)
		}
	})

	t.Run("GarbageTokenPassesWithoutClaims", func(t *testing.T) {
		var claims *service.Claims
		r := newRouter(&claims)

		req := httptest.NewRequest(http.MethodPost, "/donate", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status %d", w.Code)
		}
		if claims != nil {
			t.Fatalf("claims %+v", claims)
		}
	})
}
