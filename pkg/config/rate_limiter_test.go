package config_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"taskapp/pkg/config"
)

func setupRateLimitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	limiter := config.NewRateLimiter(zap.NewNop(), nil)

	router.Use(limiter.RateLimitMiddleware())
	router.POST("/signup", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func hit(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", "/signup", nil)
	req.Header.Set("X-Forwarded-For", ip)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter()

	for i := 0; i < 5; i++ {
		rr := hit(router, "10.0.0.1")

		Expect(rr.Code).To(Equal(http.StatusOK))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter()

	for i := 0; i < 5; i++ {
		hit(router, "10.0.0.2")
	}

	rr := hit(router, "10.0.0.2")

	Expect(rr.Code).To(Equal(http.StatusTooManyRequests))
	Expect(rr.Body.String()).To(ContainSubstring("RATE_LIMITED"))
}

func TestRateLimiter_KeysByClientIP(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter()

	for i := 0; i < 5; i++ {
		hit(router, "10.0.0.3")
	}

	rr := hit(router, "10.0.0.4")

	Expect(rr.Code).To(Equal(http.StatusOK))
}

func TestRateLimiter_SetsHeaders(t *testing.T) {
	RegisterTestingT(t)

	router := setupRateLimitedRouter()

	rr := hit(router, "10.0.0.5")

	Expect(rr.Header().Get("X-RateLimit-Limit")).To(Equal("5"))
	Expect(rr.Header().Get("X-RateLimit-Remaining")).To(Equal("4"))
	Expect(rr.Header().Get("X-RateLimit-Reset")).NotTo(BeEmpty())
}
