package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitRejectsOverLimit(t *testing.T) {
	r := gin.New()
	r.GET("/ping", RateLimit(2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("request over limit: status = %d, want 429", w.Code)
	}
}

func TestRateLimitWindowHeaders(t *testing.T) {
	r := gin.New()
	r.GET("/ping", RateLimit(5, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if got := w.Header().Get("X-RateLimit-Limit"); got != "5" {
		t.Errorf("X-RateLimit-Limit = %q, want 5", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("X-RateLimit-Remaining = %q, want 4", got)
	}
}

func TestRateLimitDoesNotSerializeRequests(t *testing.T) {
	const handlerDelay = 100 * time.Millisecond

	r := gin.New()
	r.GET("/slow", RateLimit(100, time.Minute), func(c *gin.Context) {
		time.Sleep(handlerDelay)
		c.Status(http.StatusOK)
	})

	// Admitted requests must run concurrently; the limiter's lock covers
	// only the admit decision, never the handler itself.
	const n = 4
	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	if elapsed >= n*handlerDelay {
		t.Errorf("%d concurrent %v requests took %v, want roughly one handler duration", n, handlerDelay, elapsed)
	}
}
