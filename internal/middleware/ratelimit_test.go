package middleware

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("error.html").Parse(`{{.error_message}}`)))
	return r
}

func TestGlobalRateLimit(t *testing.T) {
	r := newTestRouter()
	r.GET("/", GlobalRateLimit(1, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	// Burst of 2 passes, third request in the same instant is rejected.
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two statuses = %v, want 200s", statuses[:2])
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third status = %d, want 429", statuses[2])
	}
}

type fakeCounter struct {
	n   int64
	err error
}

func (f *fakeCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.n++
	return f.n, nil
}

func TestPerCallerRateLimit(t *testing.T) {
	r := newTestRouter()
	counter := &fakeCounter{}
	r.POST("/summarize", PerCallerRateLimit(counter, 3, time.Minute, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("fourth request status = %d, want 429", w.Code)
	}
}

func TestPerCallerRateLimitFailsOpen(t *testing.T) {
	r := newTestRouter()
	counter := &fakeCounter{err: errors.New("redis down")}
	r.POST("/summarize", PerCallerRateLimit(counter, 1, time.Minute, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/summarize", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when the counter is unavailable", w.Code)
	}
}
