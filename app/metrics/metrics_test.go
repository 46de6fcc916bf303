package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.GET("/plans/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	before := testutil.ToFloat64(TotalRequests.WithLabelValues("/plans/:id", "204", http.MethodGet))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/abc", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	after := testutil.ToFloat64(TotalRequests.WithLabelValues("/plans/:id", "204", http.MethodGet))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestMiddlewareRecordsHandlerErrorStatus(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	before := testutil.ToFloat64(TotalRequests.WithLabelValues("/boom", "418", http.MethodGet))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	after := testutil.ToFloat64(TotalRequests.WithLabelValues("/boom", "418", http.MethodGet))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestMiddlewarePassesErrorOutward(t *testing.T) {
	handlerErr := errors.New("db down")
	var seen error

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen = next(c)
			return seen
		}
	})
	e.Use(Middleware)
	e.GET("/fail", func(c echo.Context) error {
		return handlerErr
	})

	before := testutil.ToFloat64(TotalRequests.WithLabelValues("/fail", "500", http.MethodGet))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if !errors.Is(seen, handlerErr) {
		t.Fatalf("expected handler error to reach outer middleware, got %v", seen)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if testutil.ToFloat64(TotalRequests.WithLabelValues("/fail", "500", http.MethodGet))-before != 1 {
		t.Fatal("expected 500 counted once")
	}
}

func TestMiddlewareCountsRecoveredPanics(t *testing.T) {
	e := echo.New()
	e.Use(Middleware)
	e.Use(echomiddleware.Recover())
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	before := testutil.ToFloat64(TotalRequests.WithLabelValues("/panic", "500", http.MethodGet))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if testutil.ToFloat64(TotalRequests.WithLabelValues("/panic", "500", http.MethodGet))-before != 1 {
		t.Fatal("expected panicking request counted once")
	}
}

func TestObserveSearch(t *testing.T) {
	before := testutil.ToFloat64(PlanSearches)
	ObserveSearch(3)
	if testutil.ToFloat64(PlanSearches)-before != 1 {
		t.Fatal("expected search counter to grow by 1")
	}
}
