package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLogin(t *testing.T) {
	success := authLogins.WithLabelValues(LoginPassword, "success")
	failure := authLogins.WithLabelValues(LoginPassword, "failure")
	beforeOK, beforeFail := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	ObserveLogin(LoginPassword, nil)
	ObserveLogin(LoginPassword, errors.New("bad password"))
	ObserveLogin(LoginPassword, errors.New("bad password"))

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeFail+2, testutil.ToFloat64(failure))
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/items/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.NewHTTPError(http.StatusNotFound, "missing")
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", Handler())

	ok := httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "200")
	notFound := httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "404")
	beforeOK, beforeNotFound := testutil.ToFloat64(ok), testutil.ToFloat64(notFound)

	for _, target := range []string{"/items/1", "/items/2", "/items/0"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, beforeOK+2, testutil.ToFloat64(ok), "requests are grouped by route template")
	assert.Equal(t, beforeNotFound+1, testutil.ToFloat64(notFound))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "auth_logins_total")
}
