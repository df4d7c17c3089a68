package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCache(t *testing.T) {
	var generation uint64
	calls := 0
	r := gin.New()
	r.Use(Cache(cache.New(time.Minute, time.Minute), time.Minute, func() uint64 { return generation }))
	r.GET("/tables", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"calls": calls})
	})
	r.GET("/missing", func(c *gin.Context) {
		calls++
		c.JSON(http.StatusNotFound, gin.H{"error": "no"})
	})

	w := serve(r, http.MethodGet, "/tables", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"calls":1}`, w.Body.String())

	w = serve(r, http.MethodGet, "/tables", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"calls":1}`, w.Body.String())

	generation++
	w = serve(r, http.MethodGet, "/tables", nil)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"), "a floor change invalidates cached reads")
	assert.JSONEq(t, `{"calls":2}`, w.Body.String())

	serve(r, http.MethodGet, "/missing", nil)
	w = serve(r, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 4, calls, "errors are not cached")
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(0.001), 2, "X-Forwarded-For"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	alice := map[string]string{"X-Forwarded-For": "10.0.0.1, 192.168.0.1"}
	bob := map[string]string{"X-Forwarded-For": "10.0.0.2"}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", alice).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", alice).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/", alice).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", bob).Code, "limits are per client")
}

func TestRateLimiter_IgnoresForwardedForByDefault(t *testing.T) {
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(0.001), 1, ""))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "10.0.0.1"}).Code)
	assert.Equal(t, http.StatusTooManyRequests,
		serve(r, http.MethodGet, "/", map[string]string{"X-Forwarded-For": "10.0.0.2"}).Code,
		"a forged header does not open a new bucket")
	assert.Equal(t, http.StatusTooManyRequests,
		serve(r, http.MethodGet, "/", map[string]string{"X-Real-IP": "10.0.0.3"}).Code)
}

func TestIdentifyAndRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(Identify())
	r.GET("/whoami", func(c *gin.Context) {
		a, ok := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"ok": ok, "id": a.ID, "role": a.Role})
	})
	r.POST("/layout", RequireRole(RoleAdmin, RoleManager), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	testCases := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		expected int
		body     string
	}{
		{name: "Anonymous read", method: http.MethodGet, path: "/whoami", expected: http.StatusOK, body: `{"ok":false,"id":0,"role":""}`},
		{name: "Waiter read", method: http.MethodGet, path: "/whoami", headers: map[string]string{HeaderStaffID: "7", HeaderStaffRole: "waiter"}, expected: http.StatusOK, body: `{"ok":true,"id":7,"role":"waiter"}`},
		{name: "Bad id", method: http.MethodGet, path: "/whoami", headers: map[string]string{HeaderStaffID: "x", HeaderStaffRole: "waiter"}, expected: http.StatusBadRequest},
		{name: "Bad role", method: http.MethodGet, path: "/whoami", headers: map[string]string{HeaderStaffID: "7", HeaderStaffRole: "chef"}, expected: http.StatusBadRequest},
		{name: "Anonymous write", method: http.MethodPost, path: "/layout", expected: http.StatusUnauthorized},
		{name: "Waiter write", method: http.MethodPost, path: "/layout", headers: map[string]string{HeaderStaffID: "7", HeaderStaffRole: "waiter"}, expected: http.StatusForbidden},
		{name: "Manager write", method: http.MethodPost, path: "/layout", headers: map[string]string{HeaderStaffID: "2", HeaderStaffRole: "manager"}, expected: http.StatusNoContent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, tc.method, tc.path, tc.headers)
			assert.Equal(t, tc.expected, w.Code)
			if tc.body != "" {
				assert.JSONEq(t, tc.body, w.Body.String())
			}
		})
	}
}
