package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func performCORS(t *testing.T, origins, requestOrigin, method string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS(origins))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/ping", nil)
	if requestOrigin != "" {
		req.Header.Set("Origin", requestOrigin)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	w := performCORS(t, "http://localhost:3000", "http://localhost:3000", http.MethodGet)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowsAnyOfMultipleOrigins(t *testing.T) {
	origins := "http://localhost:3000, https://app.crisiswatch.io"

	w := performCORS(t, origins, "https://app.crisiswatch.io", http.MethodGet)
	require.Equal(t, "https://app.crisiswatch.io", w.Header().Get("Access-Control-Allow-Origin"))

	w = performCORS(t, origins, "http://localhost:3000", http.MethodGet)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	w := performCORS(t, "http://localhost:3000", "https://evil.example.com", http.MethodGet)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWildcardEchoesOrigin(t *testing.T) {
	w := performCORS(t, "*", "https://anywhere.example.com", http.MethodGet)
	require.Equal(t, "https://anywhere.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	w := performCORS(t, "http://localhost:3000", "http://localhost:3000", http.MethodOptions)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, corsMethods, w.Header().Get("Access-Control-Allow-Methods"))
}
