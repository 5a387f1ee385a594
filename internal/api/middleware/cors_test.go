package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsEngine(allowed string) *gin.Engine {
	r := gin.New()
	r.Use(CORSMiddleware(allowed))
	r.GET("/slides", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"count": 1})
	})
	r.POST("/monitor/check", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		allowed     string
		method      string
		path        string
		origin      string
		reqHeaders  string
		wantStatus  int
		wantOrigin  string
		wantCreds   string
		wantVary    string
		wantHeaders string
	}{
		{
			name: "wildcard", allowed: "*", method: http.MethodGet, path: "/slides",
			origin: "http://example.com", wantStatus: http.StatusOK, wantOrigin: "*",
		},
		{
			name: "listed origin", allowed: "http://allowed.com,http://also-allowed.com", method: http.MethodGet, path: "/slides",
			origin: "http://also-allowed.com", wantStatus: http.StatusOK,
			wantOrigin: "http://also-allowed.com", wantCreds: "true", wantVary: "Origin",
		},
		{
			name: "unlisted origin", allowed: "http://allowed.com", method: http.MethodGet, path: "/slides",
			origin: "http://evil.com", wantStatus: http.StatusOK,
		},
		{
			name: "no origin header", allowed: "*", method: http.MethodGet, path: "/slides",
			wantStatus: http.StatusOK,
		},
		{
			name: "empty allow list", allowed: "", method: http.MethodGet, path: "/slides",
			origin: "http://example.com", wantStatus: http.StatusOK,
		},
		{
			name: "whitespace in list", allowed: " http://a.com , http://b.com ", method: http.MethodGet, path: "/slides",
			origin: "http://b.com", wantStatus: http.StatusOK,
			wantOrigin: "http://b.com", wantCreds: "true", wantVary: "Origin",
		},
		{
			name: "preflight", allowed: "*", method: http.MethodOptions, path: "/monitor/check",
			origin: "http://example.com", wantStatus: http.StatusNoContent, wantOrigin: "*",
			wantHeaders: "Origin, Content-Type, Accept, Authorization",
		},
		{
			name: "preflight echoes requested headers", allowed: "http://allowed.com", method: http.MethodOptions, path: "/monitor/check",
			origin: "http://allowed.com", reqHeaders: "X-Custom-Header, Content-Type", wantStatus: http.StatusNoContent,
			wantOrigin: "http://allowed.com", wantCreds: "true", wantVary: "Origin",
			wantHeaders: "X-Custom-Header, Content-Type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.reqHeaders != "" {
				req.Header.Set("Access-Control-Request-Headers", tt.reqHeaders)
			}
			w := httptest.NewRecorder()
			corsEngine(tt.allowed).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected ACAO %q, got %q", tt.wantOrigin, got)
			}
			if got := w.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCreds {
				t.Errorf("expected Allow-Credentials %q, got %q", tt.wantCreds, got)
			}
			if got := w.Header().Get("Vary"); got != tt.wantVary {
				t.Errorf("expected Vary %q, got %q", tt.wantVary, got)
			}
			if tt.wantHeaders != "" {
				if got := w.Header().Get("Access-Control-Allow-Headers"); got != tt.wantHeaders {
					t.Errorf("expected Allow-Headers %q, got %q", tt.wantHeaders, got)
				}
			}
			if tt.wantOrigin == "" && w.Header().Get("Access-Control-Allow-Methods") != "" {
				t.Error("expected no CORS headers")
			}
		})
	}
}
