package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bassista/go_pptcoach/internal/app"
	"github.com/bassista/go_pptcoach/internal/cache"
	"github.com/bassista/go_pptcoach/internal/config"
	"github.com/bassista/go_pptcoach/internal/host"
	"github.com/bassista/go_pptcoach/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an App over an in-memory PowerPoint and journal.
func newTestApp(t *testing.T) (*app.App, *host.MemoryConnector) {
	t.Helper()
	cfg := &config.Config{
		Host: config.HostConfig{Type: host.HostTypeMemory},
		Monitor: config.MonitorConfig{
			Enabled:      true,
			PollInterval: 10 * time.Millisecond,
			Slide:        true,
			Selection:    true,
		},
		Journal: config.JournalConfig{FilePath: "/data/journal.json", PersistInterval: time.Hour, Capacity: 100},
	}
	repo, err := repository.NewJSONRepository(afero.NewMemMapFs(), cfg.Journal.FilePath)
	require.NoError(t, err)

	connector := host.NewMemoryConnector()
	a, err := app.New(cfg, repo, cache.NewStore(repository.Journal{}, cfg.Journal.Capacity), connector)
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a, connector
}

// addPresentation opens a presentation with the given layouts in the
// connector's application.
func addPresentation(t *testing.T, connector *host.MemoryConnector, layouts ...host.SlideLayout) host.Presentation {
	t.Helper()
	doc, err := connector.App().AddPresentation()
	require.NoError(t, err)
	for i, l := range layouts {
		_, err := doc.AddSlide(i+1, l)
		require.NoError(t, err)
	}
	return doc
}

func memorySlide(t *testing.T, doc host.Presentation, index int) *host.MemorySlide {
	t.Helper()
	s, err := doc.Slide(index)
	require.NoError(t, err)
	return s.(*host.MemorySlide)
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
