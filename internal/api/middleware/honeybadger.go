package middleware

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	honeybadger "github.com/honeybadger-io/honeybadger-go"
	"github.com/sirupsen/logrus"
)

// HoneybadgerMiddleware reports panics and error responses to Honeybadger
// when HONEYBADGER_API_KEY is set, and is a pass-through otherwise.
// Panics are re-raised so gin.Recovery still writes the response.
func HoneybadgerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	log := logger.WithField("component", "honeybadger")
	apiKey := os.Getenv("HONEYBADGER_API_KEY")
	if apiKey == "" {
		log.Info("Honeybadger is not active. To enable error reporting, set the HONEYBADGER_API_KEY environment variable.")
		return func(c *gin.Context) {
			c.Next()
		}
	}

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "production"
	}
	honeybadger.Configure(honeybadger.Configuration{APIKey: apiKey, Env: env})
	log.Infof("Honeybadger error reporting is enabled (env %s).", env)

	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				honeybadger.Notify(fmt.Sprintf("Panic: %s %s", c.Request.Method, c.Request.URL.Path),
					c.Request, honeybadger.Context{"stack": string(debug.Stack())}, honeybadger.Tags{"panic", "http"})
				log.Error("Recovered from panic, notified Honeybadger: ", rec)
				panic(rec)
			}
		}()

		c.Next()

		status := c.Writer.Status()
		// 404 and 409 are expected answers (unknown slide, last slide).
		if status < 400 || status == 404 || status == 409 {
			return
		}
		route := fmt.Sprintf("%s %s", c.Request.Method, c.FullPath())
		if status >= 500 {
			honeybadger.Notify(fmt.Sprintf("Error: HTTP %d: %s", status, route), c.Request, honeybadger.Tags{"5XX", "http"})
		} else {
			honeybadger.Notify(fmt.Sprintf("Warning: HTTP %d: %s", status, route), honeybadger.Tags{"4XX", "http"})
		}
		log.Warnf("Honeybadger reported HTTP %d for %s", status, route)
	}
}
