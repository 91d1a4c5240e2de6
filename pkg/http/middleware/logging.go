package middleware

import (
	"time"

	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs every HTTP request with status and latency.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			l.Info("http request",
				applogger.String("method", c.Request().Method),
				applogger.String("path", c.Request().URL.Path),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
