package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "github.com/ashishpawar00/KeywordResearchTool/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns handler panics into 500 responses. Handlers are closed
// failure boundaries; no panic may take the process down.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					l.Error("panic recovered",
						applogger.Error(err),
						applogger.String("stack", string(debug.Stack())),
					)
					_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
						"error": "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}
