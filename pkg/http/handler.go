package http

import "github.com/labstack/echo/v4"

// Handler defines HTTP route registration interface.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// HandlerGroup fans one registration out to several handlers.
type HandlerGroup []Handler

func (g HandlerGroup) RegisterRoutes(e *echo.Echo) {
	for _, h := range g {
		if h != nil {
			h.RegisterRoutes(e)
		}
	}
}
