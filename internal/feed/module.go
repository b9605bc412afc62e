package feed

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"
)

// Module wires the kitchen feed hub and its websocket route.
var Module = fx.Options(
	fx.Provide(NewHub),
	fx.Invoke(func(e *echo.Echo, h *Hub) {
		e.GET("/ws/kitchen", h.Handle)
	}),
)
