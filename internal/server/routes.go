package server

import (
	"net/http"

	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

// 参照実装に合わせて全ルートを /api の下に置く。
func RegisterRoutes(e *echo.Echo, productH *handler.ProductHandler, cartH *handler.CartHandler, orderH *handler.OrderHandler) {
	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	productH.RegisterRoutes(api)
	cartH.RegisterRoutes(api)
	orderH.RegisterRoutes(api)
}
