package server

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/config"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)
	h.Backup.RegisterRoutes(e, cfg)
	h.Report.RegisterRoutes(e, cfg)
	h.Settings.RegisterRoutes(e, cfg)
}
