package server

import (
	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Backup   *handler.BackupHandler
	Report   *handler.ReportHandler
	Settings *handler.SettingsHandler
}

func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(e *echo.Echo, port string) error {
	return e.Start(":" + port)
}
