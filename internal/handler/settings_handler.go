package handler

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/middleware"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/settingsのHTTP。読み取りのみ。
// 書き込みは意味を知っている入り口（自動バックアップ設定など）からだけ行う。
type SettingsHandler struct {
	uc *usecase.SettingsUsecase
}

// DI
func NewSettingsHandler(uc *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/settings")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("", h.list)
}

func (h *SettingsHandler) list(c echo.Context) error {
	out, err := h.uc.All(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
