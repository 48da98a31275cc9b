package handler

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/middleware"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボードと売上台帳のHTTP。読み取りのみだが金額が見えるのでログイン必須。
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

// DI
func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/dashboard", h.dashboard)
	g.GET("/sales", h.listSales)
	g.GET("/sales/export", h.exportCSV)
}

func (h *ReportHandler) dashboard(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) listSales(c echo.Context) error {
	out, err := h.uc.ListSales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReportHandler) exportCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.uc.ExportSalesCSV(c.Request().Context(), c.Response(), c.QueryParam("period"))
}
