package handler

import (
	"io"
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	"github.com/Divarzky/jajanan-rizky/internal/middleware"
	"github.com/Divarzky/jajanan-rizky/internal/scheduler"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/backupsのHTTP。リストアは全置換なのですべてログイン必須。
type BackupHandler struct {
	uc       *usecase.BackupUsecase
	settings *usecase.SettingsUsecase
	auto     *scheduler.AutoBackup
}

// DI
func NewBackupHandler(uc *usecase.BackupUsecase, settings *usecase.SettingsUsecase, auto *scheduler.AutoBackup) *BackupHandler {
	return &BackupHandler{uc: uc, settings: settings, auto: auto}
}

type CreateBackupRequest struct {
	Name string `json:"name"`
}

type AutoBackupRequest struct {
	Enabled     bool `json:"enabled"`
	IntervalMin int  `json:"intervalMin"`
}

type AutoBackupResponse struct {
	Enabled     bool `json:"enabled"`
	IntervalMin int  `json:"intervalMin"`
	Running     bool `json:"running"`
}

func (h *BackupHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/admin/backups")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/export", h.export)
	g.POST("/restore", h.restoreUpload)
	g.GET("/auto", h.autoStatus)
	g.PUT("/auto", h.autoConfigure)
	g.GET("/:id/download", h.download)
	g.POST("/:id/restore", h.restore)
	g.DELETE("/:id", h.remove)
}

func (h *BackupHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BackupHandler) create(c echo.Context) error {
	var req CreateBackupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	b, err := h.uc.CreateBackup(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

// 現在のデータをその場でJSONとしてダウンロードする（履歴には残さない）
func (h *BackupHandler) export(c echo.Context) error {
	snap, err := h.uc.Export(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="export.json"`)
	return c.JSON(http.StatusOK, snap)
}

func (h *BackupHandler) download(c echo.Context) error {
	b, err := h.uc.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+b.Name+`"`)
	return c.JSON(http.StatusOK, b.Data)
}

func (h *BackupHandler) restore(c echo.Context) error {
	if err := h.uc.RestoreBackup(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// アップロードされたスナップショット文書からのリストア
func (h *BackupHandler) restoreUpload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read file"})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read file"})
	}

	if err := h.uc.RestoreJSON(c.Request().Context(), data); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BackupHandler) remove(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *BackupHandler) autoStatus(c echo.Context) error {
	ctx := c.Request().Context()
	enabled, err := h.settings.GetBool(ctx, model.SettingAutoBackupEnabled, false)
	if err != nil {
		return writeError(c, err)
	}
	interval, err := h.settings.GetInt(ctx, model.SettingAutoBackupInterval, 60)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, AutoBackupResponse{
		Enabled:     enabled,
		IntervalMin: interval,
		Running:     h.auto.Running(),
	})
}

func (h *BackupHandler) autoConfigure(c echo.Context) error {
	var req AutoBackupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()
	if req.Enabled {
		if err := h.auto.Enable(ctx, req.IntervalMin); err != nil {
			return writeError(c, err)
		}
	} else {
		if err := h.auto.Disable(ctx); err != nil {
			return writeError(c, err)
		}
	}
	return h.autoStatus(c)
}
