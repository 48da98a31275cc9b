package handler

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/middleware"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /authのHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type LoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

type ChangePINRequest struct {
	OldPIN string `json:"oldPin"`
	NewPIN string `json:"newPin"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/login", h.login)

	g := e.Group("/auth")
	g.Use(middleware.AuthJWT(cfg))
	g.POST("/change-pin", h.changePIN)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), req.Username, req.PIN)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) changePIN(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ChangePINRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.ChangePIN(c.Request().Context(), userID, req.OldPIN, req.NewPIN); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
