package handler

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/domain/cart"
	"github.com/Divarzky/jajanan-rizky/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP。レジは1台なのでカートはプロセスに1つ。
type CartHandler struct {
	cart *cart.Cart
}

// DI
func NewCartHandler(c *cart.Cart) *CartHandler {
	return &CartHandler{cart: c}
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
}

type ChangeQuantityRequest struct {
	Delta int64 `json:"delta"`
}

type CartResponse struct {
	Lines   []model.CartLine `json:"lines"`
	Total   int64            `json:"total"`
	Clamped bool             `json:"clamped,omitempty"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart", h.getCart)
	e.POST("/cart/items", h.addItem)
	e.PATCH("/cart/items/:productId", h.changeQuantity)
	e.DELETE("/cart", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot(false))
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "productId is required"})
	}

	if err := h.cart.AddItem(c.Request().Context(), req.ProductID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.snapshot(false))
}

func (h *CartHandler) changeQuantity(c echo.Context) error {
	var req ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	clamped, err := h.cart.ChangeQuantity(c.Request().Context(), c.Param("productId"), req.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.snapshot(clamped))
}

func (h *CartHandler) clear(c echo.Context) error {
	h.cart.Clear()
	return c.JSON(http.StatusOK, h.snapshot(false))
}

func (h *CartHandler) snapshot(clamped bool) CartResponse {
	return CartResponse{
		Lines:   h.cart.Lines(),
		Total:   h.cart.Total(),
		Clamped: clamped,
	}
}
