package handler

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/domain/cart"
	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP
type CheckoutHandler struct {
	uc   *usecase.CheckoutUsecase
	cart *cart.Cart
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, c *cart.Cart) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, cart: c}
}

type CheckoutRequest struct {
	Method           string `json:"method"`
	AmountPaid       int64  `json:"amountPaid"`
	PaymentReference string `json:"paymentReference"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout", h.checkout)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	sale, err := h.uc.Checkout(c.Request().Context(), h.cart, usecase.CheckoutInput{
		Method:           model.PaymentMethod(req.Method),
		AmountPaid:       req.AmountPaid,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, sale)
}
