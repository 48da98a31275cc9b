package handler

import (
	"errors"
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/domain/cart"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ProductID string `json:"productId,omitempty"`
	Shortfall int64  `json:"shortfall,omitempty"`
}

// usecase層のエラーをHTTPステータスに写す。
// 在庫系は409（リトライで解決しうる競合）、入力系は400。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error(), Code: "validation"})
	}

	var upe *usecase.UnderPaymentError
	if errors.As(err, &upe) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     upe.Error(),
			Code:      "under_payment",
			Shortfall: upe.Shortfall(),
		})
	}

	var ise *usecase.InvalidSnapshotError
	if errors.As(err, &ise) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ise.Error(), Code: "invalid_snapshot"})
	}

	var stockErr *usecase.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:     stockErr.Error(),
			Code:      "insufficient_stock",
			ProductID: stockErr.ProductID,
			Shortfall: stockErr.Shortfall(),
		})
	}

	var oos *cart.OutOfStockError
	if errors.As(err, &oos) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:     oos.Error(),
			Code:      "out_of_stock",
			ProductID: oos.ProductID,
		})
	}

	var pce *usecase.PartialCommitError
	if errors.As(err, &pce) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: pce.Error(), Code: "partial_commit"})
	}

	if errors.Is(err, usecase.ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	}
	if errors.Is(err, cart.ErrLineNotFound) || errors.Is(err, repo.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	if errors.Is(err, repo.ErrStoreUnavailable) {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
