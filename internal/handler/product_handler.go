package handler

import (
	"net/http"

	"github.com/Divarzky/jajanan-rizky/internal/config"
	"github.com/Divarzky/jajanan-rizky/internal/middleware"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /products のHTTP。閲覧はレジ画面から誰でも、編集はログイン必須。
type ProductHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewProductHandler(uc *usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type CreateProductRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Notes    string `json:"notes"`
}

type UpdateProductRequest struct {
	Category *string `json:"category"`
	Name     *string `json:"name"`
	Price    *int64  `json:"price"`
	Stock    *int64  `json:"stock"`
	Notes    *string `json:"notes"`
}

type AdjustStockRequest struct {
	Delta int64 `json:"delta"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/products", h.list)
	e.GET("/products/categories", h.categories)
	e.GET("/products/:id", h.detail)

	g := e.Group("/admin/products")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.remove)
	g.POST("/:id/adjust-stock", h.adjustStock)
	g.GET("/export", h.exportCSV)
	g.POST("/import", h.importCSV)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.ProductFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.uc.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.ProductDraft{
		Category: req.Category,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.Update(c.Request().Context(), c.Param("id"), usecase.ProductPatch{
		Category: req.Category,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) adjustStock(c echo.Context) error {
	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.AdjustStock(c.Request().Context(), c.Param("id"), req.Delta)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) exportCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.uc.ExportCSV(c.Request().Context(), c.Response())
}

func (h *ProductHandler) importCSV(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cannot read file"})
	}
	defer src.Close()

	n, err := h.uc.ImportCSV(c.Request().Context(), src)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int{"imported": n})
}
