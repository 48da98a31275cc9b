package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVのヘッダ。notesは任意の5列目。
var csvHeader = []string{"category", "name", "price", "stock", "notes"}

// 商品一覧をCSVで書き出す。区切り文字や引用符を含む値の
// クォート処理はencoding/csvに任せる（内部の"は""に倍化される）。
func (u *CatalogUsecase) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := u.List(ctx, ProductFilter{})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		row := []string{
			p.Category,
			p.Name,
			strconv.FormatInt(p.Price, 10),
			strconv.FormatInt(p.Stock, 10),
			p.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVから商品を取り込む。各行は新しいIDで作成する（上書きしない）。
// 必須列はcategory,name,price,stock。notesは任意。列順は問わない。
func (u *CatalogUsecase) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return 0, NewValidationError("csv", "empty or unreadable file")
	}

	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"category", "name", "price", "stock"} {
		if _, ok := idx[required]; !ok {
			return 0, NewValidationError("csv", fmt.Sprintf("missing column %q", required))
		}
	}

	cell := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	n := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, NewValidationError("csv", fmt.Sprintf("line %d: %v", line, err))
		}

		price, err := strconv.ParseInt(cell(row, "price"), 10, 64)
		if err != nil {
			return n, NewValidationError("csv", fmt.Sprintf("line %d: invalid price", line))
		}
		stock, err := strconv.ParseInt(cell(row, "stock"), 10, 64)
		if err != nil {
			return n, NewValidationError("csv", fmt.Sprintf("line %d: invalid stock", line))
		}

		if _, err := u.Create(ctx, ProductDraft{
			Category: cell(row, "category"),
			Name:     cell(row, "name"),
			Price:    price,
			Stock:    stock,
			Notes:    cell(row, "notes"),
		}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
