package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
)

// 在庫僅少とみなす閾値
const lowStockThreshold = 5

// ReportUsecase は売上台帳の集計（ダッシュボード・CSV出力）。読み取りのみ。
type ReportUsecase struct {
	store repo.Store
	clock Clock
}

// DI
func NewReportUsecase(store repo.Store, clock Clock) *ReportUsecase {
	return &ReportUsecase{store: store, clock: clock}
}

type DailyTotal struct {
	Date  string `json:"date"` // YYYY-MM-DD (UTC)
	Total int64  `json:"total"`
}

type DashboardOutput struct {
	TodayTotal int64        `json:"todayTotal"`
	TodayCount int          `json:"todayCount"`
	LowStock   int          `json:"lowStock"`
	Last7Days  []DailyTotal `json:"last7Days"`
}

// 新しい順
func (u *ReportUsecase) ListSales(ctx context.Context) ([]model.Sale, error) {
	raws, err := u.store.GetAll(ctx, repo.CollectionSales)
	if err != nil {
		return nil, err
	}
	sales, err := repo.DecodeAll[model.Sale](raws)
	if err != nil {
		return nil, err
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].CreatedAt > sales[j].CreatedAt })
	return sales, nil
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// 当日合計・当日件数・在庫僅少数・直近7日の日別合計
func (u *ReportUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	sales, err := u.ListSales(ctx)
	if err != nil {
		return DashboardOutput{}, err
	}

	now := u.clock.Now()
	today := dateKey(now)

	out := DashboardOutput{}
	byDay := map[string]int64{}
	for _, s := range sales {
		key := dateKey(time.UnixMilli(s.CreatedAt))
		byDay[key] += s.Total
		if key == today {
			out.TodayTotal += s.Total
			out.TodayCount++
		}
	}

	out.Last7Days = make([]DailyTotal, 0, 7)
	for i := 6; i >= 0; i-- {
		key := dateKey(now.AddDate(0, 0, -i))
		out.Last7Days = append(out.Last7Days, DailyTotal{Date: key, Total: byDay[key]})
	}

	rawProducts, err := u.store.GetAll(ctx, repo.CollectionProducts)
	if err != nil {
		return DashboardOutput{}, err
	}
	products, err := repo.DecodeAll[model.Product](rawProducts)
	if err != nil {
		return DashboardOutput{}, err
	}
	for _, p := range products {
		if p.Stock < lowStockThreshold {
			out.LowStock++
		}
	}

	return out, nil
}

// 売上CSV。periodはall/today/week。
func (u *ReportUsecase) ExportSalesCSV(ctx context.Context, w io.Writer, period string) error {
	sales, err := u.ListSales(ctx)
	if err != nil {
		return err
	}

	now := u.clock.Now()
	filtered := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		created := time.UnixMilli(s.CreatedAt)
		switch period {
		case "", "all":
		case "today":
			if dateKey(created) != dateKey(now) {
				continue
			}
		case "week":
			if created.Before(now.AddDate(0, 0, -7)) {
				continue
			}
		default:
			return NewValidationError("period", "must be all, today or week")
		}
		filtered = append(filtered, s)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "createdAt", "items", "total", "amountPaid", "change", "paymentMethod", "paymentReference"}); err != nil {
		return err
	}
	for _, s := range filtered {
		parts := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			parts = append(parts, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}
		row := []string{
			s.ID,
			time.UnixMilli(s.CreatedAt).UTC().Format(time.RFC3339),
			strings.Join(parts, "; "),
			strconv.FormatInt(s.Total, 10),
			strconv.FormatInt(s.AmountPaid, 10),
			strconv.FormatInt(s.Change, 10),
			string(s.PaymentMethod),
			s.PaymentReference,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
