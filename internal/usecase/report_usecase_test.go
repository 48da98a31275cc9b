package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Divarzky/jajanan-rizky/internal/domain/model"
	"github.com/Divarzky/jajanan-rizky/internal/infra/store"
	repo "github.com/Divarzky/jajanan-rizky/internal/repository"
	"github.com/Divarzky/jajanan-rizky/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	store  repo.Store
	report *usecase.ReportUsecase
	clock  *fakeClock
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	kv := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2025, 6, 8, 20, 0, 0, 0, time.UTC)}
	return &reportFixture{
		store:  kv,
		report: usecase.NewReportUsecase(kv, clock),
		clock:  clock,
	}
}

func (f *reportFixture) putSale(t *testing.T, id string, at time.Time, total int64) {
	t.Helper()
	sale := model.Sale{
		ID:            id,
		CreatedAt:     at.UnixMilli(),
		Items:         []model.SaleItem{{ProductID: "p-1", Name: "Es Teh", Price: total, Quantity: 1}},
		Total:         total,
		AmountPaid:    total,
		PaymentMethod: model.PaymentCash,
	}
	require.NoError(t, f.store.Put(context.Background(), repo.CollectionSales, sale.ID, sale))
}

func TestReportUsecase_ListSales_NewestFirst(t *testing.T) {
	f := newReportFixture(t)
	now := f.clock.now

	f.putSale(t, "s-old", now.Add(-2*time.Hour), 5000)
	f.putSale(t, "s-new", now, 6000)

	sales, err := f.report.ListSales(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "s-new", sales[0].ID)
	assert.Equal(t, "s-old", sales[1].ID)
}

func TestReportUsecase_Dashboard(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	now := f.clock.now

	// 今日2件、昨日1件、8日前1件（7日集計の外）
	f.putSale(t, "s-1", now, 5000)
	f.putSale(t, "s-2", now.Add(-time.Hour), 6000)
	f.putSale(t, "s-3", now.AddDate(0, 0, -1), 7000)
	f.putSale(t, "s-4", now.AddDate(0, 0, -8), 9000)

	// 在庫僅少は閾値5未満
	for _, p := range []model.Product{
		{ID: "p-1", Name: "Es Teh", Price: 5000, Stock: 4},
		{ID: "p-2", Name: "Tahu Walik", Price: 6000, Stock: 5},
		{ID: "p-3", Name: "Kopi", Price: 7000, Stock: 0},
	} {
		require.NoError(t, f.store.Put(ctx, repo.CollectionProducts, p.ID, p))
	}

	out, err := f.report.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(11000), out.TodayTotal)
	assert.Equal(t, 2, out.TodayCount)
	assert.Equal(t, 2, out.LowStock)

	require.Len(t, out.Last7Days, 7)
	assert.Equal(t, "2025-06-02", out.Last7Days[0].Date)
	assert.Equal(t, "2025-06-08", out.Last7Days[6].Date)
	assert.Equal(t, int64(11000), out.Last7Days[6].Total)
	assert.Equal(t, int64(7000), out.Last7Days[5].Total)
	assert.Equal(t, int64(0), out.Last7Days[0].Total)
}

func TestReportUsecase_ExportSalesCSV_Periods(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	now := f.clock.now

	f.putSale(t, "s-today", now, 5000)
	f.putSale(t, "s-3d", now.AddDate(0, 0, -3), 6000)
	f.putSale(t, "s-30d", now.AddDate(0, 0, -30), 7000)

	countRows := func(period string) int {
		var buf strings.Builder
		require.NoError(t, f.report.ExportSalesCSV(ctx, &buf, period))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		return len(lines) - 1 // ヘッダを除く
	}

	assert.Equal(t, 3, countRows("all"))
	assert.Equal(t, 3, countRows(""))
	assert.Equal(t, 1, countRows("today"))
	assert.Equal(t, 2, countRows("week"))
}

func TestReportUsecase_ExportSalesCSV_InvalidPeriod(t *testing.T) {
	f := newReportFixture(t)

	var buf strings.Builder
	err := f.report.ExportSalesCSV(context.Background(), &buf, "year")

	var ve *usecase.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestReportUsecase_ExportSalesCSV_Content(t *testing.T) {
	f := newReportFixture(t)
	f.putSale(t, "s-1", f.clock.now, 5000)

	var buf strings.Builder
	require.NoError(t, f.report.ExportSalesCSV(context.Background(), &buf, "all"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "id,createdAt,items,total,amountPaid,change,paymentMethod,paymentReference"))
	assert.Contains(t, out, "Es Teh x1")
	assert.Contains(t, out, "cash")
}
