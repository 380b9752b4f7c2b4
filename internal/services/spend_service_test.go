package services

import (
	"context"
	"testing"
	"time"

	"github.com/wastegate/wastegate/internal/domain/spend"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/testutil"
)

func newSpendFixture(t *testing.T) (spend.Service, *testutil.MockSpendRepository) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	repo := testutil.NewMockSpendRepository()
	return NewSpendService(repo, log), repo
}

func TestSpendService_RecordSavings(t *testing.T) {
	svc, repo := newSpendFixture(t)
	ctx := context.Background()

	actionID := "act-1"
	rec, err := svc.RecordSavings(ctx, "t1", &actionID, "i-1", 42.5)
	if err != nil {
		t.Fatalf("RecordSavings() error = %v", err)
	}

	if rec.ID == "" {
		t.Error("record ID should be assigned")
	}
	if rec.AmountUSD != 42.5 {
		t.Errorf("AmountUSD = %v, want 42.5", rec.AmountUSD)
	}
	if rec.ActionID == nil || *rec.ActionID != "act-1" {
		t.Errorf("ActionID = %v, want act-1", rec.ActionID)
	}
	if !rec.RealizedOn.Equal(rec.RealizedOn.UTC().Truncate(24 * time.Hour)) {
		t.Errorf("RealizedOn = %v, want UTC midnight", rec.RealizedOn)
	}
	if len(repo.Savings) != 1 {
		t.Errorf("stored records = %d, want 1", len(repo.Savings))
	}

	if _, err := svc.RecordSavings(ctx, "", nil, "i-1", 10); err == nil {
		t.Error("RecordSavings() without tenant ID should fail")
	}
	if _, err := svc.RecordSavings(ctx, "t1", nil, "i-1", -1); err == nil {
		t.Error("RecordSavings() with negative amount should fail")
	}
}

func TestSpendService_RecordCost(t *testing.T) {
	svc, _ := newSpendFixture(t)
	ctx := context.Background()

	rec, err := svc.RecordCost(ctx, &spend.CostRecord{TenantID: "t1", AmountUSD: 120, ServiceName: "compute"})
	if err != nil {
		t.Fatalf("RecordCost() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("record ID should be assigned")
	}
	if rec.Currency != "USD" {
		t.Errorf("Currency = %s, want USD", rec.Currency)
	}

	if _, err := svc.RecordCost(ctx, &spend.CostRecord{AmountUSD: 10}); err == nil {
		t.Error("RecordCost() without tenant ID should fail")
	}
	if _, err := svc.RecordCost(ctx, &spend.CostRecord{TenantID: "t1", AmountUSD: -1}); err == nil {
		t.Error("RecordCost() with negative amount should fail")
	}
}

func TestSpendService_DailyReport(t *testing.T) {
	svc, _ := newSpendFixture(t)
	ctx := context.Background()

	if _, err := svc.RecordSavings(ctx, "t1", nil, "i-1", 30); err != nil {
		t.Fatalf("RecordSavings() error = %v", err)
	}
	if _, err := svc.RecordSavings(ctx, "t1", nil, "i-2", 20); err != nil {
		t.Fatalf("RecordSavings() error = %v", err)
	}
	if _, err := svc.RecordSavings(ctx, "other", nil, "i-3", 99); err != nil {
		t.Fatalf("RecordSavings() error = %v", err)
	}

	report, err := svc.DailyReport(ctx, "t1", time.Now())
	if err != nil {
		t.Fatalf("DailyReport() error = %v", err)
	}
	if report.TotalUSD != 50 {
		t.Errorf("TotalUSD = %v, want 50", report.TotalUSD)
	}
	if report.Records != 2 {
		t.Errorf("Records = %d, want 2", report.Records)
	}
	if !report.Day.Equal(time.Now().UTC().Truncate(24 * time.Hour)) {
		t.Errorf("Day = %v, want today at UTC midnight", report.Day)
	}

	// Yesterday has nothing
	report, err = svc.DailyReport(ctx, "t1", time.Now().AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("DailyReport() error = %v", err)
	}
	if report.TotalUSD != 0 || report.Records != 0 {
		t.Errorf("yesterday = %v USD in %d records, want empty", report.TotalUSD, report.Records)
	}
}

func TestSpendService_MonthlyReport(t *testing.T) {
	svc, repo := newSpendFixture(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if _, err := svc.RecordSavings(ctx, "t1", nil, "i-1", 75); err != nil {
		t.Fatalf("RecordSavings() error = %v", err)
	}
	if _, err := svc.RecordCost(ctx, &spend.CostRecord{TenantID: "t1", AmountUSD: 400}); err != nil {
		t.Fatalf("RecordCost() error = %v", err)
	}

	// A record from last month stays out of this month's report
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	if err := repo.CreateSavings(ctx, &spend.SavingsRecord{TenantID: "t1", AmountUSD: 999, RealizedOn: lastMonth}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	report, err := svc.MonthlyReport(ctx, "t1", now)
	if err != nil {
		t.Fatalf("MonthlyReport() error = %v", err)
	}
	if report.SavingsUSD != 75 {
		t.Errorf("SavingsUSD = %v, want 75", report.SavingsUSD)
	}
	if report.CostUSD != 400 {
		t.Errorf("CostUSD = %v, want 400", report.CostUSD)
	}
	if report.Month != now.Format("2006-01") {
		t.Errorf("Month = %s, want %s", report.Month, now.Format("2006-01"))
	}
}

func TestSpendService_ListSavings_Range(t *testing.T) {
	svc, repo := newSpendFixture(t)
	ctx := context.Background()

	today := time.Now().UTC()
	for i, amount := range []float64{10, 20, 30} {
		rec := &spend.SavingsRecord{
			TenantID:   "t1",
			AmountUSD:  amount,
			RealizedOn: today.AddDate(0, 0, -i),
		}
		if err := repo.CreateSavings(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	records, total, err := svc.ListSavings(ctx, "t1", today.AddDate(0, 0, -1), today, 10, 0)
	if err != nil {
		t.Fatalf("ListSavings() error = %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 within range", total)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}
