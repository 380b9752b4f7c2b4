package client

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// SpendService handles the cost and savings ledger
type SpendService struct {
	client *Client
}

// RecordCostRequest ingests one observed spend entry from a billing export
type RecordCostRequest struct {
	Provider    string    `json:"provider,omitempty"`
	ServiceName string    `json:"serviceName,omitempty"`
	AmountUSD   float64   `json:"amountUsd"`
	Currency    string    `json:"currency,omitempty"`
	IncurredOn  time.Time `json:"incurredOn,omitempty"`
}

// SavingsListOptions bounds the savings listing window
type SavingsListOptions struct {
	ListOptions
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// RecordCost adds a cost entry to the tenant's ledger
func (s *SpendService) RecordCost(ctx context.Context, req RecordCostRequest) (*CostRecord, error) {
	var record CostRecord
	if err := s.client.doRequest(ctx, "POST", "/api/v1/spend/costs", req, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// Daily summarizes one UTC day of realized savings. A zero day means today.
func (s *SpendService) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	path := "/api/v1/spend/daily"
	if !day.IsZero() {
		path += "?day=" + day.Format("2006-01-02")
	}

	var report DailyReport
	if err := s.client.doRequest(ctx, "GET", path, nil, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// Monthly summarizes one calendar month of savings against observed cost.
// A zero month means the current month.
func (s *SpendService) Monthly(ctx context.Context, month time.Time) (*MonthlyReport, error) {
	path := "/api/v1/spend/monthly"
	if !month.IsZero() {
		path += "?month=" + month.Format("2006-01")
	}

	var report MonthlyReport
	if err := s.client.doRequest(ctx, "GET", path, nil, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// Savings lists realized savings records, most recent 30 days by default
func (s *SpendService) Savings(ctx context.Context, opts *SavingsListOptions) ([]SavingsRecord, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.From != nil {
			query.Set("from", opts.From.Format("2006-01-02"))
		}
		if opts.To != nil {
			query.Set("to", opts.To.Format("2006-01-02"))
		}
	}

	path := "/api/v1/spend/savings"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page struct {
		Items []SavingsRecord `json:"data"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return page.Items, nil
}
