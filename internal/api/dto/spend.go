package dto

import "time"

// RecordCostRequest ingests one observed spend entry from a billing export
type RecordCostRequest struct {
	Provider    string    `json:"provider,omitempty"`
	ServiceName string    `json:"serviceName,omitempty"`
	AmountUSD   float64   `json:"amountUsd" validate:"required,gt=0"`
	Currency    string    `json:"currency,omitempty" validate:"omitempty,len=3"`
	IncurredOn  time.Time `json:"incurredOn,omitempty"`
}

// CostRecordDTO represents one cost ledger entry in API responses
type CostRecordDTO struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider,omitempty"`
	ServiceName string    `json:"serviceName,omitempty"`
	AmountUSD   float64   `json:"amountUsd"`
	Currency    string    `json:"currency"`
	IncurredOn  time.Time `json:"incurredOn"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SavingsRecordDTO represents one realized savings entry
type SavingsRecordDTO struct {
	ID         string    `json:"id"`
	ActionID   *string   `json:"actionId,omitempty"`
	ResourceID string    `json:"resourceId,omitempty"`
	AmountUSD  float64   `json:"amountUsd"`
	RealizedOn time.Time `json:"realizedOn"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DailyReportDTO summarizes one UTC day of realized savings
type DailyReportDTO struct {
	Day      string  `json:"day"`
	TotalUSD float64 `json:"totalUsd"`
	Records  int     `json:"records"`
}

// MonthlyReportDTO summarizes one calendar month of savings against spend
type MonthlyReportDTO struct {
	Month      string  `json:"month"`
	SavingsUSD float64 `json:"savingsUsd"`
	CostUSD    float64 `json:"costUsd"`
}
