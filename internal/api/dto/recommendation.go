package dto

import "time"

// RecommendationDTO represents a waste recommendation in API responses
type RecommendationDTO struct {
	ID             string      `json:"id"`
	RunID          string      `json:"runId"`
	ResourceID     string      `json:"resourceId"`
	Category       string      `json:"category"`
	DetectionClass string      `json:"detectionClass"`
	RequiredAction string      `json:"requiredAction"`
	PolicyRoute    string      `json:"policyRoute"`
	Confidence     float64     `json:"confidence"`
	Savings        SavingsBand `json:"savings"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// SavingsBand carries the low/mid/high monthly savings estimate in USD
type SavingsBand struct {
	LowUSD  float64 `json:"lowUsd"`
	MidUSD  float64 `json:"midUsd"`
	HighUSD float64 `json:"highUsd"`
}

// SavingsTotalsDTO aggregates potential savings over pending recommendations
type SavingsTotalsDTO struct {
	Count   int     `json:"count"`
	LowUSD  float64 `json:"lowUsd"`
	MidUSD  float64 `json:"midUsd"`
	HighUSD float64 `json:"highUsd"`
}
