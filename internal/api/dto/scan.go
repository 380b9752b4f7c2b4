package dto

import "time"

// SubmitScanRequest carries one scan payload to classify. Keys of ScanResults
// are detection classes; values are lists of resource records.
type SubmitScanRequest struct {
	Source      string                 `json:"source,omitempty" validate:"omitempty,oneof=api cli job"`
	ScanResults map[string]interface{} `json:"scanResults" validate:"required"`
}

// ScanRunDTO represents one classification run in API responses
type ScanRunDTO struct {
	ID              string        `json:"id"`
	Source          string        `json:"source"`
	Summary         RunSummaryDTO `json:"summary"`
	Recommendations int           `json:"recommendations"`
	Findings        int           `json:"findings"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// RunSummaryDTO aggregates what a run produced
type RunSummaryDTO struct {
	TotalRecommendations int            `json:"totalRecommendations"`
	TotalFindings        int            `json:"totalFindings"`
	ByDetectionClass     map[string]int `json:"byDetectionClass,omitempty"`
	ByFindingType        map[string]int `json:"byFindingType,omitempty"`
	Savings              SavingsBand    `json:"savings"`
}

// ScanResultDTO is the combined payload returned by a scan submission
type ScanResultDTO struct {
	Run             ScanRunDTO          `json:"run"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	Findings        []FindingDTO        `json:"findings"`
}

// RunAnalysisDTO is a narrative summary of one run
type RunAnalysisDTO struct {
	RunID       string    `json:"runId"`
	Narrative   string    `json:"narrative"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generatedAt"`
}
