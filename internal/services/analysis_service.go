package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/domain/classification"
	"github.com/wastegate/wastegate/internal/pkg/logger"
)

// Narrative sources
const (
	AnalysisSourceOpenAI   = "openai"
	AnalysisSourceTemplate = "template"
)

// RunAnalysis is an operator-facing narrative for one classification run
type RunAnalysis struct {
	RunID       string    `json:"run_id"`
	TenantID    string    `json:"tenant_id"`
	Narrative   string    `json:"narrative"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AnalysisService renders narrative summaries of classification runs.
// Summaries are advisory text only; they never feed back into
// classification or gating decisions.
type AnalysisService struct {
	runs   classification.Service
	client *openai.Client
	model  string
	logger *logger.Logger
}

// NewAnalysisService creates an analysis service. Without an OpenAI API
// key it falls back to a deterministic template narrative.
func NewAnalysisService(runs classification.Service, cfg *config.Config, log *logger.Logger) *AnalysisService {
	var client *openai.Client
	if cfg.OpenAI.APIKey != "" {
		client = openai.NewClient(cfg.OpenAI.APIKey)
	}

	model := cfg.OpenAI.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &AnalysisService{
		runs:   runs,
		client: client,
		model:  model,
		logger: log,
	}
}

// SummarizeRun builds a narrative for one run
func (s *AnalysisService) SummarizeRun(ctx context.Context, tenantID, runID string) (*RunAnalysis, error) {
	run, err := s.runs.GetRun(ctx, tenantID, runID)
	if err != nil {
		return nil, err
	}

	recs, _, err := s.runs.ListRecommendations(ctx, tenantID, classification.Filter{RunID: runID}, 20, 0)
	if err != nil {
		return nil, err
	}

	findings, _, err := s.runs.ListFindings(ctx, tenantID, classification.FindingFilter{RunID: runID}, 20, 0)
	if err != nil {
		return nil, err
	}

	analysis := &RunAnalysis{
		RunID:       run.ID,
		TenantID:    run.TenantID,
		Source:      AnalysisSourceTemplate,
		GeneratedAt: time.Now().UTC(),
	}

	fallback := templateNarrative(run, recs, findings)

	if s.client == nil {
		analysis.Narrative = fallback
		return analysis, nil
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: analysisPrompt(run, recs, findings),
		}},
		MaxTokens: 300,
	})
	if err != nil || len(resp.Choices) == 0 {
		if err != nil {
			s.logger.WithError(err).Warn("OpenAI summary failed, using template narrative")
		}
		analysis.Narrative = fallback
		return analysis, nil
	}

	analysis.Narrative = strings.TrimSpace(resp.Choices[0].Message.Content)
	analysis.Source = AnalysisSourceOpenAI
	return analysis, nil
}

// templateNarrative is the deterministic fallback summary
func templateNarrative(run *classification.Run, recs []*classification.Recommendation, findings []*classification.ArchFinding) string {
	sum := run.Summary

	if sum.TotalRecommendations == 0 && sum.TotalFindings == 0 {
		return fmt.Sprintf("Run %s found no waste recommendations or architecture findings in the scanned resources.", run.ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s produced %d waste recommendation(s) and %d architecture finding(s), with an estimated monthly savings of $%.0f to $%.0f.",
		run.ID, sum.TotalRecommendations, sum.TotalFindings, sum.SavingsLowUSD, sum.SavingsHighUSD)

	if len(sum.ByDetectionClass) > 0 {
		b.WriteString(" Waste by class: ")
		b.WriteString(countBreakdown(sum.ByDetectionClass))
		b.WriteString(".")
	}

	if top := topRecommendation(recs); top != nil {
		fmt.Fprintf(&b, " The largest single saving is %s on %s (about $%.0f per month, %s).",
			top.RequiredAction, top.ResourceID, top.SavingsMidUSD, top.PolicyRoute)
	}

	if len(sum.ByFindingType) > 0 {
		b.WriteString(" Architecture issues: ")
		b.WriteString(countBreakdown(sum.ByFindingType))
		b.WriteString(".")
	}

	if len(findings) > 0 {
		fmt.Fprintf(&b, " Highest-risk finding: %s (%s).", findings[0].FindingType, findings[0].RiskLabel)
	}

	return b.String()
}

// countBreakdown renders a map as "a (2), b (1)" in deterministic order
func countBreakdown(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s (%d)", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

// topRecommendation picks the recommendation with the largest mid savings
func topRecommendation(recs []*classification.Recommendation) *classification.Recommendation {
	var top *classification.Recommendation
	for _, r := range recs {
		if top == nil || r.SavingsMidUSD > top.SavingsMidUSD {
			top = r
		}
	}
	return top
}

// analysisPrompt builds the model prompt from a run digest
func analysisPrompt(run *classification.Run, recs []*classification.Recommendation, findings []*classification.ArchFinding) string {
	var b strings.Builder
	b.WriteString("You are summarizing a cloud cost-audit run for an operator. ")
	b.WriteString("Write 3-4 plain sentences covering what was found, the estimated savings, and the single most impactful action. ")
	b.WriteString("Mention only resources listed below.\n\n")

	sum := run.Summary
	fmt.Fprintf(&b, "Recommendations: %d, findings: %d, savings $%.0f-$%.0f/month.\n",
		sum.TotalRecommendations, sum.TotalFindings, sum.SavingsLowUSD, sum.SavingsHighUSD)

	for _, r := range recs {
		fmt.Fprintf(&b, "- %s: %s, action %s, ~$%.0f/month, route %s\n",
			r.ResourceID, r.DetectionClass, r.RequiredAction, r.SavingsMidUSD, r.PolicyRoute)
	}
	for _, f := range findings {
		fmt.Fprintf(&b, "- finding %s on %s, risk %s, action %s\n",
			f.FindingType, f.ResourceID, f.RiskLabel, f.RequiredAction)
	}

	return b.String()
}
