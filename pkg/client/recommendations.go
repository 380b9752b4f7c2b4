package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RecommendationService handles recommendation-related API calls
type RecommendationService struct {
	client *Client
}

// RecommendationListOptions contains options for listing recommendations
type RecommendationListOptions struct {
	ListOptions
	RunID          *string  `json:"run_id,omitempty"`
	Status         *string  `json:"status,omitempty"` // pending, actioned, dismissed, expired
	DetectionClass *string  `json:"detection_class,omitempty"`
	PolicyRoute    *string  `json:"policy_route,omitempty"` // auto_queue, manual_review
	MinConfidence  *float64 `json:"min_confidence,omitempty"`
}

// List retrieves a list of recommendations
func (s *RecommendationService) List(ctx context.Context, opts *RecommendationListOptions) ([]Recommendation, error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		if opts.RunID != nil {
			query.Set("run_id", *opts.RunID)
		}
		if opts.Status != nil {
			query.Set("status", *opts.Status)
		}
		if opts.DetectionClass != nil {
			query.Set("detection_class", *opts.DetectionClass)
		}
		if opts.PolicyRoute != nil {
			query.Set("policy_route", *opts.PolicyRoute)
		}
		if opts.MinConfidence != nil {
			query.Set("min_confidence", strconv.FormatFloat(*opts.MinConfidence, 'f', -1, 64))
		}
	}

	path := "/api/v1/recommendations"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page struct {
		Items []Recommendation `json:"data"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return page.Items, nil
}

// Get retrieves a single recommendation by ID
func (s *RecommendationService) Get(ctx context.Context, id string) (*Recommendation, error) {
	path := fmt.Sprintf("/api/v1/recommendations/%s", url.PathEscape(id))

	var recommendation Recommendation
	if err := s.client.doRequest(ctx, "GET", path, nil, &recommendation); err != nil {
		return nil, err
	}

	return &recommendation, nil
}

// Dismiss marks a recommendation as dismissed
func (s *RecommendationService) Dismiss(ctx context.Context, id string) (*Recommendation, error) {
	path := fmt.Sprintf("/api/v1/recommendations/%s/dismiss", url.PathEscape(id))

	var recommendation Recommendation
	if err := s.client.doRequest(ctx, "POST", path, nil, &recommendation); err != nil {
		return nil, err
	}

	return &recommendation, nil
}

// Savings aggregates potential savings over pending recommendations
func (s *RecommendationService) Savings(ctx context.Context) (*SavingsTotals, error) {
	var totals SavingsTotals
	if err := s.client.doRequest(ctx, "GET", "/api/v1/recommendations/savings", nil, &totals); err != nil {
		return nil, err
	}

	return &totals, nil
}
