package client

import (
	"context"
	"net/url"
	"strconv"
)

// FindingService handles architecture finding API calls
type FindingService struct {
	client *Client
}

// FindingListOptions contains options for listing findings
type FindingListOptions struct {
	ListOptions
	RunID       *string `json:"run_id,omitempty"`
	FindingType *string `json:"finding_type,omitempty"`
	RiskLabel   *string `json:"risk_label,omitempty"` // low_risk, medium_risk, high_risk
}

// List retrieves a list of architecture findings
func (s *FindingService) List(ctx context.Context, opts *FindingListOptions) ([]Finding, error) {
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
		if opts.FindingType != nil {
			query.Set("finding_type", *opts.FindingType)
		}
		if opts.RiskLabel != nil {
			query.Set("risk_label", *opts.RiskLabel)
		}
	}

	path := "/api/v1/findings"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page struct {
		Items []Finding `json:"data"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return page.Items, nil
}
