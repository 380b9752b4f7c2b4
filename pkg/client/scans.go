package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ScanService handles scan ingestion and run inspection
type ScanService struct {
	client *Client
}

// SubmitScanRequest carries one scan payload to classify. Keys of ScanResults
// are detection classes; values are lists of resource records.
type SubmitScanRequest struct {
	Source      string                 `json:"source,omitempty"` // api, cli, job
	ScanResults map[string]interface{} `json:"scanResults"`
}

// Submit classifies a scan payload and returns the run with everything it produced
func (s *ScanService) Submit(ctx context.Context, req SubmitScanRequest) (*ScanResult, error) {
	var result ScanResult
	if err := s.client.doRequest(ctx, "POST", "/api/v1/scans", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List retrieves past classification runs, newest first
func (s *ScanService) List(ctx context.Context, opts *ListOptions) ([]ScanRun, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
	}

	path := "/api/v1/scans"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var page struct {
		Items []ScanRun `json:"data"`
	}
	if err := s.client.doRequest(ctx, "GET", path, nil, &page); err != nil {
		return nil, err
	}

	return page.Items, nil
}

// Get retrieves a single run by ID
func (s *ScanService) Get(ctx context.Context, id string) (*ScanRun, error) {
	path := fmt.Sprintf("/api/v1/scans/%s", url.PathEscape(id))

	var run ScanRun
	if err := s.client.doRequest(ctx, "GET", path, nil, &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// Analysis retrieves the narrative summary of a run
func (s *ScanService) Analysis(ctx context.Context, id string) (*RunAnalysis, error) {
	path := fmt.Sprintf("/api/v1/scans/%s/analysis", url.PathEscape(id))

	var analysis RunAnalysis
	if err := s.client.doRequest(ctx, "GET", path, nil, &analysis); err != nil {
		return nil, err
	}

	return &analysis, nil
}
