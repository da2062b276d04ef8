package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// WorkflowRun is the normalized view of one workflow run.
type WorkflowRun struct {
	ID         int64     `json:"id"`
	Number     int       `json:"number"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	Conclusion string    `json:"conclusion"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Branch     string    `json:"branch"`
	Event      string    `json:"event"`
}

// ListRunsOptions filters and pages the run listing.
type ListRunsOptions struct {
	Branch  string
	PerPage int
	Page    int
}

type workflowRunsResponse struct {
	TotalCount   int `json:"total_count"`
	WorkflowRuns []struct {
		ID         int64     `json:"id"`
		RunNumber  int       `json:"run_number"`
		Name       string    `json:"name"`
		Status     string    `json:"status"`
		Conclusion string    `json:"conclusion"`
		HTMLURL    string    `json:"html_url"`
		CreatedAt  time.Time `json:"created_at"`
		UpdatedAt  time.Time `json:"updated_at"`
		HeadBranch string    `json:"head_branch"`
		Event      string    `json:"event"`
	} `json:"workflow_runs"`
}

// ListRuns lists recent workflow runs for a repository, newest first as
// returned by the provider.
func (c *Client) ListRuns(ctx context.Context, owner, repo string, opts ListRunsOptions) ([]WorkflowRun, error) {
	path := fmt.Sprintf("/repos/%s/%s/actions/runs", owner, repo)

	query := url.Values{}
	if opts.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Branch != "" {
		query.Set("branch", opts.Branch)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow runs: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp)
	}

	var parsed workflowRunsResponse
	if err := decodeResponse(resp, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode workflow runs response: %w", err)
	}

	runs := make([]WorkflowRun, 0, len(parsed.WorkflowRuns))
	for _, r := range parsed.WorkflowRuns {
		runs = append(runs, WorkflowRun{
			ID:         r.ID,
			Number:     r.RunNumber,
			Name:       r.Name,
			Status:     r.Status,
			Conclusion: r.Conclusion,
			URL:        r.HTMLURL,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			Branch:     r.HeadBranch,
			Event:      r.Event,
		})
	}
	return runs, nil
}
