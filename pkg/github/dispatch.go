package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DispatchRequest identifies the workflow to trigger and carries the
// encoded configuration as its inputs.
type DispatchRequest struct {
	Owner    string
	Repo     string
	Workflow string
	Ref      string
	// Format names the codec that produced Config.
	Format string
	// Config is the codec output string.
	Config string
}

type dispatchBody struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs"`
}

// Dispatch triggers a workflow run with the encoded configuration. The
// provider answers 204 No Content on success; every other status maps to a
// typed *APIError. Never retried.
func (c *Client) Dispatch(ctx context.Context, req DispatchRequest) error {
	path := fmt.Sprintf("/repos/%s/%s/actions/workflows/%s/dispatches", req.Owner, req.Repo, req.Workflow)
	body := dispatchBody{
		Ref: req.Ref,
		Inputs: map[string]string{
			"format": req.Format,
			"config": req.Config,
		},
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return fmt.Errorf("failed to dispatch workflow: %w", err)
	}

	if resp.StatusCode != http.StatusNoContent {
		return classifyStatus(resp)
	}
	closeBody(resp.Body)
	return nil
}

// ValidateConnection checks that the token can reach the repository.
func (c *Client) ValidateConnection(ctx context.Context, owner, repo string) error {
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	resp, err := c.doRequest(ctx, http.MethodGet, path, url.Values{}, nil)
	if err != nil {
		return fmt.Errorf("failed to reach provider: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp)
	}
	closeBody(resp.Body)
	return nil
}
