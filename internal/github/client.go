package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.dfds.cloud/copilot-seats-api/internal"
	"go.uber.org/zap"
)

const DefaultAPIBase = "https://api.github.com"
const apiVersion = "2022-11-28"
const PerPage = 100

const (
	endpointSeats        = "seats"
	endpointMembers      = "members"
	endpointGraphQLProxy = "graphql_proxy"
)

// StatusError is returned when GitHub answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// StatusCode returns the upstream status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

type Client struct {
	httpClient      *http.Client
	apiBase         string
	graphQLUpstream string
	logger          *zap.Logger
}

func NewClient(httpClient *http.Client, apiBase, graphQLUpstream string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &Client{
		httpClient:      httpClient,
		apiBase:         apiBase,
		graphQLUpstream: graphQLUpstream,
		logger:          logger,
	}
}

// SeatsEndpoint returns the billing seats URL for an organization
// (team and org scopes) or an enterprise (ent scope).
func (c *Client) SeatsEndpoint(scope, org, ent string) (string, error) {
	switch scope {
	case "team", "org":
		return fmt.Sprintf("%s/orgs/%s/copilot/billing/seats", c.apiBase, org), nil
	case "ent":
		return fmt.Sprintf("%s/enterprises/%s/copilot/billing/seats", c.apiBase, ent), nil
	default:
		return "", fmt.Errorf("unsupported scope %q", scope)
	}
}

func (c *Client) updateRateLimit(resp *http.Response) {
	if s := resp.Header.Get("X-RateLimit-Remaining"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			internal.RateLimitRemaining.Set(float64(n))
			if n == 0 {
				c.logger.Warn("github rate limit exhausted", zap.String("reset", resp.Header.Get("X-RateLimit-Reset")))
			}
		}
	}
}

func setHeaders(req *http.Request, authorization string) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", authorization)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
}

func observe(endpoint string, resp *http.Response, err error) {
	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	internal.UpstreamRequests.WithLabelValues(endpoint, code).Inc()
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.httpClient.Do(req)
	observe(endpoint, resp, err)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.updateRateLimit(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", req.URL.String(), err)
	}
	return nil
}

// ListSeatsPage fetches one page of seats, forwarding the caller's
// Authorization header verbatim.
func (c *Client) ListSeatsPage(ctx context.Context, endpoint, authorization string, page int) (*SeatsPage, error) {
	url := fmt.Sprintf("%s?per_page=%d&page=%d", endpoint, PerPage, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req, authorization)

	var resp SeatsPage
	if err := c.do(req, endpointSeats, &resp); err != nil {
		return nil, fmt.Errorf("listing copilot seats page %d: %w", page, err)
	}
	return &resp, nil
}

const membersQuery = `query($login: String!) {
  organization(login: $login) {
    membersWithRole(first: 100) {
      nodes {
        login
        email
      }
    }
  }
}`

type membersRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// FetchMemberEmails asks the GraphQL endpoint at url for the login and
// public email of the first 100 members of org.
func (c *Client) FetchMemberEmails(ctx context.Context, url, authorization, org string) ([]UserEmail, error) {
	body, err := json.Marshal(membersRequest{
		Query:     membersQuery,
		Variables: map[string]any{"login": org},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorization)

	var resp membersResponse
	if err := c.do(req, endpointMembers, &resp); err != nil {
		return nil, fmt.Errorf("fetching members of %q: %w", org, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("fetching members of %q: graphql error: %s", org, resp.Errors[0].Message)
	}
	if resp.Data.Organization == nil {
		return nil, fmt.Errorf("fetching members of %q: organization not found", org)
	}

	return resp.Data.Organization.MembersWithRole.Nodes, nil
}

// ProxyGraphQL forwards a GraphQL request body to GitHub and returns the
// upstream status and body untouched.
func (c *Client) ProxyGraphQL(ctx context.Context, authorization string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphQLUpstream, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	setHeaders(req, authorization)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	observe(endpointGraphQLProxy, resp, err)
	if err != nil {
		return 0, nil, fmt.Errorf("proxying graphql request: %w", err)
	}
	defer resp.Body.Close()
	c.updateRateLimit(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading graphql response: %w", err)
	}
	return resp.StatusCode, data, nil
}
