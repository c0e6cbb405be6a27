package seats

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"go.dfds.cloud/copilot-seats-api/internal/github"
	"go.uber.org/zap"
)

// Client is the part of the GitHub client the seats service relies on.
type Client interface {
	SeatsEndpoint(scope, org, ent string) (string, error)
	ListSeatsPage(ctx context.Context, endpoint, authorization string, page int) (*github.SeatsPage, error)
	FetchMemberEmails(ctx context.Context, url, authorization, org string) ([]github.UserEmail, error)
}

type Options struct {
	IsDataMocked bool
	// MockData holds the fixture files served in mock mode.
	MockData   fs.FS
	GithubOrg  string
	GraphQLURL string
}

type Request struct {
	Scope         Scope
	Org           string
	Ent           string
	Authorization string
	Logger        *zap.Logger
}

type Service struct {
	client   Client
	opts     Options
	enricher *Enricher
	logger   *zap.Logger
}

func NewService(client Client, opts Options, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		opts:     opts,
		enricher: NewEnricher(client, opts.GraphQLURL, opts.GithubOrg),
		logger:   logger,
	}
}

// Fetch returns the seats for the request scope, enriched with member
// emails in live mode. Every returned error is a *RequestError.
func (s *Service) Fetch(ctx context.Context, req Request) ([]github.Seat, error) {
	logger := req.Logger
	if logger == nil {
		logger = s.logger
	}

	if !req.Scope.Valid() {
		logger.Warn("rejecting request with unsupported scope", zap.String("scope", string(req.Scope)))
		return nil, errInvalidScope(req.Scope)
	}

	if s.opts.IsDataMocked {
		seats, err := s.mocked(req.Scope)
		if err != nil {
			logger.Error("failed to read mocked seats data", zap.Error(err))
			return nil, errMockData(err)
		}
		logger.Info("using mocked data", zap.Int("seats", len(seats)))
		return seats, nil
	}

	if req.Authorization == "" {
		logger.Error("no authentication provided")
		return nil, errNoAuthentication()
	}

	endpoint, err := s.client.SeatsEndpoint(string(req.Scope), req.Org, req.Ent)
	if err != nil {
		return nil, errInvalidScope(req.Scope)
	}

	seats, err := s.fetchAll(ctx, logger, endpoint, req.Authorization)
	if err != nil {
		logger.Error("error fetching seats data", zap.String("url", endpoint), zap.Error(err))
		status, _ := github.StatusCode(err)
		return nil, errUpstream(status, err)
	}

	emails := s.enricher.Emails(ctx, logger, req.Authorization)
	return Merge(seats, emails), nil
}

func (s *Service) fetchAll(ctx context.Context, logger *zap.Logger, endpoint, authorization string) ([]github.Seat, error) {
	logger.Info("fetching 1st page of seats data", zap.String("url", endpoint))

	first, err := s.client.ListSeatsPage(ctx, endpoint, authorization, 1)
	if err != nil {
		return nil, err
	}
	seats, err := github.NewSeats(first.Seats)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}

	totalPages := (first.TotalSeats + github.PerPage - 1) / github.PerPage
	for page := 2; page <= totalPages; page++ {
		logger.Debug("fetching seats page", zap.Int("page", page), zap.Int("totalPages", totalPages))

		resp, err := s.client.ListSeatsPage(ctx, endpoint, authorization, page)
		if err != nil {
			return nil, err
		}
		pageSeats, err := github.NewSeats(resp.Seats)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		seats = append(seats, pageSeats...)
	}

	return seats, nil
}

func (s *Service) mocked(scope Scope) ([]github.Seat, error) {
	if s.opts.MockData == nil {
		return nil, fmt.Errorf("no mock data configured")
	}

	data, err := fs.ReadFile(s.opts.MockData, scope.fixture())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", scope.fixture(), err)
	}

	var page github.SeatsPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", scope.fixture(), err)
	}

	return github.NewSeats(page.Seats)
}
