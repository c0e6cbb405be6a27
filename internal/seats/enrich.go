package seats

import (
	"context"

	"go.dfds.cloud/copilot-seats-api/internal"
	"go.dfds.cloud/copilot-seats-api/internal/github"
	"go.uber.org/zap"
)

// Enricher looks up organization member emails. Lookups are best effort.
type Enricher struct {
	client Client
	url    string
	org    string
}

func NewEnricher(client Client, url, org string) *Enricher {
	return &Enricher{client: client, url: url, org: org}
}

// Emails returns login/email pairs for up to 100 members of the configured
// organization. Any failure is logged and yields an empty result.
func (e *Enricher) Emails(ctx context.Context, logger *zap.Logger, authorization string) []github.UserEmail {
	emails, err := e.client.FetchMemberEmails(ctx, e.url, authorization, e.org)
	if err != nil {
		internal.EnrichmentFailures.Inc()
		logger.Error("error fetching user emails", zap.String("org", e.org), zap.Error(err))
		return []github.UserEmail{}
	}
	return emails
}

// Merge returns a copy of seats with Email set from the first entry in
// emails whose login matches exactly. Order is preserved.
func Merge(seats []github.Seat, emails []github.UserEmail) []github.Seat {
	byLogin := make(map[string]string, len(emails))
	for _, e := range emails {
		if _, seen := byLogin[e.Login]; !seen {
			byLogin[e.Login] = e.Email
		}
	}

	merged := make([]github.Seat, len(seats))
	for i, seat := range seats {
		seat.Email = byLogin[seat.Login]
		merged[i] = seat
	}
	return merged
}
