package github

import (
	"errors"
	"fmt"
)

var ErrMalformedSeat = errors.New("malformed seat")

type SeatsPage struct {
	TotalSeats int       `json:"total_seats"`
	Seats      []RawSeat `json:"seats"`
}

// RawSeat is one entry of the copilot billing seats listing as GitHub returns it.
type RawSeat struct {
	Assignee                *Assignee `json:"assignee"`
	AssigningTeam           *Team     `json:"assigning_team"`
	CreatedAt               string    `json:"created_at"`
	UpdatedAt               string    `json:"updated_at"`
	PendingCancellationDate string    `json:"pending_cancellation_date"`
	LastActivityAt          string    `json:"last_activity_at"`
	LastActivityEditor      string    `json:"last_activity_editor"`
	PlanType                string    `json:"plan_type"`
}

type Assignee struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"`
}

type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Seat is the normalized seat served to clients. Email is only set after
// enrichment.
type Seat struct {
	Login              string `json:"login"`
	ID                 int64  `json:"id"`
	Team               string `json:"team"`
	CreatedAt          string `json:"created_at"`
	LastActivityAt     string `json:"last_activity_at"`
	LastActivityEditor string `json:"last_activity_editor"`
	Email              string `json:"email,omitempty"`
}

// NewSeat maps a raw seat to a Seat. A seat without an assignee login is
// rejected; every other missing field is left at its zero value.
func NewSeat(raw RawSeat) (Seat, error) {
	if raw.Assignee == nil || raw.Assignee.Login == "" {
		return Seat{}, fmt.Errorf("%w: missing assignee login", ErrMalformedSeat)
	}

	seat := Seat{
		Login:              raw.Assignee.Login,
		ID:                 raw.Assignee.ID,
		CreatedAt:          raw.CreatedAt,
		LastActivityAt:     raw.LastActivityAt,
		LastActivityEditor: raw.LastActivityEditor,
	}
	if raw.AssigningTeam != nil {
		seat.Team = raw.AssigningTeam.Name
	}
	return seat, nil
}

// NewSeats maps every raw seat in order, stopping at the first malformed one.
func NewSeats(raw []RawSeat) ([]Seat, error) {
	seats := make([]Seat, 0, len(raw))
	for i, r := range raw {
		seat, err := NewSeat(r)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", i, err)
		}
		seats = append(seats, seat)
	}
	return seats, nil
}

type UserEmail struct {
	Login string `json:"login"`
	Email string `json:"email"`
}

type membersResponse struct {
	Data struct {
		Organization *struct {
			MembersWithRole struct {
				Nodes []UserEmail `json:"nodes"`
			} `json:"membersWithRole"`
		} `json:"organization"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type graphQLRequest struct {
	Query string `json:"query"`
}
