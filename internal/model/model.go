// Package model defines the domain types used across the application.
package model

import "time"

// UnknownInt marks a numeric listing field the site did not provide.
const UnknownInt = -1

// Filter represents one monitored search: a unique human-readable name and
// the site query parameters serialized verbatim into each request. Unknown
// parameter keys are passed through untouched.
type Filter struct {
	Name   string            `yaml:"name" json:"name"`
	Params map[string]string `yaml:"params" json:"params"`
}

// Listing is one canonical classifieds entry. ID is the site-assigned
// external id; FirstSeen is assigned by this system the first time the id
// is observed for a filter and never changes afterwards.
type Listing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Price     int       `json:"price"`
	Year      int       `json:"year"`
	Mileage   int       `json:"mileage"`
	Location  string    `json:"location,omitempty"`
	URL       string    `json:"url"`
	FirstSeen time.Time `json:"first_seen"`
}

// FilterState is the persisted snapshot for one filter: every listing seen
// in the most recent successful cycle, keyed by external id.
type FilterState struct {
	Listings  map[string]Listing `json:"listings"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// NewFilterState returns an empty state, the baseline for a filter that has
// never been persisted.
func NewFilterState() FilterState {
	return FilterState{Listings: make(map[string]Listing)}
}

// CycleResult records the outcome of one filter's pass within a cycle.
// It is never persisted.
type CycleResult struct {
	Filter   string
	Fetched  int
	Skipped  int
	New      []Listing
	Notified int
	Err      error
}

// Status is the aggregate outcome of a cycle over all configured filters.
type Status int

// Aggregate cycle outcomes.
const (
	StatusDone     Status = iota // every filter completed, or no filters configured
	StatusDegraded               // some filters failed, at least one completed
	StatusFailed                 // every filter failed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusDegraded:
		return "degraded"
	default:
		return "failed"
	}
}
