package scrape

import (
	"errors"
	"fmt"
)

// ErrPageNotFound marks a game whose boxscore page 404'd on both the primary
// and the fallback URL. The game is unrecoverable and should be skipped.
var ErrPageNotFound = errors.New("scrape: boxscore page not found")

// StatusError is any non-200, non-404 response. It is surfaced unmodified:
// the pipeline deliberately does not retry against the source site.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scrape: unexpected status %d for %s", e.Code, e.URL)
}

// MissingTableError is returned when an expected stat table is absent from an
// otherwise valid page. It always names the table id that was looked for.
type MissingTableError struct {
	TableID string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("scrape: stat table %q not found in page", e.TableID)
}

// MalformedRowError is returned when a table cannot be rectangularized, is
// structurally too short to slice, or a required cast fails. Values are never
// silently coerced.
type MalformedRowError struct {
	TableID string
	Reason  string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("scrape: malformed row in table %q: %s", e.TableID, e.Reason)
}
