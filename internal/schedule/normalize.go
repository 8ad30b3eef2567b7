package schedule

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fortuna/hardwood/internal/store"
	"github.com/fortuna/hardwood/internal/teams"
)

// IDAllocator hands out game identifiers that never collide with identifiers
// already persisted: it always allocates strictly above the maximum id ever
// seen, so different games can never share an id across batches.
type IDAllocator struct {
	next int
}

// NewIDAllocator seeds the allocator from the set of ids already in use.
// With no prior ids, allocation starts at 1.
func NewIDAllocator(existing map[int]struct{}) *IDAllocator {
	max := 0
	for id := range existing {
		if id > max {
			max = id
		}
	}
	return &IDAllocator{next: max + 1}
}

// Next returns the next free identifier.
func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Normalizer turns raw schedule records into Game rows: drops incomplete
// records, resolves team identifiers, casts scores and the start timestamp,
// and assigns ids sequentially in schedule order.
type Normalizer struct {
	resolver *teams.Resolver
	log      zerolog.Logger
}

// NewNormalizer builds a normalizer over the given team resolver.
func NewNormalizer(resolver *teams.Resolver, log zerolog.Logger) *Normalizer {
	return &Normalizer{resolver: resolver, log: log}
}

// Normalize converts raw schedule rows into Game records. Rows with any
// missing required field are dropped; rows whose team name cannot be resolved
// are skipped with a logged notice (one bad row never aborts the batch).
func (n *Normalizer) Normalize(raw []RawGame, existing map[int]struct{}) ([]store.Game, error) {
	alloc := NewIDAllocator(existing)

	out := make([]store.Game, 0, len(raw))
	for _, rg := range raw {
		if rg.StartTime == "" || rg.HomeTeam == "" || rg.AwayTeam == "" ||
			rg.HomeTeamScore == nil || rg.AwayTeamScore == nil {
			continue
		}

		home, err := n.resolver.Resolve(rg.HomeTeam)
		if err != nil {
			n.log.Warn().Err(err).Str("home_team", rg.HomeTeam).Msg("skipping schedule row")
			continue
		}
		away, err := n.resolver.Resolve(rg.AwayTeam)
		if err != nil {
			n.log.Warn().Err(err).Str("away_team", rg.AwayTeam).Msg("skipping schedule row")
			continue
		}

		date, err := parseStartTime(rg.StartTime)
		if err != nil {
			return nil, err
		}

		out = append(out, store.Game{
			ID:            alloc.Next(),
			HomeTeamID:    home.ID,
			HomeTeamScore: sql.NullInt32{Int32: int32(*rg.HomeTeamScore), Valid: true},
			AwayTeamID:    away.ID,
			AwayTeamScore: sql.NullInt32{Int32: int32(*rg.AwayTeamScore), Valid: true},
			Date:          date,
		})
	}
	return out, nil
}

// parseStartTime casts a schedule timestamp to a calendar date (UTC).
func parseStartTime(s string) (time.Time, error) {
	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05-07:00", "2006-01-02T15:04:05", "2006-01-02"} {
		t, err = time.Parse(layout, s)
		if err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse start_time %q: %w", s, err)
}
