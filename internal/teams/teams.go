package teams

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownTeam is returned when an abbreviation or full name has no
	// entry in the reference table.
	ErrUnknownTeam = errors.New("teams: unknown team")

	// ErrIDRange is returned when a team ID falls outside the canonical list.
	ErrIDRange = errors.New("teams: team id out of range")
)

// Franchise is an immutable reference entry for one NBA franchise.
type Franchise struct {
	ID           int    `json:"id" db:"id"`
	Abbreviation string `json:"abbreviation" db:"abbreviation"`
	FullName     string `json:"full_name" db:"full_name"`
	IsActive     bool   `json:"is_active" db:"is_active"`
}

// canonical is the fixed franchise list. IDs are assigned 1-based from list
// position, so the order here is load-bearing: Abbreviation(teamID) indexes
// straight into this list. Append-only; never reorder.
var canonical = []Franchise{
	{Abbreviation: "ATL", FullName: "Atlanta Hawks", IsActive: true},
	{Abbreviation: "BOS", FullName: "Boston Celtics", IsActive: true},
	{Abbreviation: "BRK", FullName: "Brooklyn Nets", IsActive: true},
	{Abbreviation: "CHI", FullName: "Chicago Bulls", IsActive: true},
	{Abbreviation: "CHO", FullName: "Charlotte Hornets", IsActive: true},
	{Abbreviation: "CLE", FullName: "Cleveland Cavaliers", IsActive: true},
	{Abbreviation: "DAL", FullName: "Dallas Mavericks", IsActive: true},
	{Abbreviation: "DEN", FullName: "Denver Nuggets", IsActive: true},
	{Abbreviation: "DET", FullName: "Detroit Pistons", IsActive: true},
	{Abbreviation: "GSW", FullName: "Golden State Warriors", IsActive: true},
	{Abbreviation: "HOU", FullName: "Houston Rockets", IsActive: true},
	{Abbreviation: "IND", FullName: "Indiana Pacers", IsActive: true},
	{Abbreviation: "LAC", FullName: "Los Angeles Clippers", IsActive: true},
	{Abbreviation: "LAL", FullName: "Los Angeles Lakers", IsActive: true},
	{Abbreviation: "MEM", FullName: "Memphis Grizzlies", IsActive: true},
	{Abbreviation: "MIA", FullName: "Miami Heat", IsActive: true},
	{Abbreviation: "MIL", FullName: "Milwaukee Bucks", IsActive: true},
	{Abbreviation: "MIN", FullName: "Minnesota Timberwolves", IsActive: true},
	{Abbreviation: "NOP", FullName: "New Orleans Pelicans", IsActive: true},
	{Abbreviation: "NYK", FullName: "New York Knicks", IsActive: true},
	{Abbreviation: "OKC", FullName: "Oklahoma City Thunder", IsActive: true},
	{Abbreviation: "ORL", FullName: "Orlando Magic", IsActive: true},
	{Abbreviation: "PHI", FullName: "Philadelphia 76ers", IsActive: true},
	{Abbreviation: "PHO", FullName: "Phoenix Suns", IsActive: true},
	{Abbreviation: "POR", FullName: "Portland Trail Blazers", IsActive: true},
	{Abbreviation: "SAC", FullName: "Sacramento Kings", IsActive: true},
	{Abbreviation: "SAS", FullName: "San Antonio Spurs", IsActive: true},
	{Abbreviation: "TOR", FullName: "Toronto Raptors", IsActive: true},
	{Abbreviation: "UTA", FullName: "Utah Jazz", IsActive: true},
	{Abbreviation: "WAS", FullName: "Washington Wizards", IsActive: true},
	// Relocated or renamed franchises that still appear in historical
	// schedules and boxscore table ids.
	{Abbreviation: "SEA", FullName: "Seattle SuperSonics"},
	{Abbreviation: "NJN", FullName: "New Jersey Nets"},
	{Abbreviation: "VAN", FullName: "Vancouver Grizzlies"},
	{Abbreviation: "WSB", FullName: "Washington Bullets"},
	{Abbreviation: "NOH", FullName: "New Orleans Hornets"},
	{Abbreviation: "NOK", FullName: "New Orleans/Oklahoma City Hornets"},
	{Abbreviation: "CHA", FullName: "Charlotte Bobcats"},
	{Abbreviation: "CHH", FullName: "Charlotte Hornets (1988-2002)"},
	{Abbreviation: "KCK", FullName: "Kansas City Kings"},
	{Abbreviation: "SDC", FullName: "San Diego Clippers"},
}

// Resolver maps team abbreviations and full names to franchise entries and
// team IDs back to abbreviations. The backing list is fixed at construction
// and never mutated afterwards.
type Resolver struct {
	list   []Franchise
	byAbbr map[string]int
	byName map[string]int
}

// NewResolver builds a resolver over the canonical franchise list.
func NewResolver() *Resolver {
	return NewResolverWith(canonical)
}

// NewResolverWith builds a resolver over an explicit franchise list.
// IDs are assigned 1-based in list order, overriding any IDs already set.
// Tests use this to substitute a fixture set.
func NewResolverWith(list []Franchise) *Resolver {
	r := &Resolver{
		list:   make([]Franchise, len(list)),
		byAbbr: make(map[string]int, len(list)),
		byName: make(map[string]int, len(list)),
	}
	for i, f := range list {
		f.ID = i + 1
		r.list[i] = f
		if _, ok := r.byAbbr[f.Abbreviation]; !ok {
			r.byAbbr[f.Abbreviation] = i
		}
		name := strings.ToUpper(f.FullName)
		if _, ok := r.byName[name]; !ok {
			r.byName[name] = i
		}
	}
	return r
}

// Resolve looks up a franchise by abbreviation ("BOS") or full name
// ("Boston Celtics", case-insensitive).
func (r *Resolver) Resolve(identifier string) (Franchise, error) {
	id := strings.TrimSpace(identifier)
	if i, ok := r.byAbbr[id]; ok {
		return r.list[i], nil
	}
	if i, ok := r.byName[strings.ToUpper(id)]; ok {
		return r.list[i], nil
	}
	return Franchise{}, fmt.Errorf("%w: %q", ErrUnknownTeam, identifier)
}

// Abbreviation is the constant-time reverse lookup from team ID to
// abbreviation, relying on the 1-based positional ID invariant.
func (r *Resolver) Abbreviation(teamID int) (string, error) {
	if teamID < 1 || teamID > len(r.list) {
		return "", fmt.Errorf("%w: %d", ErrIDRange, teamID)
	}
	return r.list[teamID-1].Abbreviation, nil
}

// All returns the full franchise list in canonical order.
func (r *Resolver) All() []Franchise {
	out := make([]Franchise, len(r.list))
	copy(out, r.list)
	return out
}
