package scrape

import (
	"database/sql"
	"fmt"

	"github.com/fortuna/hardwood/internal/store"
)

// StarterCount is the source site's fixed convention: the first five listed
// players of each team are the starters, and the row right after them is the
// reserves separator.
const StarterCount = 5

// PlayerRow is one player's raw stat cells with the per-game columns already
// injected. Stat values remain untyped strings until the column normalizer
// runs.
type PlayerRow struct {
	GameID   int
	Team     string
	Opponent string
	Outcome  int
	Starter  int
	Cells    map[string]sql.NullString
}

// TotalsRow is one team's raw aggregate line with the per-game columns
// injected.
type TotalsRow struct {
	GameID   int
	Team     string
	Opponent string
	Outcome  int
	Location int
	Cells    map[string]sql.NullString
}

// AssemblePlayerRows combines both teams' raw tables into the unified player
// set, home rows first. Each team contributes its body rows minus the
// reserves separator (excluded by position, index StarterCount) and the
// trailing totals row.
func AssemblePlayerRows(home, away *RawStatTable, game store.Game, homeAbbr, awayAbbr string) ([]PlayerRow, error) {
	homeRows, err := teamPlayerRows(home, game, homeAbbr, awayAbbr, outcome(game, true))
	if err != nil {
		return nil, err
	}
	awayRows, err := teamPlayerRows(away, game, awayAbbr, homeAbbr, outcome(game, false))
	if err != nil {
		return nil, err
	}
	return append(homeRows, awayRows...), nil
}

func teamPlayerRows(t *RawStatTable, game store.Game, team, opponent string, outcome int) ([]PlayerRow, error) {
	// Validate the structural assumptions before slicing: five starters,
	// the separator, and a totals row must all be present.
	if len(t.Rows) < StarterCount+2 {
		return nil, &MalformedRowError{
			TableID: t.ID,
			Reason:  fmt.Sprintf("only %d body rows, need at least %d", len(t.Rows), StarterCount+2),
		}
	}

	out := make([]PlayerRow, 0, len(t.Rows)-2)
	for i, row := range t.Rows[:len(t.Rows)-1] {
		if i == StarterCount {
			continue
		}
		starter := 0
		if i < StarterCount {
			starter = 1
		}
		out = append(out, PlayerRow{
			GameID:   game.ID,
			Team:     team,
			Opponent: opponent,
			Outcome:  outcome,
			Starter:  starter,
			Cells:    cellMap(t.Headers, row),
		})
	}
	return out, nil
}

// AssembleTotalsRows takes each team's trailing aggregate row and prepends
// the per-game columns plus the location flag (1 home, 0 away). The player
// name and plus/minus columns carry no meaning at the team level and are
// dropped. Home precedes away.
func AssembleTotalsRows(home, away *RawStatTable, game store.Game, homeAbbr, awayAbbr string) ([]TotalsRow, error) {
	homeRow, err := teamTotalsRow(home, game, homeAbbr, awayAbbr, outcome(game, true), 1)
	if err != nil {
		return nil, err
	}
	awayRow, err := teamTotalsRow(away, game, awayAbbr, homeAbbr, outcome(game, false), 0)
	if err != nil {
		return nil, err
	}
	return []TotalsRow{homeRow, awayRow}, nil
}

func teamTotalsRow(t *RawStatTable, game store.Game, team, opponent string, outcome, location int) (TotalsRow, error) {
	if len(t.Rows) == 0 {
		return TotalsRow{}, &MalformedRowError{TableID: t.ID, Reason: "no body rows, expected a totals row"}
	}
	cells := cellMap(t.Headers, t.Rows[len(t.Rows)-1])
	delete(cells, colPlayer)
	delete(cells, colPlusMinus)
	return TotalsRow{
		GameID:   game.ID,
		Team:     team,
		Opponent: opponent,
		Outcome:  outcome,
		Location: location,
		Cells:    cells,
	}, nil
}

// outcome is the binary win indicator for one side of a game.
func outcome(game store.Game, homeTeam bool) int {
	homeWon := game.HomeTeamScore.Int32 > game.AwayTeamScore.Int32
	if homeTeam == homeWon {
		return 1
	}
	return 0
}

func cellMap(headers []string, row []sql.NullString) map[string]sql.NullString {
	cells := make(map[string]sql.NullString, len(headers))
	for i, h := range headers {
		if i < len(row) {
			cells[h] = row[i]
		}
	}
	return cells
}
