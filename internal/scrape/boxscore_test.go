package scrape

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fortuna/hardwood/internal/store"
)

func statTable(id string, headers []string, rows [][]string) *RawStatTable {
	t := &RawStatTable{ID: id, Headers: headers}
	for _, row := range rows {
		cells := make([]sql.NullString, len(row))
		for i, v := range row {
			cells[i] = sql.NullString{String: v, Valid: true}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// fixtureTable builds a team table with five starters, the reserves
// separator, the given bench names, and a trailing totals row.
func fixtureTable(id string, starters, bench []string) *RawStatTable {
	rows := make([][]string, 0, len(starters)+len(bench)+2)
	for _, name := range starters {
		rows = append(rows, []string{name, "30:00", "10"})
	}
	rows = append(rows, []string{"Reserves", "", ""})
	for _, name := range bench {
		rows = append(rows, []string{name, "15:00", "5"})
	}
	rows = append(rows, []string{"Team Totals", "240", "100"})
	return statTable(id, []string{"Starters", "MP", "PTS"}, rows)
}

var fixtureGame = store.Game{
	ID:            7,
	HomeTeamID:    2,
	HomeTeamScore: sql.NullInt32{Int32: 110, Valid: true},
	AwayTeamID:    14,
	AwayTeamScore: sql.NullInt32{Int32: 100, Valid: true},
	Date:          time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
}

func TestAssemblePlayerRows(t *testing.T) {
	home := fixtureTable("box-BOS-game-basic",
		[]string{"H1", "H2", "H3", "H4", "H5"},
		[]string{"H6", "H7", "H8"})
	away := fixtureTable("box-LAL-game-basic",
		[]string{"A1", "A2", "A3", "A4", "A5"},
		[]string{"A6", "A7"})

	rows, err := AssemblePlayerRows(home, away, fixtureGame, "BOS", "LAL")
	require.NoError(t, err)

	// Every listed player survives; the separator and totals rows do not.
	require.Len(t, rows, 8+7)

	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Cells["Starters"].String
	}
	require.Equal(t, []string{"H1", "H2", "H3", "H4", "H5", "H6", "H7", "H8",
		"A1", "A2", "A3", "A4", "A5", "A6", "A7"}, names)
	require.NotContains(t, names, "Reserves")
	require.NotContains(t, names, "Team Totals")
}

func TestAssemblePlayerRowsStarterFlags(t *testing.T) {
	home := fixtureTable("box-BOS-game-basic",
		[]string{"H1", "H2", "H3", "H4", "H5"},
		[]string{"H6", "H7"})
	away := fixtureTable("box-LAL-game-basic",
		[]string{"A1", "A2", "A3", "A4", "A5"},
		[]string{"A6"})

	rows, err := AssemblePlayerRows(home, away, fixtureGame, "BOS", "LAL")
	require.NoError(t, err)

	for _, r := range rows {
		name := r.Cells["Starters"].String
		if name == "H6" || name == "H7" || name == "A6" {
			require.Equal(t, 0, r.Starter, name)
		} else {
			require.Equal(t, 1, r.Starter, name)
		}
	}
}

func TestAssemblePlayerRowsOutcome(t *testing.T) {
	home := fixtureTable("box-BOS-game-basic",
		[]string{"H1", "H2", "H3", "H4", "H5"}, []string{"H6"})
	away := fixtureTable("box-LAL-game-basic",
		[]string{"A1", "A2", "A3", "A4", "A5"}, []string{"A6"})

	// Home won 110-100: home rows carry 1, away rows 0.
	rows, err := AssemblePlayerRows(home, away, fixtureGame, "BOS", "LAL")
	require.NoError(t, err)
	for _, r := range rows {
		switch r.Team {
		case "BOS":
			require.Equal(t, 1, r.Outcome)
			require.Equal(t, "LAL", r.Opponent)
		case "LAL":
			require.Equal(t, 0, r.Outcome)
			require.Equal(t, "BOS", r.Opponent)
		}
	}

	// Flip the score and the outcomes flip with it.
	lost := fixtureGame
	lost.HomeTeamScore = sql.NullInt32{Int32: 95, Valid: true}
	rows, err = AssemblePlayerRows(home, away, lost, "BOS", "LAL")
	require.NoError(t, err)
	for _, r := range rows {
		if r.Team == "BOS" {
			require.Equal(t, 0, r.Outcome)
		} else {
			require.Equal(t, 1, r.Outcome)
		}
	}
}

func TestAssemblePlayerRowsTooShort(t *testing.T) {
	short := statTable("box-BOS-game-basic",
		[]string{"Starters", "MP", "PTS"},
		[][]string{
			{"H1", "30:00", "10"},
			{"H2", "30:00", "10"},
			{"Team Totals", "240", "20"},
		})
	away := fixtureTable("box-LAL-game-basic",
		[]string{"A1", "A2", "A3", "A4", "A5"}, []string{"A6"})

	_, err := AssemblePlayerRows(short, away, fixtureGame, "BOS", "LAL")

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, "box-BOS-game-basic", malformed.TableID)
}

func TestAssembleTotalsRows(t *testing.T) {
	home := fixtureTable("box-BOS-game-basic",
		[]string{"H1", "H2", "H3", "H4", "H5"}, []string{"H6"})
	away := fixtureTable("box-LAL-game-basic",
		[]string{"A1", "A2", "A3", "A4", "A5"}, []string{"A6"})

	rows, err := AssembleTotalsRows(home, away, fixtureGame, "BOS", "LAL")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	homeTotals, awayTotals := rows[0], rows[1]
	require.Equal(t, "BOS", homeTotals.Team)
	require.Equal(t, 1, homeTotals.Location)
	require.Equal(t, 1, homeTotals.Outcome)
	require.Equal(t, "LAL", awayTotals.Team)
	require.Equal(t, 0, awayTotals.Location)
	require.Equal(t, 0, awayTotals.Outcome)

	// The player-name column carries no meaning at the team level.
	require.NotContains(t, homeTotals.Cells, "Starters")
	require.Equal(t, "240", homeTotals.Cells["MP"].String)
	require.Equal(t, "100", homeTotals.Cells["PTS"].String)
}
