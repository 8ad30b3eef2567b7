package scrape

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

// playerCells returns a complete, castable raw cell set. Tests override the
// columns under test.
func playerCells(overrides map[string]string) map[string]sql.NullString {
	base := map[string]string{
		"Starters": "Jaylen Brown",
		"MP":       "34:12",
		"FG":       "11",
		"FGA":      "20",
		"FG%":      ".550",
		"3P":       "3",
		"3PA":      "8",
		"3P%":      ".375",
		"FT":       "3",
		"FTA":      "4",
		"FT%":      ".750",
		"ORB":      "1",
		"DRB":      "6",
		"TRB":      "7",
		"AST":      "5",
		"STL":      "2",
		"BLK":      "1",
		"TOV":      "3",
		"PF":       "2",
		"PTS":      "28",
		"+/-":      "+12",
	}
	for k, v := range overrides {
		base[k] = v
	}
	cells := make(map[string]sql.NullString, len(base))
	for k, v := range base {
		cells[k] = sql.NullString{String: v, Valid: true}
	}
	return cells
}

func playerRowWith(overrides map[string]string) PlayerRow {
	return PlayerRow{
		GameID:   7,
		Team:     "BOS",
		Opponent: "LAL",
		Outcome:  1,
		Starter:  1,
		Cells:    playerCells(overrides),
	}
}

func TestNormalizePlayerRows(t *testing.T) {
	rows, err := NormalizePlayerRows([]PlayerRow{playerRowWith(nil)})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	require.Equal(t, "Jaylen Brown", r.PlayerID)
	require.Equal(t, 34*60+12, r.SecondsPlayed)
	require.Equal(t, 11, r.MadeFieldGoal)
	require.Equal(t, 20, r.AttemptedFieldGoal)
	require.InDelta(t, 0.550, r.FieldGoalPercent.Float64, 1e-6)
	require.True(t, r.FieldGoalPercent.Valid)
	require.Equal(t, 28, r.Points)
	// The leading plus sign is stripped before the cast.
	require.True(t, r.PlusMinus.Valid)
	require.Equal(t, int32(12), r.PlusMinus.Int32)
	require.Equal(t, "BOS", r.Team)
	require.Equal(t, 1, r.Outcome)
	require.Equal(t, 1, r.Starter)
}

func TestNormalizePlayerRowsZeroMinuteSentinels(t *testing.T) {
	for _, sentinel := range []string{"Did Not Play", "Not With Team"} {
		rows, err := NormalizePlayerRows([]PlayerRow{
			playerRowWith(map[string]string{"MP": sentinel}),
		})
		require.NoError(t, err, sentinel)
		require.Equal(t, 0, rows[0].SecondsPlayed, sentinel)
	}
}

func TestNormalizePlayerRowsEmptyPercentIsNull(t *testing.T) {
	rows, err := NormalizePlayerRows([]PlayerRow{
		playerRowWith(map[string]string{"3P%": ""}),
	})
	require.NoError(t, err)
	require.False(t, rows[0].ThreePointPercent.Valid)
	// The other percent columns are untouched.
	require.True(t, rows[0].FieldGoalPercent.Valid)
}

func TestNormalizePlayerRowsNegativePlusMinus(t *testing.T) {
	rows, err := NormalizePlayerRows([]PlayerRow{
		playerRowWith(map[string]string{"+/-": "-8"}),
	})
	require.NoError(t, err)
	require.Equal(t, int32(-8), rows[0].PlusMinus.Int32)
}

func TestNormalizePlayerRowsMissingPlusMinusStaysNull(t *testing.T) {
	row := playerRowWith(nil)
	// Old seasons: the column was padded in as a null cell.
	row.Cells["+/-"] = sql.NullString{}

	rows, err := NormalizePlayerRows([]PlayerRow{row})
	require.NoError(t, err)
	require.False(t, rows[0].PlusMinus.Valid)
}

func TestNormalizePlayerRowsBadCast(t *testing.T) {
	_, err := NormalizePlayerRows([]PlayerRow{
		playerRowWith(map[string]string{"PTS": "twenty"}),
	})

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
}

func TestNormalizePlayerRowsBadMinutes(t *testing.T) {
	_, err := NormalizePlayerRows([]PlayerRow{
		playerRowWith(map[string]string{"MP": "12:34:56"}),
	})

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
}

func TestNormalizeTotalsRows(t *testing.T) {
	cells := playerCells(map[string]string{"MP": "240", "PTS": "110"})
	delete(cells, "Starters")
	delete(cells, "+/-")

	rows, err := NormalizeTotalsRows([]TotalsRow{{
		GameID:   7,
		Team:     "BOS",
		Opponent: "LAL",
		Outcome:  1,
		Location: 1,
		Cells:    cells,
	}})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	// Team minutes come as plain whole minutes, not MM:SS.
	require.Equal(t, 240*60, r.SecondsPlayed)
	require.Equal(t, 110, r.Points)
	require.Equal(t, 1, r.Location)
}

func TestColumnNameMappingIsBijective(t *testing.T) {
	seen := make(map[string]string)
	for abbr, target := range columnNames {
		prev, dup := seen[target]
		require.False(t, dup, "target %q mapped from both %q and %q", target, prev, abbr)
		seen[target] = abbr

		back, ok := SourceColumn(target)
		require.True(t, ok)
		require.Equal(t, abbr, back)
	}
	require.Len(t, columnNames, 21)
}

func TestTargetColumn(t *testing.T) {
	name, ok := TargetColumn("MP")
	require.True(t, ok)
	require.Equal(t, "seconds_played", name)

	_, ok = TargetColumn("XYZ")
	require.False(t, ok)
}
