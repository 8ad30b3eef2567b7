package scrape

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/fortuna/hardwood/internal/store"
)

// Source column abbreviations used by the assembler and normalizer.
const (
	colPlayer    = "Starters"
	colMinutes   = "MP"
	colPlusMinus = "+/-"
)

// Minutes-played sentinels the source site uses for players who sat out.
var zeroMinuteSentinels = map[string]bool{
	"Did Not Play":  true,
	"Not With Team": true,
}

// columnNames is the fixed 1:1 mapping from source abbreviations to target
// schema names. Downstream consumers depend on it exactly; it must stay
// bijective. MP maps to seconds_played because the minutes field is converted
// to whole seconds during the cast pass.
var columnNames = map[string]string{
	"Starters": "player_id",
	"MP":       "seconds_played",
	"FG":       "made_field_goal",
	"FGA":      "attempted_field_goal",
	"FG%":      "field_goal_percent",
	"3P":       "made_three_point",
	"3PA":      "attempted_three_point",
	"3P%":      "three_point_percent",
	"FT":       "made_free_throw",
	"FTA":      "attempted_free_throw",
	"FT%":      "free_throw_percent",
	"ORB":      "offensive_rebounds",
	"DRB":      "defensive_rebounds",
	"TRB":      "total_rebounds",
	"AST":      "assists",
	"STL":      "steals",
	"BLK":      "blocks",
	"TOV":      "turnovers",
	"PF":       "personal_fouls",
	"PTS":      "points",
	"+/-":      "plus_minus",
}

// TargetColumn maps a source abbreviation to its schema name.
func TargetColumn(abbr string) (string, bool) {
	name, ok := columnNames[abbr]
	return name, ok
}

// SourceColumn is the reverse of TargetColumn.
func SourceColumn(name string) (string, bool) {
	for abbr, target := range columnNames {
		if target == name {
			return abbr, true
		}
	}
	return "", false
}

// NormalizePlayerRows runs the two normalization phases over assembled player
// rows: first sentinel rewriting (strings to canonical strings or nulls),
// then type casting. Keeping the phases strict makes a failure attributable
// to exactly one of them.
func NormalizePlayerRows(rows []PlayerRow) ([]store.PlayerBoxscoreRow, error) {
	out := make([]store.PlayerBoxscoreRow, 0, len(rows))
	for _, row := range rows {
		cells := normalizeSentinels(row.Cells)

		c := caster{cells: cells}
		r := store.PlayerBoxscoreRow{
			GameID:              row.GameID,
			Team:                row.Team,
			Opponent:            row.Opponent,
			Outcome:             row.Outcome,
			Starter:             row.Starter,
			PlayerID:            c.text(colPlayer),
			SecondsPlayed:       c.seconds(colMinutes),
			MadeFieldGoal:       c.int32("FG"),
			AttemptedFieldGoal:  c.int32("FGA"),
			FieldGoalPercent:    c.percent("FG%"),
			MadeThreePoint:      c.int32("3P"),
			AttemptedThreePoint: c.int32("3PA"),
			ThreePointPercent:   c.percent("3P%"),
			MadeFreeThrow:       c.int32("FT"),
			AttemptedFreeThrow:  c.int32("FTA"),
			FreeThrowPercent:    c.percent("FT%"),
			OffensiveRebounds:   c.int32("ORB"),
			DefensiveRebounds:   c.int32("DRB"),
			TotalRebounds:       c.int32("TRB"),
			Assists:             c.int32("AST"),
			Steals:              c.int32("STL"),
			Blocks:              c.int32("BLK"),
			Turnovers:           c.int32("TOV"),
			PersonalFouls:       c.int32("PF"),
			Points:              c.int32("PTS"),
			PlusMinus:           c.nullInt32(colPlusMinus),
		}
		if c.err != nil {
			return nil, &MalformedRowError{Reason: fmt.Sprintf("player %q: %v", r.PlayerID, c.err)}
		}
		out = append(out, r)
	}
	return out, nil
}

// NormalizeTotalsRows casts assembled team-totals rows. The totals line
// reports minutes as whole team minutes (e.g. "240"), which the seconds
// conversion accepts alongside the MM:SS form.
func NormalizeTotalsRows(rows []TotalsRow) ([]store.TeamTotalsRow, error) {
	out := make([]store.TeamTotalsRow, 0, len(rows))
	for _, row := range rows {
		cells := normalizeSentinels(row.Cells)

		c := caster{cells: cells}
		r := store.TeamTotalsRow{
			GameID:              row.GameID,
			Team:                row.Team,
			Opponent:            row.Opponent,
			Outcome:             row.Outcome,
			Location:            row.Location,
			SecondsPlayed:       c.seconds(colMinutes),
			MadeFieldGoal:       c.int32("FG"),
			AttemptedFieldGoal:  c.int32("FGA"),
			FieldGoalPercent:    c.percent("FG%"),
			MadeThreePoint:      c.int32("3P"),
			AttemptedThreePoint: c.int32("3PA"),
			ThreePointPercent:   c.percent("3P%"),
			MadeFreeThrow:       c.int32("FT"),
			AttemptedFreeThrow:  c.int32("FTA"),
			FreeThrowPercent:    c.percent("FT%"),
			OffensiveRebounds:   c.int32("ORB"),
			DefensiveRebounds:   c.int32("DRB"),
			TotalRebounds:       c.int32("TRB"),
			Assists:             c.int32("AST"),
			Steals:              c.int32("STL"),
			Blocks:              c.int32("BLK"),
			Turnovers:           c.int32("TOV"),
			PersonalFouls:       c.int32("PF"),
			Points:              c.int32("PTS"),
		}
		if c.err != nil {
			return nil, &MalformedRowError{Reason: fmt.Sprintf("totals for %s: %v", row.Team, c.err)}
		}
		out = append(out, r)
	}
	return out, nil
}

// normalizeSentinels is phase one: rewrite the source site's sentinel values
// into canonical strings or nulls so the cast phase only ever sees castable
// text. The input map is not mutated.
func normalizeSentinels(cells map[string]sql.NullString) map[string]sql.NullString {
	out := make(map[string]sql.NullString, len(cells))
	for k, v := range cells {
		out[k] = v
	}

	if mp, ok := out[colMinutes]; ok && mp.Valid && zeroMinuteSentinels[mp.String] {
		out[colMinutes] = sql.NullString{String: "00:00", Valid: true}
	}
	for _, pct := range []string{"FG%", "3P%", "FT%"} {
		if v, ok := out[pct]; ok && v.Valid && v.String == "" {
			out[pct] = sql.NullString{}
		}
	}
	if pm, ok := out[colPlusMinus]; ok && pm.Valid {
		out[colPlusMinus] = sql.NullString{String: strings.TrimPrefix(pm.String, "+"), Valid: true}
	}

	return out
}

// caster is phase two: typed reads over sentinel-normalized cells. The first
// failure sticks so callers check err once per row.
type caster struct {
	cells map[string]sql.NullString
	err   error
}

func (c *caster) get(col string) (sql.NullString, bool) {
	v, ok := c.cells[col]
	if !ok && c.err == nil {
		c.err = fmt.Errorf("missing column %q", col)
	}
	return v, ok
}

func (c *caster) text(col string) string {
	v, _ := c.get(col)
	return v.String
}

func (c *caster) int32(col string) int {
	v, ok := c.get(col)
	if !ok || c.err != nil {
		return 0
	}
	if !v.Valid {
		c.err = fmt.Errorf("column %q is null", col)
		return 0
	}
	n, err := strconv.ParseInt(v.String, 10, 32)
	if err != nil {
		c.err = fmt.Errorf("cast %s=%q to int: %w", col, v.String, err)
		return 0
	}
	return int(n)
}

func (c *caster) nullInt32(col string) sql.NullInt32 {
	v, ok := c.cells[col]
	if !ok || !v.Valid || v.String == "" {
		// Old seasons omit the plus/minus column entirely; the padded
		// null survives as a null, never a zero.
		return sql.NullInt32{}
	}
	n, err := strconv.ParseInt(v.String, 10, 32)
	if err != nil {
		if c.err == nil {
			c.err = fmt.Errorf("cast %s=%q to int: %w", col, v.String, err)
		}
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(n), Valid: true}
}

func (c *caster) percent(col string) sql.NullFloat64 {
	v, ok := c.get(col)
	if !ok || c.err != nil || !v.Valid {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(v.String, 32)
	if err != nil {
		c.err = fmt.Errorf("cast %s=%q to float: %w", col, v.String, err)
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

// seconds converts a minutes-played value to total whole seconds. Player rows
// use MM:SS; the team totals row reports plain whole minutes.
func (c *caster) seconds(col string) int {
	v, ok := c.get(col)
	if !ok || c.err != nil {
		return 0
	}
	if !v.Valid {
		c.err = fmt.Errorf("column %q is null", col)
		return 0
	}

	parts := strings.Split(v.String, ":")
	switch len(parts) {
	case 1:
		mins, err := strconv.Atoi(parts[0])
		if err != nil {
			c.err = fmt.Errorf("cast %s=%q to seconds: %w", col, v.String, err)
			return 0
		}
		return mins * 60
	case 2:
		mins, errM := strconv.Atoi(parts[0])
		secs, errS := strconv.Atoi(parts[1])
		if errM != nil || errS != nil {
			c.err = fmt.Errorf("cast %s=%q to seconds: bad MM:SS", col, v.String)
			return 0
		}
		return mins*60 + secs
	default:
		c.err = fmt.Errorf("cast %s=%q to seconds: bad MM:SS", col, v.String)
		return 0
	}
}
