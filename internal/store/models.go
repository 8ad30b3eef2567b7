package store

import (
	"database/sql"
	"time"
)

// Game is one scheduled contest. The ID is assigned once by the schedule
// normalizer and never changes afterwards; it must stay unique across every
// batch ever persisted.
type Game struct {
	ID            int           `json:"id" db:"id"`
	HomeTeamID    int           `json:"home_team_id" db:"home_team_id"`
	HomeTeamScore sql.NullInt32 `json:"home_team_score" db:"home_team_score"`
	AwayTeamID    int           `json:"away_team_id" db:"away_team_id"`
	AwayTeamScore sql.NullInt32 `json:"away_team_score" db:"away_team_score"`
	Date          time.Time     `json:"date" db:"date"`
}

// PlayerBoxscoreRow is one player's line in one game, fully normalized to the
// target schema. Percentage fields are null when the player attempted no
// shots of that kind; plus/minus is null on pages that omit the column.
type PlayerBoxscoreRow struct {
	GameID              int             `json:"game_id" db:"game_id"`
	Team                string          `json:"team" db:"team"`
	Opponent            string          `json:"opponent" db:"opponent"`
	Outcome             int             `json:"outcome" db:"outcome"`
	Starter             int             `json:"starter" db:"starter"`
	PlayerID            string          `json:"player_id" db:"player_id"`
	SecondsPlayed       int             `json:"seconds_played" db:"seconds_played"`
	MadeFieldGoal       int             `json:"made_field_goal" db:"made_field_goal"`
	AttemptedFieldGoal  int             `json:"attempted_field_goal" db:"attempted_field_goal"`
	FieldGoalPercent    sql.NullFloat64 `json:"field_goal_percent" db:"field_goal_percent"`
	MadeThreePoint      int             `json:"made_three_point" db:"made_three_point"`
	AttemptedThreePoint int             `json:"attempted_three_point" db:"attempted_three_point"`
	ThreePointPercent   sql.NullFloat64 `json:"three_point_percent" db:"three_point_percent"`
	MadeFreeThrow       int             `json:"made_free_throw" db:"made_free_throw"`
	AttemptedFreeThrow  int             `json:"attempted_free_throw" db:"attempted_free_throw"`
	FreeThrowPercent    sql.NullFloat64 `json:"free_throw_percent" db:"free_throw_percent"`
	OffensiveRebounds   int             `json:"offensive_rebounds" db:"offensive_rebounds"`
	DefensiveRebounds   int             `json:"defensive_rebounds" db:"defensive_rebounds"`
	TotalRebounds       int             `json:"total_rebounds" db:"total_rebounds"`
	Assists             int             `json:"assists" db:"assists"`
	Steals              int             `json:"steals" db:"steals"`
	Blocks              int             `json:"blocks" db:"blocks"`
	Turnovers           int             `json:"turnovers" db:"turnovers"`
	PersonalFouls       int             `json:"personal_fouls" db:"personal_fouls"`
	Points              int             `json:"points" db:"points"`
	PlusMinus           sql.NullInt32   `json:"plus_minus" db:"plus_minus"`
}

// TeamAverages are a team's per-game means over a date range, aggregated from
// its totals rows.
type TeamAverages struct {
	Team             string          `json:"team"`
	Games            int             `json:"games"`
	Wins             int             `json:"wins"`
	Points           sql.NullFloat64 `json:"points"`
	TotalRebounds    sql.NullFloat64 `json:"total_rebounds"`
	Assists          sql.NullFloat64 `json:"assists"`
	Steals           sql.NullFloat64 `json:"steals"`
	Blocks           sql.NullFloat64 `json:"blocks"`
	Turnovers        sql.NullFloat64 `json:"turnovers"`
	FieldGoalPercent sql.NullFloat64 `json:"field_goal_percent"`
}

// TeamTotalsRow is one team's aggregate line in one game. Same stat columns
// as the player row minus the player identifier and plus/minus, plus the
// home/away location flag.
type TeamTotalsRow struct {
	GameID              int             `json:"game_id" db:"game_id"`
	Team                string          `json:"team" db:"team"`
	Opponent            string          `json:"opponent" db:"opponent"`
	Outcome             int             `json:"outcome" db:"outcome"`
	Location            int             `json:"location" db:"location"`
	SecondsPlayed       int             `json:"seconds_played" db:"seconds_played"`
	MadeFieldGoal       int             `json:"made_field_goal" db:"made_field_goal"`
	AttemptedFieldGoal  int             `json:"attempted_field_goal" db:"attempted_field_goal"`
	FieldGoalPercent    sql.NullFloat64 `json:"field_goal_percent" db:"field_goal_percent"`
	MadeThreePoint      int             `json:"made_three_point" db:"made_three_point"`
	AttemptedThreePoint int             `json:"attempted_three_point" db:"attempted_three_point"`
	ThreePointPercent   sql.NullFloat64 `json:"three_point_percent" db:"three_point_percent"`
	MadeFreeThrow       int             `json:"made_free_throw" db:"made_free_throw"`
	AttemptedFreeThrow  int             `json:"attempted_free_throw" db:"attempted_free_throw"`
	FreeThrowPercent    sql.NullFloat64 `json:"free_throw_percent" db:"free_throw_percent"`
	OffensiveRebounds   int             `json:"offensive_rebounds" db:"offensive_rebounds"`
	DefensiveRebounds   int             `json:"defensive_rebounds" db:"defensive_rebounds"`
	TotalRebounds       int             `json:"total_rebounds" db:"total_rebounds"`
	Assists             int             `json:"assists" db:"assists"`
	Steals              int             `json:"steals" db:"steals"`
	Blocks              int             `json:"blocks" db:"blocks"`
	Turnovers           int             `json:"turnovers" db:"turnovers"`
	PersonalFouls       int             `json:"personal_fouls" db:"personal_fouls"`
	Points              int             `json:"points" db:"points"`
}
