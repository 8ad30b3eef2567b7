package store

type migration struct {
	version string
	stmt    string
}

// migrations is the ordered schema history. Statements are idempotent so a
// wiped schema_migrations table does not break re-runs.
var migrations = []migration{
	{
		version: "001_create_teams",
		stmt: `
			CREATE TABLE IF NOT EXISTS teams (
				id INTEGER PRIMARY KEY,
				abbreviation VARCHAR(4) NOT NULL UNIQUE,
				full_name TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE
			)
		`,
	},
	{
		version: "002_create_games",
		stmt: `
			CREATE TABLE IF NOT EXISTS games (
				id INTEGER PRIMARY KEY,
				home_team_id INTEGER NOT NULL REFERENCES teams(id),
				home_team_score INTEGER,
				away_team_id INTEGER NOT NULL REFERENCES teams(id),
				away_team_score INTEGER,
				date DATE NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_games_date ON games(date)
		`,
	},
	{
		version: "003_create_player_boxscores",
		stmt: `
			CREATE TABLE IF NOT EXISTS player_boxscores (
				id SERIAL PRIMARY KEY,
				game_id INTEGER NOT NULL REFERENCES games(id),
				team VARCHAR(4) NOT NULL,
				opponent VARCHAR(4) NOT NULL,
				outcome SMALLINT NOT NULL,
				starter SMALLINT NOT NULL,
				player_id TEXT NOT NULL,
				seconds_played INTEGER NOT NULL,
				made_field_goal INTEGER NOT NULL,
				attempted_field_goal INTEGER NOT NULL,
				field_goal_percent REAL,
				made_three_point INTEGER NOT NULL,
				attempted_three_point INTEGER NOT NULL,
				three_point_percent REAL,
				made_free_throw INTEGER NOT NULL,
				attempted_free_throw INTEGER NOT NULL,
				free_throw_percent REAL,
				offensive_rebounds INTEGER NOT NULL,
				defensive_rebounds INTEGER NOT NULL,
				total_rebounds INTEGER NOT NULL,
				assists INTEGER NOT NULL,
				steals INTEGER NOT NULL,
				blocks INTEGER NOT NULL,
				turnovers INTEGER NOT NULL,
				personal_fouls INTEGER NOT NULL,
				points INTEGER NOT NULL,
				plus_minus INTEGER
			);
			CREATE INDEX IF NOT EXISTS idx_player_boxscores_game ON player_boxscores(game_id)
		`,
	},
	{
		version: "004_create_team_totals",
		stmt: `
			CREATE TABLE IF NOT EXISTS team_totals (
				id SERIAL PRIMARY KEY,
				game_id INTEGER NOT NULL REFERENCES games(id),
				team VARCHAR(4) NOT NULL,
				opponent VARCHAR(4) NOT NULL,
				outcome SMALLINT NOT NULL,
				location SMALLINT NOT NULL,
				seconds_played INTEGER NOT NULL,
				made_field_goal INTEGER NOT NULL,
				attempted_field_goal INTEGER NOT NULL,
				field_goal_percent REAL,
				made_three_point INTEGER NOT NULL,
				attempted_three_point INTEGER NOT NULL,
				three_point_percent REAL,
				made_free_throw INTEGER NOT NULL,
				attempted_free_throw INTEGER NOT NULL,
				free_throw_percent REAL,
				offensive_rebounds INTEGER NOT NULL,
				defensive_rebounds INTEGER NOT NULL,
				total_rebounds INTEGER NOT NULL,
				assists INTEGER NOT NULL,
				steals INTEGER NOT NULL,
				blocks INTEGER NOT NULL,
				turnovers INTEGER NOT NULL,
				personal_fouls INTEGER NOT NULL,
				points INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_team_totals_game ON team_totals(game_id)
		`,
	},
}
