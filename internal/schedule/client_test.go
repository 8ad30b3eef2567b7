package schedule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeasonLabel(t *testing.T) {
	require.Equal(t, "2023-2024", SeasonLabel(2024))
	require.Equal(t, "1984-1985", SeasonLabel(1985))
}

func TestLoadSeasons(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("schedule_2022-2023.json", `[
		{"start_time": "2022-10-18T19:30:00-04:00", "away_team": "Philadelphia 76ers", "away_team_score": 117, "home_team": "Boston Celtics", "home_team_score": 126}
	]`)
	write("schedule_2023-2024.json", `[
		{"start_time": "2023-10-24T19:30:00-04:00", "away_team": "Los Angeles Lakers", "away_team_score": 107, "home_team": "Denver Nuggets", "home_team_score": 119},
		{"start_time": "2024-04-14T13:00:00-04:00", "away_team": "Chicago Bulls", "away_team_score": null, "home_team": "New York Knicks", "home_team_score": null}
	]`)

	games, err := LoadSeasons(dir, []int{2023, 2024})
	require.NoError(t, err)
	require.Len(t, games, 3)

	require.Equal(t, "Boston Celtics", games[0].HomeTeam)
	require.NotNil(t, games[0].HomeTeamScore)
	require.Equal(t, 126, *games[0].HomeTeamScore)

	// Unplayed games keep nil scores for the normalizer to drop.
	require.Nil(t, games[2].HomeTeamScore)
	require.Nil(t, games[2].AwayTeamScore)
}

func TestLoadSeasonsMissingFile(t *testing.T) {
	_, err := LoadSeasons(t.TempDir(), []int{1985})
	require.Error(t, err)
}
