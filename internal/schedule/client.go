package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RawGame is one schedule record as published by the bulk season download.
// Score pointers stay nil when the record is incomplete (unplayed or
// malformed games); the normalizer drops those rows.
type RawGame struct {
	StartTime     string `json:"start_time"`
	AwayTeam      string `json:"away_team"`
	AwayTeamScore *int   `json:"away_team_score"`
	HomeTeam      string `json:"home_team"`
	HomeTeamScore *int   `json:"home_team_score"`
}

// SeasonLabel names a season by its closing year, e.g. 2024 -> "2023-2024".
func SeasonLabel(year int) string {
	return fmt.Sprintf("%d-%d", year-1, year)
}

// LoadSeasonFile reads one season's schedule JSON file.
func LoadSeasonFile(path string) ([]RawGame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule file: %w", err)
	}

	var games []RawGame
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("decode schedule file %s: %w", path, err)
	}
	return games, nil
}

// LoadSeasons concatenates the schedule files for the given years, in year
// order, from dir. Files are named schedule_<label>.json.
func LoadSeasons(dir string, years []int) ([]RawGame, error) {
	var all []RawGame
	for _, year := range years {
		path := filepath.Join(dir, fmt.Sprintf("schedule_%s.json", SeasonLabel(year)))
		games, err := LoadSeasonFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, games...)
	}
	return all, nil
}
