package schedule

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/hardwood/internal/teams"
)

func intp(v int) *int { return &v }

func rawGame(start, away, home string, awayScore, homeScore int) RawGame {
	return RawGame{
		StartTime:     start,
		AwayTeam:      away,
		AwayTeamScore: intp(awayScore),
		HomeTeam:      home,
		HomeTeamScore: intp(homeScore),
	}
}

func newTestNormalizer() *Normalizer {
	return NewNormalizer(teams.NewResolver(), zerolog.Nop())
}

func TestNormalize(t *testing.T) {
	n := newTestNormalizer()

	games, err := n.Normalize([]RawGame{
		rawGame("2023-10-24T19:30:00-04:00", "Los Angeles Lakers", "Denver Nuggets", 107, 119),
		rawGame("2023-10-25T19:00:00-04:00", "Boston Celtics", "New York Knicks", 108, 104),
	}, nil)
	require.NoError(t, err)
	require.Len(t, games, 2)

	first := games[0]
	require.Equal(t, 1, first.ID)
	require.Equal(t, int32(119), first.HomeTeamScore.Int32)
	require.Equal(t, int32(107), first.AwayTeamScore.Int32)

	denver, err := teams.NewResolver().Resolve("DEN")
	require.NoError(t, err)
	require.Equal(t, denver.ID, first.HomeTeamID)

	require.Equal(t, 2, games[1].ID)
}

func TestNormalizeDropsIncompleteRows(t *testing.T) {
	n := newTestNormalizer()

	unplayed := rawGame("2024-04-01T19:00:00-04:00", "Boston Celtics", "Miami Heat", 0, 0)
	unplayed.HomeTeamScore = nil
	noDate := rawGame("", "Boston Celtics", "Miami Heat", 100, 90)

	games, err := n.Normalize([]RawGame{
		unplayed,
		noDate,
		rawGame("2024-04-02T19:00:00-04:00", "Boston Celtics", "Miami Heat", 100, 90),
	}, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, 1, games[0].ID)
}

func TestNormalizeSkipsUnknownTeams(t *testing.T) {
	n := newTestNormalizer()

	games, err := n.Normalize([]RawGame{
		rawGame("2024-04-02T19:00:00-04:00", "Springfield Tip-Offs", "Miami Heat", 100, 90),
		rawGame("2024-04-03T19:00:00-04:00", "Boston Celtics", "Miami Heat", 100, 90),
	}, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)
}

func TestNormalizeAllocatesAboveExisting(t *testing.T) {
	n := newTestNormalizer()

	existing := map[int]struct{}{1: {}, 2: {}, 1230: {}}
	games, err := n.Normalize([]RawGame{
		rawGame("2024-04-02T19:00:00-04:00", "Boston Celtics", "Miami Heat", 100, 90),
		rawGame("2024-04-03T19:00:00-04:00", "Boston Celtics", "Miami Heat", 100, 90),
	}, existing)
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, 1231, games[0].ID)
	require.Equal(t, 1232, games[1].ID)
}

func TestNormalizeCastsStartTimeToUTCDate(t *testing.T) {
	n := newTestNormalizer()

	// 11:30 PM Eastern is already the next day in UTC; the stored date
	// follows the UTC calendar.
	games, err := n.Normalize([]RawGame{
		rawGame("2024-01-15T23:30:00-05:00", "Boston Celtics", "Miami Heat", 100, 90),
	}, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC), games[0].Date)
}

func TestIDAllocator(t *testing.T) {
	a := NewIDAllocator(nil)
	require.Equal(t, 1, a.Next())
	require.Equal(t, 2, a.Next())

	a = NewIDAllocator(map[int]struct{}{5: {}, 17: {}})
	require.Equal(t, 18, a.Next())
}
