package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoxscoreURL(t *testing.T) {
	cases := []struct {
		name     string
		date     time.Time
		fallback bool
		want     string
	}{
		{
			name: "before cutover, no shift",
			date: time.Date(1998, time.March, 14, 0, 0, 0, 0, time.UTC),
			want: "https://www.basketball-reference.com/boxscores/199803140BOS.html",
		},
		{
			name: "day before cutover, no shift",
			date: time.Date(2000, time.June, 19, 0, 0, 0, 0, time.UTC),
			want: "https://www.basketball-reference.com/boxscores/200006190BOS.html",
		},
		{
			name: "cutover date itself shifts back one day",
			date: time.Date(2000, time.June, 20, 0, 0, 0, 0, time.UTC),
			want: "https://www.basketball-reference.com/boxscores/200006190BOS.html",
		},
		{
			name: "modern date shifts back one day",
			date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: "https://www.basketball-reference.com/boxscores/202312310BOS.html",
		},
		{
			name:     "fallback never shifts, even after cutover",
			date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			fallback: true,
			want:     "https://www.basketball-reference.com/boxscores/202401010BOS.html",
		},
		{
			name:     "fallback before cutover",
			date:     time.Date(1998, time.March, 14, 0, 0, 0, 0, time.UTC),
			fallback: true,
			want:     "https://www.basketball-reference.com/boxscores/199803140BOS.html",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			got := BoxscoreURL(BaseURL, test.date, "BOS", test.fallback)
			require.Equal(t, test.want, got)
		})
	}
}

func TestTableID(t *testing.T) {
	require.Equal(t, "box-BOS-game-basic", TableID("BOS", StatsBasic))
	require.Equal(t, "box-LAL-game-advanced", TableID("LAL", StatsAdvanced))
}
