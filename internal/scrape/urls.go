package scrape

import (
	"fmt"
	"time"
)

// BaseURL of the source site.
const BaseURL = "https://www.basketball-reference.com"

// Stats table variants published per team per game.
const (
	StatsBasic    = "basic"
	StatsAdvanced = "advanced"
)

// urlCutover is the date the source site's publishing convention changed:
// from here on the page path uses the day before the scheduled date.
var urlCutover = time.Date(2000, time.June, 20, 0, 0, 0, 0, time.UTC)

// BoxscoreURL computes the boxscore page URL for a game played on date with
// the given home-team abbreviation. The primary URL (fallback=false) applies
// the day-shift rule for dates on or after the cutover; the fallback URL
// never shifts and is only tried after the primary returns not-found.
func BoxscoreURL(base string, date time.Time, homeAbbr string, fallback bool) string {
	d := date
	if !fallback && !d.Before(urlCutover) {
		d = d.AddDate(0, 0, -1)
	}
	return fmt.Sprintf("%s/boxscores/%s0%s.html", base, d.Format("20060102"), homeAbbr)
}

// TableID returns the DOM id of a team's stat table on the boxscore page.
func TableID(teamAbbr, statsType string) string {
	return fmt.Sprintf("box-%s-game-%s", teamAbbr, statsType)
}
