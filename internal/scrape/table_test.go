package scrape

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// statTableHTML builds one team's stat table markup the way the source site
// lays it out: a decorative group-header row, then the real header row, then
// body rows whose first cell is a th.
func statTableHTML(id string, headers []string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<table id=%q>`, id)
	fmt.Fprintf(&b, `<tr><th colspan="%d">Basic Box Score Stats</th></tr>`, len(headers))
	b.WriteString("<tr>")
	for _, h := range headers {
		fmt.Fprintf(&b, "<th>%s</th>", h)
	}
	b.WriteString("</tr>")
	for _, row := range rows {
		b.WriteString("<tr>")
		for i, cell := range row {
			if i == 0 {
				fmt.Fprintf(&b, "<th>%s</th>", cell)
			} else {
				fmt.Fprintf(&b, "<td>%s</td>", cell)
			}
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</table>")
	return b.String()
}

func pageHTML(tables ...string) []byte {
	return []byte("<html><body>" + strings.Join(tables, "") + "</body></html>")
}

func TestExtractTeamTable(t *testing.T) {
	html := pageHTML(statTableHTML("box-BOS-game-basic",
		[]string{"Starters", "MP", "PTS"},
		[][]string{
			{"Jaylen Brown", "34:12", "28"},
			{"Team Totals", "240", "112"},
		},
	))

	doc, err := ParseDocument(html)
	require.NoError(t, err)

	table, err := ExtractTeamTable(doc, "BOS", StatsBasic)
	require.NoError(t, err)
	require.Equal(t, "box-BOS-game-basic", table.ID)
	require.Equal(t, []string{"Starters", "MP", "PTS"}, table.Headers)
	require.Len(t, table.Rows, 2)
	require.Equal(t, "Jaylen Brown", table.Rows[0][0].String)
	require.Equal(t, "28", table.Rows[0][2].String)
}

func TestExtractTeamTableMissing(t *testing.T) {
	doc, err := ParseDocument(pageHTML())
	require.NoError(t, err)

	_, err = ExtractTeamTable(doc, "BOS", StatsBasic)

	var missing *MissingTableError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "box-BOS-game-basic", missing.TableID)
	require.Contains(t, err.Error(), "box-BOS-game-basic")
}

func TestExtractTableHeadersFromSecondRow(t *testing.T) {
	// The group-header row must never leak into the headers.
	html := pageHTML(statTableHTML("box-LAL-game-basic",
		[]string{"Starters", "MP"},
		[][]string{{"LeBron James", "36:01"}},
	))

	doc, err := ParseDocument(html)
	require.NoError(t, err)

	table, err := ExtractTeamTable(doc, "LAL", StatsBasic)
	require.NoError(t, err)
	require.Equal(t, []string{"Starters", "MP"}, table.Headers)
	require.NotContains(t, table.Headers, "Basic Box Score Stats")
}

func TestExtractTableRaggedRowsPadded(t *testing.T) {
	// A row missing its trailing cells comes back right-padded with nulls.
	html := pageHTML(statTableHTML("box-BOS-game-basic",
		[]string{"Starters", "MP", "PTS", "+/-"},
		[][]string{
			{"Full Row", "12:00", "8", "+4"},
			{"Short Row", "10:00"},
		},
	))

	doc, err := ParseDocument(html)
	require.NoError(t, err)

	table, err := ExtractTeamTable(doc, "BOS", StatsBasic)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	require.Len(t, table.Rows[1], 4)
	require.False(t, table.Rows[1][2].Valid)
	require.False(t, table.Rows[1][3].Valid)
	// Padding never disturbs the cells that were present.
	require.Equal(t, "Short Row", table.Rows[1][0].String)
	require.Equal(t, "10:00", table.Rows[1][1].String)
}

func TestExtractTableHeadersTruncatedToWidth(t *testing.T) {
	// More headers than the widest row: extras are dropped from the right.
	html := pageHTML(statTableHTML("box-BOS-game-basic",
		[]string{"Starters", "MP", "PTS", "+/-"},
		[][]string{
			{"A", "1:00"},
			{"B", "2:00"},
		},
	))

	doc, err := ParseDocument(html)
	require.NoError(t, err)

	table, err := ExtractTeamTable(doc, "BOS", StatsBasic)
	require.NoError(t, err)
	require.Equal(t, []string{"Starters", "MP"}, table.Headers)
}

func TestExtractTableWiderThanHeaders(t *testing.T) {
	html := pageHTML(statTableHTML("box-BOS-game-basic",
		[]string{"Starters", "MP"},
		[][]string{{"A", "1:00", "99"}},
	))

	doc, err := ParseDocument(html)
	require.NoError(t, err)

	_, err = ExtractTeamTable(doc, "BOS", StatsBasic)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
}

func TestExtractTableTooFewRows(t *testing.T) {
	html := pageHTML(`<table id="box-BOS-game-basic"><tr><th>Group</th></tr><tr><th>Starters</th></tr></table>`)

	doc, err := ParseDocument(html)
	require.NoError(t, err)

	_, err = ExtractTeamTable(doc, "BOS", StatsBasic)

	var malformed *MalformedRowError
	require.ErrorAs(t, err, &malformed)
}
