package scrape

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// RawStatTable is the generic tabular form of one HTML stat table: ordered
// headers plus rectangular rows of string-or-null cells. It lives only long
// enough to be consumed by the assembler.
type RawStatTable struct {
	ID      string
	Headers []string
	Rows    [][]sql.NullString
}

// ParseDocument parses a fetched page body into a goquery document.
func ParseDocument(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return doc, nil
}

// ExtractTeamTable locates a team's stat table by its DOM id and extracts it.
// A page without the table yields a *MissingTableError naming the id.
func ExtractTeamTable(doc *goquery.Document, teamAbbr, statsType string) (*RawStatTable, error) {
	id := TableID(teamAbbr, statsType)
	sel := doc.Find("table#" + id)
	if sel.Length() == 0 {
		return nil, &MissingTableError{TableID: id}
	}
	return extractTable(sel.First(), id)
}

// extractTable reads headers and body rows out of one table element. The
// first row is a decorative group header on the source site, so real headers
// come from the second row; body rows start at the third. Rows shorter than
// the widest row are right-padded with nulls, and the header list is
// truncated to the same width, so the output is always rectangular.
func extractTable(table *goquery.Selection, id string) (*RawStatTable, error) {
	trs := table.Find("tr")
	if trs.Length() < 3 {
		return nil, &MalformedRowError{TableID: id, Reason: fmt.Sprintf("only %d rows, need a group header, a header and at least one body row", trs.Length())}
	}

	var headers []string
	trs.Eq(1).Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	var rows [][]sql.NullString
	width := 0
	trs.Slice(2, trs.Length()).Each(func(_ int, tr *goquery.Selection) {
		var row []sql.NullString
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, sql.NullString{String: strings.TrimSpace(cell.Text()), Valid: true})
		})
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
	})

	if width > len(headers) {
		return nil, &MalformedRowError{TableID: id, Reason: fmt.Sprintf("widest row has %d cells but only %d headers", width, len(headers))}
	}

	// Padding only ever appends trailing nulls; data is never removed.
	for i := range rows {
		for len(rows[i]) < width {
			rows[i] = append(rows[i], sql.NullString{})
		}
	}

	return &RawStatTable{
		ID:      id,
		Headers: headers[:width],
		Rows:    rows,
	}, nil
}
