// Package listing walks the paginated notice index and extracts summary
// records.
package listing

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/lawwatch/lawwatch/internal/notice"
)

// ErrNoListingTable reports a page without the expected listing structure.
var ErrNoListingTable = errors.New("listing table not found")

// Pagination is the page summary block parsed from a listing page.
type Pagination struct {
	TotalRecords int
	CurrentPage  int
	TotalPages   int
}

// Page is the parsed content of one listing page.
type Page struct {
	Summaries  []notice.Summary
	Pagination Pagination
}

var (
	totalRecordsPattern = regexp.MustCompile(`資料筆數：(\d+)`)
	pageCountPattern    = regexp.MustCompile(`頁數：(\d+)/(\d+)`)
)

// ParsePage extracts summary rows and the pagination summary from listing
// HTML. Rows need at least 4 cells to qualify; the first row is the header.
func ParsePage(html []byte, baseURL string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return Page{}, fmt.Errorf("parse listing html: %w", err)
	}

	table := doc.Find(".mtable table").First()
	if table.Length() == 0 {
		return Page{}, ErrNoListingTable
	}

	var summaries []notice.Summary
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		titleCell := cells.Eq(2)
		anchor := titleCell.Find("a").First()
		subject := notice.CleanText(anchor.Find("div").AttrOr("title", ""))
		if subject == "" {
			subject = notice.CleanText(anchor.Text())
		}
		if subject == "" {
			subject = notice.CleanText(titleCell.Text())
		}

		summaries = append(summaries, notice.Summary{
			Year:       notice.CleanText(cells.Eq(0).Text()),
			Serial:     notice.CleanText(cells.Eq(1).Text()),
			Category:   notice.CleanText(cells.Eq(3).Text()),
			Subject:    subject,
			SubjectURL: notice.AbsoluteURL(anchor.AttrOr("href", ""), baseURL),
		})
	})

	return Page{
		Summaries:  summaries,
		Pagination: parsePagination(doc),
	}, nil
}

func parsePagination(doc *goquery.Document) Pagination {
	summary := notice.CleanText(doc.Find(".quantity .q_box2").Text())

	p := Pagination{CurrentPage: 1, TotalPages: 1}
	if m := totalRecordsPattern.FindStringSubmatch(summary); m != nil {
		p.TotalRecords, _ = strconv.Atoi(m[1])
	}
	if m := pageCountPattern.FindStringSubmatch(summary); m != nil {
		p.CurrentPage, _ = strconv.Atoi(m[1])
		p.TotalPages, _ = strconv.Atoi(m[2])
	}
	return p
}
