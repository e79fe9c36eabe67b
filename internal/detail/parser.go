// Package detail fetches and parses notice detail pages, running the
// enrichment stage as a bounded worker pool.
package detail

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/lawwatch/lawwatch/internal/dates"
	"github.com/lawwatch/lawwatch/internal/notice"
)

// ErrNoDetailRows reports a detail page with no parsable labeled rows.
var ErrNoDetailRows = errors.New("detail rows not found")

var nonDigits = regexp.MustCompile(`[^\d]`)

// ParseDetail extracts the labeled rows of a detail page. Unrecognized labels
// are ignored; a page with zero rows is a hard per-page failure.
func ParseDetail(html []byte, baseURL string) (notice.Detail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return notice.Detail{}, fmt.Errorf("parse detail html: %w", err)
	}

	rows := doc.Find(".addtable table tr")
	if rows.Length() == 0 {
		return notice.Detail{}, ErrNoDetailRows
	}

	record := notice.EmptyDetail()
	rows.Each(func(_ int, row *goquery.Selection) {
		label := notice.NormalizeLabel(row.Find("th").First().Text())
		valueCell := row.Find("td").First()
		if label == "" || valueCell.Length() == 0 {
			return
		}
		value := notice.CleanText(valueCell.Text())

		switch label {
		case "法規年度":
			record.LawYearLabel = value
			record.LawYear, _ = strconv.Atoi(nonDigits.ReplaceAllString(value, ""))
		case "發文單位":
			record.Issuer = value
		case "發文日期":
			if d, ok := dates.Resolve(value); ok {
				record.Date = d.String()
			} else {
				record.Date = value
			}
		case "發文字號":
			record.DocumentNumber = value
		case "條文編號":
			record.ArticleNumber = value
		case "條文主旨":
			record.Subject = value
		case "條文內容":
			record.Content = value
		case "相關檔案":
			record.Attachments = parseLinks(valueCell, baseURL, "附件")
		case "相關網址":
			record.RelatedLinks = parseLinks(valueCell, baseURL, "")
		}
	})

	return record, nil
}

// parseLinks collects labeled anchors from a value cell. An empty label falls
// back to fallbackLabel when set, otherwise to the URL itself.
func parseLinks(cell *goquery.Selection, baseURL, fallbackLabel string) []notice.Link {
	links := []notice.Link{}
	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		href := notice.AbsoluteURL(a.AttrOr("href", ""), baseURL)
		if href == "" {
			return
		}
		label := notice.CleanText(a.Text())
		if label == "" {
			if fallbackLabel != "" {
				label = fallbackLabel
			} else {
				label = href
			}
		}
		links = append(links, notice.Link{Label: label, URL: href})
	})
	return links
}
