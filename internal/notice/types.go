// Package notice defines the record types shared across the ingestion pipeline.
package notice

// Summary is one listing-row record, produced by the list crawler before any
// detail enrichment. A Summary is never mutated; enrichment merges it into a
// new Document.
type Summary struct {
	Year       string `json:"year"`
	Serial     string `json:"serial"`
	Category   string `json:"category"`
	Subject    string `json:"subject"`
	SubjectURL string `json:"subjectUrl,omitempty"`
}

// Link is a labeled URL extracted from a detail page (attachment or related
// site).
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Detail holds the structured fields parsed from one detail page. All fields
// are optional; the zero value with non-nil slices is the "empty but valid"
// stub used when a detail page is missing or unparsable.
type Detail struct {
	LawYear        int    `json:"lawYear,omitempty"`
	LawYearLabel   string `json:"lawYearLabel,omitempty"`
	Issuer         string `json:"issuer,omitempty"`
	Date           string `json:"date,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	ArticleNumber  string `json:"articleNumber,omitempty"`
	Subject        string `json:"-"`
	Content        string `json:"content,omitempty"`
	Attachments    []Link `json:"attachments"`
	RelatedLinks   []Link `json:"relatedLinks"`
}

// EmptyDetail returns the stub Detail recorded for entries whose detail page
// could not be fetched or parsed.
func EmptyDetail() Detail {
	return Detail{
		Attachments:  []Link{},
		RelatedLinks: []Link{},
	}
}

// Document is a Summary merged with its Detail. This is the raw,
// pre-classification record serialized into the dataset artifact.
type Document struct {
	Year           string `json:"year"`
	Serial         string `json:"serial"`
	Category       string `json:"category"`
	Subject        string `json:"subject"`
	SubjectURL     string `json:"subjectUrl,omitempty"`
	LawYear        int    `json:"lawYear,omitempty"`
	LawYearLabel   string `json:"lawYearLabel,omitempty"`
	Issuer         string `json:"issuer,omitempty"`
	Date           string `json:"date,omitempty"`
	Deadline       string `json:"deadline,omitempty"`
	DocumentNumber string `json:"documentNumber,omitempty"`
	ArticleNumber  string `json:"articleNumber,omitempty"`
	Content        string `json:"content,omitempty"`
	Attachments    []Link `json:"attachments"`
	RelatedLinks   []Link `json:"relatedLinks"`
}

// Merge combines a Summary with its Detail into a Document. The detail's
// subject override wins when present.
func Merge(s Summary, d Detail) Document {
	subject := s.Subject
	if d.Subject != "" {
		subject = d.Subject
	}
	attachments := d.Attachments
	if attachments == nil {
		attachments = []Link{}
	}
	related := d.RelatedLinks
	if related == nil {
		related = []Link{}
	}
	return Document{
		Year:           s.Year,
		Serial:         s.Serial,
		Category:       s.Category,
		Subject:        subject,
		SubjectURL:     s.SubjectURL,
		LawYear:        d.LawYear,
		LawYearLabel:   d.LawYearLabel,
		Issuer:         d.Issuer,
		Date:           d.Date,
		Deadline:       d.Deadline,
		DocumentNumber: d.DocumentNumber,
		ArticleNumber:  d.ArticleNumber,
		Content:        d.Content,
		Attachments:    attachments,
		RelatedLinks:   related,
	}
}
