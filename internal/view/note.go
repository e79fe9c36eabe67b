package view

import (
	"fmt"

	"github.com/lawwatch/lawwatch/internal/classify"
)

// DeadlineNote renders the per-record urgency note shown next to the issue
// date.
func DeadlineNote(doc classify.Document) string {
	if doc.DaysUntilDeadline != nil {
		days := *doc.DaysUntilDeadline
		switch {
		case days < 0:
			return fmt.Sprintf("逾期 %d 天", -days)
		case days == 0:
			return "今天截止"
		default:
			return fmt.Sprintf("剩餘 %d 天", days)
		}
	}
	if doc.DaysSinceIssued != nil {
		if *doc.DaysSinceIssued == 0 {
			return "今日發布"
		}
		return fmt.Sprintf("發布 %d 天", *doc.DaysSinceIssued)
	}
	return "尚未提供日期"
}
