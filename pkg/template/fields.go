package template

import (
	"fmt"
	"time"
)

// DerivedFields computes the schedule and numbering values an announcement
// needs but the model must not invent: announcement date, bid deadline two
// weeks out, opening the day after, award a week later.
func DerivedFields(now time.Time) map[string]string {
	bidDeadline := now.AddDate(0, 0, 14)
	openingDate := bidDeadline.AddDate(0, 0, 1)
	awardDate := openingDate.AddDate(0, 0, 7)

	return map[string]string{
		"announcement_date":   now.Format("2006-01-02"),
		"bid_deadline":        bidDeadline.Format("2006-01-02 15:00"),
		"opening_date":        openingDate.Format("2006-01-02 15:00"),
		"award_date":          awardDate.Format("2006-01-02"),
		"announcement_number": fmt.Sprintf("Notice No. %d-%02d-%02d", now.Year(), int(now.Month()), now.Day()),
	}
}
