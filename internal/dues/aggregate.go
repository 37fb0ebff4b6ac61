package dues

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Aggregate rolls a record set into summary statistics. Callers pass the
// currently filtered records; stats over the unfiltered universe are never
// shown alongside a filtered table.
//
// Course identity for the impacted-course count is upper(trim(course)), a
// looser equivalence than Normalize: "B.Tech" and "b.tech " count once, but
// courses that only differ in punctuation stay distinct.
func Aggregate(records []MatchRecord) DueStats {
	stats := DueStats{
		TotalStudents:      len(records),
		TotalPendingAmount: decimal.Zero,
	}

	courses := make(map[string]struct{})
	for _, record := range records {
		stats.TotalPendingItems += len(record.PendingItems)
		stats.TotalPendingAmount = stats.TotalPendingAmount.Add(record.PendingValue)
		if course := strings.ToUpper(strings.TrimSpace(record.Student.Course)); course != "" {
			courses[course] = struct{}{}
		}
	}
	stats.ImpactedCourseCount = len(courses)
	return stats
}
