package dues

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"kitledger/internal/catalog"
	"kitledger/internal/roster"
)

// Match resolves the applicable item set for every student and splits it into
// issued vs pending. Students with no resolvable course, no applicable items,
// or nothing pending are excluded entirely; a missing record means "nothing
// due", never an error.
//
// Output order is (course, year, name) ascending with locale-aware collation,
// then student ID as a final tie-break, so pagination stays stable across
// identical invocations.
func Match(students []roster.Student, index Index) []MatchRecord {
	records := make([]MatchRecord, 0, len(students))

	for _, student := range students {
		course := Normalize(student.Course)
		if course == "" {
			continue
		}
		bucket := index[course]
		if len(bucket) == 0 {
			continue
		}

		var mapped, pending []catalog.Item
		mappedValue, pendingValue := decimal.Zero, decimal.Zero
		for _, item := range bucket {
			if !itemApplies(student, item) {
				continue
			}
			mapped = append(mapped, item)
			mappedValue = mappedValue.Add(item.Price)
			if !student.Items[ItemKey(item.Name)] {
				pending = append(pending, item)
				pendingValue = pendingValue.Add(item.Price)
			}
		}
		if len(mapped) == 0 || len(pending) == 0 {
			continue
		}

		issuedValue := mappedValue.Sub(pendingValue)
		if issuedValue.IsNegative() {
			issuedValue = decimal.Zero
		}

		records = append(records, MatchRecord{
			Student:      student,
			MappedItems:  mapped,
			PendingItems: pending,
			IssuedCount:  len(mapped) - len(pending),
			MappedValue:  mappedValue,
			PendingValue: pendingValue,
			IssuedValue:  issuedValue,
		})
	}

	sortRecords(records)
	return records
}

// itemApplies checks the item's optional narrowings against one student. An
// absent constraint passes everything; a failed constraint silently excludes
// the student from this item only.
func itemApplies(student roster.Student, item catalog.Item) bool {
	if years := item.EligibleYears(); len(years) > 0 {
		if student.Year == 0 || !containsInt(years, student.Year) {
			return false
		}
	}
	if len(item.Semesters) > 0 {
		if student.Semester == nil || !containsInt(item.Semesters, *student.Semester) {
			return false
		}
	}
	if len(item.Branches) > 0 {
		branch := Normalize(student.Branch)
		if branch == "" {
			return false
		}
		found := false
		for _, b := range item.Branches {
			if Normalize(b) == branch {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sortRecords(records []MatchRecord) {
	// A collator is not safe for concurrent use, so each invocation builds
	// its own. Und keeps ordering host-independent.
	coll := collate.New(language.Und, collate.Loose)
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Student, records[j].Student
		if c := coll.CompareString(a.Course, b.Course); c != 0 {
			return c < 0
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if c := coll.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
