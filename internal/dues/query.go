package dues

import "strings"

// DefaultPageSize applies when the caller supplies no page size.
const DefaultPageSize = 20

// FilterRecords applies the optional filters, AND-combined, preserving the
// matcher's ordering. Unsatisfiable filters yield an empty slice, not an
// error.
func FilterRecords(records []MatchRecord, f Filters) []MatchRecord {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	course := Normalize(f.Course)
	branch := Normalize(f.Branch)

	out := make([]MatchRecord, 0, len(records))
	for _, record := range records {
		student := record.Student
		if search != "" &&
			!strings.Contains(strings.ToLower(student.Name), search) &&
			!strings.Contains(strings.ToLower(student.StudentID), search) {
			continue
		}
		if course != "" && Normalize(student.Course) != course {
			continue
		}
		if f.Year != nil && student.Year != *f.Year {
			continue
		}
		if branch != "" && Normalize(student.Branch) != branch {
			continue
		}
		if f.Semester != nil && (student.Semester == nil || *student.Semester != *f.Semester) {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Paginate slices an already-filtered, ordered record set. Page numbers at or
// below zero clamp to 1; a non-positive page size falls back to
// DefaultPageSize. A page past the end is empty but still reports the true
// total and page count.
func Paginate(records []MatchRecord, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	total := len(records)
	pageCount := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= total {
		return Page{Records: []MatchRecord{}, Total: total, PageCount: pageCount}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return Page{Records: records[start:end], Total: total, PageCount: pageCount}
}

// FilterAndPage composes FilterRecords and Paginate.
func FilterAndPage(records []MatchRecord, f Filters, page, pageSize int) Page {
	return Paginate(FilterRecords(records, f), page, pageSize)
}
