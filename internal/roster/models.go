// Package roster owns the student roster: the read side consumed by the dues
// engine and the store interface the roster collaborator writes through.
package roster

// Student is a roster entry. Year 0 means the year is unknown; an unknown year
// fails any year constraint during matching rather than erroring. Semester is
// optional for courses without semester structure.
//
// Items records receipt of catalog items: a true value under an item key means
// that item has been issued to the student. Keys are lower_snake canonical
// item names, written by the roster collaborator with the same key function
// the dues engine uses for lookups.
type Student struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	StudentID string          `json:"student_id"`
	Course    string          `json:"course"`
	Year      int             `json:"year"`
	Semester  *int            `json:"semester,omitempty"`
	Branch    string          `json:"branch,omitempty"`
	Items     map[string]bool `json:"items"`
}

// Clone returns a deep copy so snapshot consumers can never observe roster
// mutations mid-computation.
func (s Student) Clone() Student {
	out := s
	if s.Semester != nil {
		sem := *s.Semester
		out.Semester = &sem
	}
	if s.Items != nil {
		out.Items = make(map[string]bool, len(s.Items))
		for k, v := range s.Items {
			out.Items[k] = v
		}
	}
	return out
}
