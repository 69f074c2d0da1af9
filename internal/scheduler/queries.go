package scheduler

import "github.com/alexanderramin/dayplan/internal/domain"

// ActiveAt returns the first activity whose half-open interval
// [Start, Start+Actual) contains now. When two activities abut, the later
// one owns the boundary minute.
func ActiveAt(s *domain.Schedule, now int) (int, domain.Activity, bool) {
	for i := 0; i < s.Len(); i++ {
		a := s.Ref(i)
		if a.Start <= now && now < a.End() {
			return i, *a, true
		}
	}
	return -1, domain.Activity{}, false
}

// NextAfter returns the first activity starting strictly after now.
func NextAfter(s *domain.Schedule, now int) (int, domain.Activity, bool) {
	for i := 0; i < s.Len(); i++ {
		a := s.Ref(i)
		if a.Start > now {
			return i, *a, true
		}
	}
	return -1, domain.Activity{}, false
}

// List returns the activities with their derived fields.
func List(s *domain.Schedule) []domain.Activity {
	return s.Activities()
}
