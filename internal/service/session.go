package service

import (
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/scheduler"
)

// Session is one open document and the command log editing it.
type Session struct {
	Name string
	Date string
	Log  *history.Log
	// Loaded is false when the document did not exist and was started empty.
	Loaded bool
	// Skipped lists malformed tasks dropped while loading. They are not
	// written back, so the next save removes them from the document; Save
	// clears the list once that has happened.
	Skipped []string
	// Conflicts are the warnings from the recompute done on open.
	Conflicts []scheduler.Conflict
}

// Schedule is the live schedule owned by the session's log.
func (s *Session) Schedule() *domain.Schedule { return s.Log.Schedule() }

func (s *Session) document() *repository.Document {
	return &repository.Document{Name: s.Name, Date: s.Date, Schedule: s.Schedule()}
}

// ConflictMessages renders conflicts for display.
func ConflictMessages(conflicts []scheduler.Conflict) []string {
	if len(conflicts) == 0 {
		return nil
	}
	out := make([]string, len(conflicts))
	for i, c := range conflicts {
		out[i] = c.String()
	}
	return out
}
