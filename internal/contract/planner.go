package contract

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// ActivityView is a read-only snapshot of one recomputed activity.
type ActivityView struct {
	// Position is 1-based, as shown to the user.
	Position int
	Name     string
	Start    int
	Length   int
	Actual   int
	Fixed    bool
	Rigid    bool
	Frozen   bool
}

// NewActivityView snapshots a at 0-based index i.
func NewActivityView(i int, a domain.Activity) ActivityView {
	return ActivityView{
		Position: i + 1,
		Name:     a.Name,
		Start:    a.Start,
		Length:   a.Length,
		Actual:   a.Actual,
		Fixed:    a.Fixed,
		Rigid:    a.Rigid,
		Frozen:   a.Frozen(),
	}
}

// End is the minute of day the activity ends, wrapped past midnight.
func (v ActivityView) End() int { return domain.WrapMinutes(v.Start + v.Actual) }

func (v ActivityView) StartClock() string { return domain.FormatClock(v.Start) }
func (v ActivityView) EndClock() string   { return domain.FormatClock(v.End()) }

// QueryRequest selects a document and the instant to query it at.
type QueryRequest struct {
	// Document is a document argument: a date, a name, or "" for today.
	Document string
	Now      *time.Time
}

func NewQueryRequest(document string) QueryRequest {
	return QueryRequest{Document: document}
}

type NowResponse struct {
	Document  string
	NowMinute int
	Active    *ActivityView
	// RemainingMin is the time left on Active; 0 when nothing is active.
	RemainingMin int
	Conflicts    []string
}

type NextResponse struct {
	Document  string
	NowMinute int
	Next      *ActivityView
	// UntilMin is the wait until Next starts; 0 when nothing is upcoming.
	UntilMin  int
	Conflicts []string
}

type ListResponse struct {
	Document   string
	Date       string
	DayLength  int
	Activities []ActivityView
	Conflicts  []string
	// Skipped lists malformed tasks dropped while loading.
	Skipped []string
}

// BookedMin sums the actual minutes of every listed activity.
func (r *ListResponse) BookedMin() int {
	total := 0
	for _, a := range r.Activities {
		total += a.Actual
	}
	return total
}
