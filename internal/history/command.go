package history

import "github.com/alexanderramin/dayplan/internal/domain"

// Kind tags a command variant.
type Kind int

const (
	KindAdd Kind = iota
	KindInsert
	KindDelete
	KindEditName
	KindEditLength
	KindEditStartTime
	KindToggleFixed
	KindToggleRigid
	KindMoveUp
	KindMoveDown
	KindEditDayLength
	KindTimerStart
	KindGroup
)

var kindNames = map[Kind]string{
	KindAdd:           "add",
	KindInsert:        "insert",
	KindDelete:        "delete",
	KindEditName:      "edit_name",
	KindEditLength:    "edit_length",
	KindEditStartTime: "edit_start_time",
	KindToggleFixed:   "toggle_fixed",
	KindToggleRigid:   "toggle_rigid",
	KindMoveUp:        "move_up",
	KindMoveDown:      "move_down",
	KindEditDayLength: "edit_day_length",
	KindTimerStart:    "timer_start",
	KindGroup:         "group",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one reversible schedule mutation. The set of variants is closed:
// only this package constructs commands.
//
// Constructors validate against the schedule state they are given and
// compute the description from it, so Apply only fails when the schedule was
// changed outside the log. Revert must only follow a successful Apply.
// Neither recomputes; the Log does that.
type Command interface {
	Kind() Kind
	Apply(s *domain.Schedule) error
	Revert(s *domain.Schedule) error
	Describe() string
	Footprint() int

	sealed()
}

// baseFootprint approximates the fixed cost of one command record.
const baseFootprint = 64

type base struct {
	kind        Kind
	description string
}

func (b base) Kind() Kind       { return b.kind }
func (b base) Describe() string { return b.description }
func (b base) sealed()          {}

func (b base) footprint(extra ...string) int {
	n := baseFootprint + len(b.description)
	for _, s := range extra {
		n += len(s)
	}
	return n
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func startLabel(a domain.Activity) string {
	if !a.Fixed {
		return "flexible"
	}
	return domain.FormatClock(a.Start)
}

func activityAt(s *domain.Schedule, i int) (*domain.Activity, error) {
	a := s.Ref(i)
	if a == nil {
		return nil, domain.IndexError(i, s.Len())
	}
	return a, nil
}
