package history

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/scheduler"
)

const (
	DefaultMaxHistory = 100
	DefaultMaxBytes   = 1 << 20
)

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrNilCommand    = errors.New("command is nil")
)

// Outcome is what a submit, undo or redo did to the schedule.
type Outcome struct {
	Description string
	Allocation  scheduler.Allocation
}

// Conflicts is shorthand for the conflicts of the recompute that followed.
func (o Outcome) Conflicts() []scheduler.Conflict { return o.Allocation.Conflicts }

// Option configures a Log.
type Option func(*Log)

// WithMaxHistory bounds the number of undo entries.
func WithMaxHistory(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.maxHistory = n
		}
	}
}

// WithMaxBytes bounds the summed footprint of both stacks.
func WithMaxBytes(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Log owns a schedule and every change made to it. After each submit, undo
// and redo the schedule is recomputed before control returns.
//
// A Log is not safe for concurrent use.
type Log struct {
	schedule   *domain.Schedule
	undo       []Command
	redo       []Command
	bytes      int
	group      *Group
	maxHistory int
	maxBytes   int
	logger     *slog.Logger
}

func NewLog(s *domain.Schedule, opts ...Option) *Log {
	l := &Log{
		schedule:   s,
		maxHistory: DefaultMaxHistory,
		maxBytes:   DefaultMaxBytes,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Schedule returns the owned schedule. Callers must re-read it after every
// call that changes it.
func (l *Log) Schedule() *domain.Schedule { return l.schedule }

// Recompute refreshes the derived fields without recording anything.
func (l *Log) Recompute() scheduler.Allocation {
	return scheduler.Recompute(l.schedule)
}

// Submit applies c. While a group is open, c joins the group; otherwise it is
// pushed onto the undo stack and the redo stack is cleared.
func (l *Log) Submit(c Command) (Outcome, error) {
	if c == nil {
		return Outcome{}, ErrNilCommand
	}
	if err := c.Apply(l.schedule); err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", c.Describe(), err)
	}
	alloc := l.Recompute()

	if l.group != nil {
		l.group.add(c)
		l.logger.Debug("command grouped", "kind", c.Kind().String(), "description", c.Describe())
		return Outcome{Description: c.Describe(), Allocation: alloc}, nil
	}

	l.clearRedo()
	l.push(c)
	l.logger.Debug("command applied", "kind", c.Kind().String(), "description", c.Describe())
	return Outcome{Description: c.Describe(), Allocation: alloc}, nil
}

// BeginGroup opens a group. A non-empty group that is already open is
// closed first.
func (l *Log) BeginGroup(description string) {
	if l.group != nil && l.group.Len() > 0 {
		l.EndGroup()
	}
	l.group = NewGroup(description)
}

// EndGroup closes the open group and pushes it as one undo step. An empty
// group is dropped. It reports whether anything was pushed.
func (l *Log) EndGroup() bool {
	g := l.group
	l.group = nil
	if g == nil || g.Len() == 0 {
		return false
	}
	l.clearRedo()
	l.push(g)
	l.logger.Debug("group closed", "description", g.Describe(), "commands", g.Len())
	return true
}

// Grouping reports whether a group is open.
func (l *Log) Grouping() bool { return l.group != nil }

// Undo reverts the newest undo entry and moves it to the redo stack.
func (l *Log) Undo() (Outcome, error) {
	l.EndGroup()
	if len(l.undo) == 0 {
		return Outcome{}, ErrNothingToUndo
	}
	c := l.undo[len(l.undo)-1]
	if err := c.Revert(l.schedule); err != nil {
		return Outcome{}, fmt.Errorf("undo %s: %w", c.Describe(), err)
	}
	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, c)
	alloc := l.Recompute()
	l.logger.Debug("command reverted", "kind", c.Kind().String(), "description", c.Describe())
	return Outcome{Description: c.Describe(), Allocation: alloc}, nil
}

// Redo re-applies the newest redo entry and moves it back to the undo stack.
func (l *Log) Redo() (Outcome, error) {
	l.EndGroup()
	if len(l.redo) == 0 {
		return Outcome{}, ErrNothingToRedo
	}
	c := l.redo[len(l.redo)-1]
	if err := c.Apply(l.schedule); err != nil {
		return Outcome{}, fmt.Errorf("redo %s: %w", c.Describe(), err)
	}
	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, c)
	alloc := l.Recompute()
	l.logger.Debug("command reapplied", "kind", c.Kind().String(), "description", c.Describe())
	return Outcome{Description: c.Describe(), Allocation: alloc}, nil
}

func (l *Log) CanUndo() bool { return len(l.undo) > 0 }
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }
func (l *Log) UndoLen() int  { return len(l.undo) }
func (l *Log) RedoLen() int  { return len(l.redo) }

// Footprint is the summed footprint of both stacks.
func (l *Log) Footprint() int { return l.bytes }

// PeekUndo returns the description of the entry Undo would revert.
func (l *Log) PeekUndo() (string, bool) {
	if len(l.undo) == 0 {
		return "", false
	}
	return l.undo[len(l.undo)-1].Describe(), true
}

// PeekRedo returns the description of the entry Redo would re-apply.
func (l *Log) PeekRedo() (string, bool) {
	if len(l.redo) == 0 {
		return "", false
	}
	return l.redo[len(l.redo)-1].Describe(), true
}

func (l *Log) push(c Command) {
	l.undo = append(l.undo, c)
	l.bytes += c.Footprint()
	l.enforceLimits()
}

func (l *Log) clearRedo() {
	for _, c := range l.redo {
		l.bytes -= c.Footprint()
	}
	l.redo = nil
}

// enforceLimits drops the oldest undo entries, then the oldest redo entries,
// until both bounds hold.
func (l *Log) enforceLimits() {
	for len(l.undo) > l.maxHistory || l.bytes > l.maxBytes {
		var evicted Command
		switch {
		case len(l.undo) > 0:
			evicted, l.undo = l.undo[0], l.undo[1:]
		case len(l.redo) > 0:
			evicted, l.redo = l.redo[0], l.redo[1:]
		default:
			return
		}
		l.bytes -= evicted.Footprint()
		l.logger.Debug("history evicted", "description", evicted.Describe(), "bytes", l.bytes)
	}
}
