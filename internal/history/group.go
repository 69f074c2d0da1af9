package history

import (
	"fmt"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Group applies several commands as one undo step.
type Group struct {
	description string
	cmds        []Command
}

// NewGroup returns a group over cmds. A group of one describes itself as
// that command.
func NewGroup(description string, cmds ...Command) *Group {
	return &Group{description: description, cmds: append([]Command(nil), cmds...)}
}

func (g *Group) Kind() Kind { return KindGroup }
func (g *Group) sealed()    {}

// Len returns the number of sub-commands.
func (g *Group) Len() int { return len(g.cmds) }

// Commands returns the sub-commands in apply order.
func (g *Group) Commands() []Command { return append([]Command(nil), g.cmds...) }

func (g *Group) add(c Command) { g.cmds = append(g.cmds, c) }

// Apply runs the sub-commands in order. If one fails, the ones already
// applied are reverted and the error is returned.
func (g *Group) Apply(s *domain.Schedule) error {
	for i, c := range g.cmds {
		if err := c.Apply(s); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.cmds[j].Revert(s)
			}
			return fmt.Errorf("applying %s: %w", c.Kind(), err)
		}
	}
	return nil
}

// Revert reverts the sub-commands in reverse order.
func (g *Group) Revert(s *domain.Schedule) error {
	for i := len(g.cmds) - 1; i >= 0; i-- {
		if err := g.cmds[i].Revert(s); err != nil {
			return fmt.Errorf("reverting %s: %w", g.cmds[i].Kind(), err)
		}
	}
	return nil
}

func (g *Group) Describe() string {
	switch len(g.cmds) {
	case 0:
		return g.description
	case 1:
		return g.cmds[0].Describe()
	default:
		return fmt.Sprintf("%s (%d operations)", g.description, len(g.cmds))
	}
}

func (g *Group) Footprint() int {
	n := baseFootprint + len(g.description)
	for _, c := range g.cmds {
		n += c.Footprint()
	}
	return n
}
