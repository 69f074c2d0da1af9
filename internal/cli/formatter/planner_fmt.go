package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/repository"
)

// FormatNow renders the answer to "what should I be doing now".
func FormatNow(resp *contract.NowResponse) string {
	if resp.Active == nil {
		return fmt.Sprintf("No active task at current time (%s)\n", domain.FormatClock(resp.NowMinute))
	}
	a := resp.Active
	return fmt.Sprintf("%s (ends at %s, %d min remaining)\n", Bold(a.Name), a.EndClock(), resp.RemainingMin)
}

// FormatNext renders the next upcoming activity.
func FormatNext(resp *contract.NextResponse) string {
	if resp.Next == nil {
		return "No upcoming tasks today\n"
	}
	a := resp.Next
	return fmt.Sprintf("%s (starts at %s, in %d minutes)\n", Bold(a.Name), a.StartClock(), resp.UntilMin)
}

// ActivityLine renders one numbered activity: "1. Name [FLEX] (09:00 - 10:00, 60 min)".
func ActivityLine(a contract.ActivityView) string {
	line := fmt.Sprintf("%d. %s %s (%s - %s, %d min)",
		a.Position, a.Name, AnchorTag(a.Fixed), a.StartClock(), a.EndClock(), a.Actual)
	if a.Rigid {
		line += " " + RigidTag(true)
	}
	return line
}

// FormatList renders every activity of a document in order.
func FormatList(resp *contract.ListResponse) string {
	var b strings.Builder
	b.WriteString(Header("Today's Tasks:"))
	b.WriteString("\n")

	if len(resp.Activities) == 0 {
		b.WriteString(Dim("No tasks scheduled") + "\n")
		return b.String()
	}
	for _, a := range resp.Activities {
		b.WriteString(ActivityLine(a) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s booked of %s (%s)",
		FormatMinutes(resp.BookedMin()), FormatMinutes(resp.DayLength), resp.Document)) + "\n")
	return b.String()
}

// FormatWarnings renders one warning line per message.
func FormatWarnings(msgs []string) string {
	if len(msgs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(Warning(m) + "\n")
	}
	return b.String()
}

// FormatEdit confirms a saved change.
func FormatEdit(document, description string) string {
	return fmt.Sprintf("%s %s\n", StyleGreen.Render(description), Dim("("+document+")"))
}

// FormatDocuments renders the discovered documents as a table.
func FormatDocuments(docs []repository.DocumentInfo, now time.Time) string {
	if len(docs) == 0 {
		return Dim("No documents found") + "\n"
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{Bold(d.Name), HumanTimestampFrom(d.ModifiedAt, now), Dim(d.Path)})
	}
	return RenderTable([]string{"DOCUMENT", "MODIFIED", "PATH"}, rows)
}
