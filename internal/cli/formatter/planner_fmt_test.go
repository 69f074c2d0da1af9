package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestFormatNow(t *testing.T) {
	active := contract.ActivityView{Position: 1, Name: "Standup", Start: 600, Actual: 30}

	out := stripANSI(FormatNow(&contract.NowResponse{NowMinute: 610, Active: &active, RemainingMin: 20}))
	assert.Equal(t, "Standup (ends at 10:30, 20 min remaining)\n", out)

	out = stripANSI(FormatNow(&contract.NowResponse{NowMinute: 7*60 + 5}))
	assert.Equal(t, "No active task at current time (07:05)\n", out)
}

func TestFormatNext(t *testing.T) {
	next := contract.ActivityView{Position: 2, Name: "Lunch", Start: 12 * 60, Actual: 45}

	out := stripANSI(FormatNext(&contract.NextResponse{NowMinute: 11 * 60, Next: &next, UntilMin: 60}))
	assert.Equal(t, "Lunch (starts at 12:00, in 60 minutes)\n", out)

	out = stripANSI(FormatNext(&contract.NextResponse{NowMinute: 23 * 60}))
	assert.Equal(t, "No upcoming tasks today\n", out)
}

func TestActivityLine_WrapsPastMidnight(t *testing.T) {
	a := contract.ActivityView{Position: 4, Name: "Late shift", Start: 23 * 60, Actual: 120}
	assert.Equal(t, "4. Late shift [FLEX] (23:00 - 01:00, 120 min)", stripANSI(ActivityLine(a)))
}

func TestFormatWarnings(t *testing.T) {
	assert.Empty(t, FormatWarnings(nil))

	out := stripANSI(FormatWarnings([]string{"first", "second"}))
	assert.Equal(t, "WARNING: first\nWARNING: second\n", out)
}

func TestFormatDocuments(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	docs := []repository.DocumentInfo{
		{Name: "tasks_2025-03-15.json", Path: "data/tasks_2025-03-15.json", ModifiedAt: now.Add(-5 * time.Minute)},
		{Name: "work.json", Path: "data/work.json", ModifiedAt: now.Add(-72 * time.Hour)},
	}

	out := stripANSI(FormatDocuments(docs, now))
	assert.Contains(t, out, "DOCUMENT")
	assert.Contains(t, out, "tasks_2025-03-15.json")
	assert.Contains(t, out, "5m ago")
	assert.Contains(t, out, "Mar 12, 2025")

	assert.Contains(t, stripANSI(FormatDocuments(nil, now)), "No documents found")
}

func TestFormatEdit(t *testing.T) {
	out := stripANSI(FormatEdit("work.json", "Add task 'Write'"))
	assert.Equal(t, "Add task 'Write' (work.json)\n", out)
}
