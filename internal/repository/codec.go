package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/dayplan/internal/domain"
)

type documentJSON struct {
	Date      string     `json:"date"`
	DayLength int        `json:"dayLength"`
	Tasks     []taskJSON `json:"tasks"`
}

type taskJSON struct {
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	Length    int    `json:"length"`
	Rigid     bool   `json:"rigid"`
	Fixed     bool   `json:"fixed"`
}

// taskRecord is one stored activity, independent of the backend.
type taskRecord struct {
	Name      string
	StartTime string
	Length    int
	Rigid     bool
	Fixed     bool
}

func recordsOf(s *domain.Schedule) []taskRecord {
	acts := s.Activities()
	out := make([]taskRecord, 0, len(acts))
	for _, a := range acts {
		out = append(out, taskRecord{
			Name:      a.Name,
			StartTime: domain.FormatClock(a.Start),
			Length:    a.Length,
			Rigid:     a.Rigid,
			Fixed:     a.Fixed,
		})
	}
	return out
}

// activityOf converts a stored record. Only anchored activities keep their
// stored start; a flexible start is derived again on recompute.
func activityOf(r taskRecord) (domain.Activity, error) {
	var a domain.Activity
	if r.Fixed {
		start, err := domain.ParseClock(r.StartTime)
		if err != nil {
			return a, err
		}
		a = domain.NewFixed(r.Name, start, r.Length, r.Rigid)
	} else {
		a = domain.NewFlexible(r.Name, r.Length, r.Rigid)
	}
	return a, a.Validate()
}

// encodeDocument renders doc as two-space indented JSON.
func encodeDocument(doc *Document) ([]byte, error) {
	out := documentJSON{
		Date:      doc.Date,
		DayLength: doc.Schedule.DayLength,
		Tasks:     make([]taskJSON, 0, doc.Schedule.Len()),
	}
	for _, r := range recordsOf(doc.Schedule) {
		out.Tasks = append(out.Tasks, taskJSON(r))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encoding document %s: %w", doc.Name, err)
	}
	return buf.Bytes(), nil
}

// decodeDocument parses a stored document. Top-level problems are a
// FormatError; a malformed task is skipped and reported in Document.Skipped.
func decodeDocument(name string, data []byte, logger *slog.Logger) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, &FormatError{Name: name, Reason: err.Error()}
	}

	dayLength, err := requireField[int](top, "dayLength")
	if err != nil {
		return nil, &FormatError{Name: name, Reason: err.Error()}
	}
	if dayLength <= 0 {
		return nil, &FormatError{Name: name, Reason: fmt.Sprintf("dayLength must be positive, got %d", dayLength)}
	}
	rawTasks, err := requireField[[]json.RawMessage](top, "tasks")
	if err != nil {
		return nil, &FormatError{Name: name, Reason: err.Error()}
	}
	date, _ := optionalField[string](top, "date")

	doc := &Document{Name: name, Date: date, Schedule: domain.NewSchedule(dayLength)}
	for i, raw := range rawTasks {
		rec, err := decodeTask(raw)
		if err == nil {
			var a domain.Activity
			if a, err = activityOf(rec); err == nil {
				doc.Schedule.Append(a)
				continue
			}
		}
		reason := fmt.Sprintf("task %d: %v", i+1, err)
		doc.Skipped = append(doc.Skipped, reason)
		logger.Warn("skipping invalid task", "document", name, "reason", reason)
	}
	return doc, nil
}

func decodeTask(data json.RawMessage) (taskRecord, error) {
	var (
		r   taskRecord
		raw map[string]json.RawMessage
		err error
	)
	if err = json.Unmarshal(data, &raw); err != nil || raw == nil {
		return r, fmt.Errorf("not an object: %s", bytes.TrimSpace(data))
	}
	if r.Name, err = requireField[string](raw, "name"); err != nil {
		return r, err
	}
	if r.Length, err = requireField[int](raw, "length"); err != nil {
		return r, err
	}
	if r.Rigid, err = requireField[bool](raw, "rigid"); err != nil {
		return r, err
	}
	if r.Fixed, err = requireField[bool](raw, "fixed"); err != nil {
		return r, err
	}
	if r.Fixed {
		if r.StartTime, err = requireField[string](raw, "startTime"); err != nil {
			return r, err
		}
	} else {
		r.StartTime, _ = optionalField[string](raw, "startTime")
	}
	return r, nil
}

func requireField[T any](obj map[string]json.RawMessage, key string) (T, error) {
	var v T
	raw, ok := obj[key]
	if !ok {
		return v, fmt.Errorf("missing %q", key)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%q has the wrong type: %s", key, bytes.TrimSpace(raw))
	}
	return v, nil
}

func optionalField[T any](obj map[string]json.RawMessage, key string) (T, bool) {
	var v T
	raw, ok := obj[key]
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}

// looksLikeDocument reports whether data parses as a planner document.
func looksLikeDocument(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false
	}
	if _, err := requireField[int](top, "dayLength"); err != nil {
		return false
	}
	_, err := requireField[[]json.RawMessage](top, "tasks")
	return err == nil
}
