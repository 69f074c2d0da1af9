package repository

import (
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	datedPrefix = "tasks_"
)

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if len(s) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// DatedName is the document name for a calendar date.
func DatedName(date, ext string) string {
	return datedPrefix + date + ext
}

// DocumentName maps a command-line argument to a document name: a date
// selects the dated document; anything else gets ext appended if absent.
func DocumentName(arg, ext string) string {
	if IsDate(arg) {
		return DatedName(arg, ext)
	}
	if ext != "" && !strings.HasSuffix(arg, ext) {
		return arg + ext
	}
	return arg
}

// DateOf returns the date encoded in a dated document name.
func DateOf(name, ext string) (string, bool) {
	base := name
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	base = strings.TrimSuffix(base, ext)
	date, ok := strings.CutPrefix(base, datedPrefix)
	if !ok || !IsDate(date) {
		return "", false
	}
	return date, true
}

// Today formats t as a document date.
func Today(t time.Time) string {
	return t.Format(dateLayout)
}
