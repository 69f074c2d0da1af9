package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultSessionFile stores the last opened document.
const DefaultSessionFile = ".task_session"

// SessionState is a one-line file naming the last opened document.
type SessionState struct {
	Path string
}

// LastOpened returns the remembered document, or "" when none is recorded.
func (s SessionState) LastOpened() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading session state: %w", err)
	}
	first, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(first), nil
}

// SetLastOpened records name as the last opened document.
func (s SessionState) SetLastOpened(name string) error {
	if err := os.WriteFile(s.path(), []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing session state: %w", err)
	}
	return nil
}

func (s SessionState) path() string {
	if s.Path == "" {
		return DefaultSessionFile
	}
	return s.Path
}
