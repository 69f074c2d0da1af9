package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Recognized keys.
const (
	KeyDataDir          = "data-dir"
	KeyDefaultDayLength = "default-day-length"
	KeyDefaultStartTime = "default-start-time"
	KeyFileExtension    = "file-extension"
	KeyAutoSave         = "auto-save"
	KeyShowWarnings     = "show-warnings"
	KeyStatusMessages   = "status-messages"
	KeyStorage          = "storage"
	KeyDatabase         = "database"
	KeyLogLevel         = "log-level"
	KeyLastOpenedFile   = "last-opened-file"
)

// DefaultPath is the configuration file read when no other is named.
const DefaultPath = "plan.conf"

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// keyOrder is the order keys are written in.
var keyOrder = []string{
	KeyDataDir,
	KeyDefaultDayLength,
	KeyDefaultStartTime,
	KeyFileExtension,
	KeyAutoSave,
	KeyShowWarnings,
	KeyStatusMessages,
	KeyStorage,
	KeyDatabase,
	KeyLogLevel,
}

func defaults() map[string]string {
	return map[string]string{
		KeyDataDir:          "data",
		KeyDefaultDayLength: "7.0",
		KeyDefaultStartTime: "09:00",
		KeyFileExtension:    ".json",
		KeyAutoSave:         "true",
		KeyShowWarnings:     "true",
		KeyStatusMessages:   "true",
		KeyStorage:          StorageJSON,
		KeyDatabase:         "",
		KeyLogLevel:         "warn",
		KeyLastOpenedFile:   "",
	}
}

// Config holds the settings read from a "key: value" document. Unknown keys
// are kept. Malformed values fall back to defaults and add a warning.
type Config struct {
	settings map[string]string
	// Warnings collects problems found while loading or reading values.
	Warnings []string
}

// New returns a configuration holding only defaults.
func New() *Config {
	return &Config{settings: defaults()}
}

// Load reads the configuration at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader parses "key: value" lines. Blank lines and lines starting
// with '#' or ';' are skipped. Whitespace around keys and values is trimmed.
func LoadFromReader(r io.Reader) (*Config, error) {
	c := New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			c.addWarning("invalid config line %d: %s", lineNo, line)
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			c.addWarning("invalid config line %d: %s", lineNo, line)
			continue
		}
		c.settings[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return c, nil
}

func (c *Config) addWarning(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Get returns the raw value for key.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.settings[key]
	return v, ok
}

// Set stores a raw value.
func (c *Config) Set(key, value string) {
	c.settings[key] = value
}

func (c *Config) DataDir() string {
	if v := c.settings[KeyDataDir]; v != "" {
		return v
	}
	return "data"
}

// DayLengthMinutes converts the configured hours to whole minutes.
func (c *Config) DayLengthMinutes() int {
	raw := c.settings[KeyDefaultDayLength]
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || hours <= 0 {
		c.addWarning("invalid %s %q, using 7.0", KeyDefaultDayLength, raw)
		return domain.DefaultDayLength
	}
	return int(hours * 60)
}

// DefaultStart is the minute of day a flexible first activity starts at.
func (c *Config) DefaultStart() int {
	raw := c.settings[KeyDefaultStartTime]
	m, err := domain.ParseClock(raw)
	if err != nil {
		c.addWarning("invalid %s %q, using 09:00", KeyDefaultStartTime, raw)
		return domain.DefaultStartMinute
	}
	return m
}

// FileExtension always carries a leading dot.
func (c *Config) FileExtension() string {
	ext := c.settings[KeyFileExtension]
	if ext == "" {
		return ".json"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func (c *Config) AutoSave() bool       { return c.boolValue(KeyAutoSave, true) }
func (c *Config) ShowWarnings() bool   { return c.boolValue(KeyShowWarnings, true) }
func (c *Config) StatusMessages() bool { return c.boolValue(KeyStatusMessages, true) }

// Storage returns StorageJSON or StorageSQLite.
func (c *Config) Storage() string {
	switch v := strings.ToLower(c.settings[KeyStorage]); v {
	case StorageJSON, StorageSQLite:
		return v
	case "":
		return StorageJSON
	default:
		c.addWarning("unknown %s %q, using %s", KeyStorage, v, StorageJSON)
		return StorageJSON
	}
}

// DatabasePath defaults to dayplan.db inside the data directory.
func (c *Config) DatabasePath() string {
	if v := c.settings[KeyDatabase]; v != "" {
		return v
	}
	return filepath.Join(c.DataDir(), "dayplan.db")
}

func (c *Config) LogLevel() string {
	if v := c.settings[KeyLogLevel]; v != "" {
		return strings.ToLower(v)
	}
	return "warn"
}

func (c *Config) boolValue(key string, fallback bool) bool {
	switch strings.ToLower(c.settings[key]) {
	case "true", "yes", "1", "on":
		return true
	case "false", "no", "0", "off":
		return false
	case "":
		return fallback
	default:
		c.addWarning("invalid boolean %s %q", key, c.settings[key])
		return false
	}
}

// WriteTo writes the known keys, then any unknown ones, as "key: value" lines.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("# Day planner configuration\n")
	b.WriteString("# Format: key: value\n")
	b.WriteString("# Lines starting with # or ; are comments\n\n")
	known := make(map[string]bool, len(keyOrder)+1)
	for _, k := range keyOrder {
		known[k] = true
		fmt.Fprintf(&b, "%s: %s\n", k, c.settings[k])
	}
	known[KeyLastOpenedFile] = true
	var extra []string
	for k := range c.settings {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		slices.Sort(extra)
		b.WriteString("\n")
		for _, k := range extra {
			fmt.Fprintf(&b, "%s: %s\n", k, c.settings[k])
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// WriteDefault creates a configuration file with default values. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	if _, err := New().WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	return f.Close()
}
