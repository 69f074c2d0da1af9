package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// FileDocumentRepo stores each document as a JSON file in a data directory.
type FileDocumentRepo struct {
	dir    string
	ext    string
	clock  domain.Clock
	logger *slog.Logger
}

// NewFileDocumentRepo creates a repo rooted at dir. Documents are matched by ext.
func NewFileDocumentRepo(dir, ext string, clock domain.Clock, logger *slog.Logger) *FileDocumentRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &FileDocumentRepo{dir: dir, ext: ext, clock: clock, logger: logger}
}

// Path returns the file a document name maps to. Names with a directory
// component are used as given; bare names live in the data directory.
func (r *FileDocumentRepo) Path(name string) string {
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return filepath.Clean(name)
	}
	return filepath.Join(r.dir, name)
}

func (r *FileDocumentRepo) Load(ctx context.Context, name string) (*Document, error) {
	path := r.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("document %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("reading document %s: %w", name, err)
	}
	return decodeDocument(name, data, r.logger)
}

// Save writes the document atomically through a temporary file.
func (r *FileDocumentRepo) Save(ctx context.Context, doc *Document) error {
	if doc.Date == "" {
		doc.Date = documentDate(doc.Name, r.ext, r.clock)
	}
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	path := r.Path(doc.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", doc.Name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document %s: %w", doc.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing document %s: %w", doc.Name, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing document %s: %w", doc.Name, err)
	}
	r.logger.Debug("document saved", "document", doc.Name, "path", path, "tasks", doc.Schedule.Len())
	return nil
}

// List returns the planner documents in the data directory. Files with the
// configured extension that do not parse as documents are ignored.
func (r *FileDocumentRepo) List(ctx context.Context) ([]DocumentInfo, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var docs []DocumentInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), r.ext) {
			continue
		}
		path := filepath.Join(r.dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil || !looksLikeDocument(data) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		docs = append(docs, DocumentInfo{Name: e.Name(), Path: path, ModifiedAt: info.ModTime()})
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ModifiedAt.After(docs[j].ModifiedAt)
	})
	return docs, nil
}

func (r *FileDocumentRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(r.Path(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("checking document %s: %w", name, err)
	}
}

// documentDate is the date stored for a document saved without one.
func documentDate(name, ext string, clock domain.Clock) string {
	if date, ok := DateOf(name, ext); ok {
		return date
	}
	return Today(clock.Now())
}
