package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// Document is one stored day plan.
type Document struct {
	// Name is the canonical document name, extension included.
	Name string
	// Date is the YYYY-MM-DD the plan belongs to.
	Date     string
	Schedule *domain.Schedule
	// Skipped describes malformed tasks dropped while loading.
	Skipped []string
}

// DocumentInfo describes a stored document without loading it.
type DocumentInfo struct {
	Name       string
	Path       string
	ModifiedAt time.Time
}

// DocumentRepo loads and saves day plans by name.
type DocumentRepo interface {
	Load(ctx context.Context, name string) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	// List returns stored documents, most recently modified first.
	List(ctx context.Context) ([]DocumentInfo, error)
	Exists(ctx context.Context, name string) (bool, error)
}
