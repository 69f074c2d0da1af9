package service

import (
	"context"

	"github.com/alexanderramin/dayplan/internal/contract"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/history"
	"github.com/alexanderramin/dayplan/internal/repository"
)

// SessionStore remembers the last opened document between runs.
type SessionStore interface {
	LastOpened() (string, error)
	SetLastOpened(name string) error
}

// EditFunc builds the command to submit against the loaded schedule.
type EditFunc func(s *domain.Schedule) (history.Command, error)

// EditResult reports one saved edit.
type EditResult struct {
	Document    string
	Description string
	Conflicts   []string
	// Dropped lists malformed tasks that this save removed from the document.
	Dropped []string
}

type PlannerService interface {
	// DocumentName maps a command-line document argument to a document
	// name. An empty argument selects today's document.
	DocumentName(arg string) string
	// LastOrToday returns the remembered document if it still exists,
	// otherwise today's document.
	LastOrToday(ctx context.Context) (string, error)
	Open(ctx context.Context, name string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Remember(ctx context.Context, name string) error
	Documents(ctx context.Context) ([]repository.DocumentInfo, error)

	Now(ctx context.Context, req contract.QueryRequest) (*contract.NowResponse, error)
	Next(ctx context.Context, req contract.QueryRequest) (*contract.NextResponse, error)
	List(ctx context.Context, req contract.QueryRequest) (*contract.ListResponse, error)

	// Edit opens document, submits the command built by fn and saves.
	Edit(ctx context.Context, document string, fn EditFunc) (*EditResult, error)
}
