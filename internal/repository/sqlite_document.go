package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/google/uuid"
)

// timestampLayout has a fixed width so updated_at sorts as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteDocumentRepo stores documents in the planner database. Saving a
// document replaces all of its task rows in one transaction.
type SQLiteDocumentRepo struct {
	db     db.DBTX
	uow    db.UnitOfWork
	ext    string
	clock  domain.Clock
	logger *slog.Logger
}

// NewSQLiteDocumentRepo creates a SQLiteDocumentRepo. ext is only used to
// recognise dated document names.
func NewSQLiteDocumentRepo(conn db.DBTX, uow db.UnitOfWork, ext string, clock domain.Clock, logger *slog.Logger) *SQLiteDocumentRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &SQLiteDocumentRepo{db: conn, uow: uow, ext: ext, clock: clock, logger: logger}
}

func (r *SQLiteDocumentRepo) Load(ctx context.Context, name string) (*Document, error) {
	var (
		id        string
		date      string
		dayLength int
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, date, day_length FROM documents WHERE name = ?`, name,
	).Scan(&id, &date, &dayLength)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("loading document %s: %w", name, err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name, start_time, length, rigid, fixed FROM document_tasks
		WHERE document_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading tasks of %s: %w", name, err)
	}
	defer rows.Close()

	doc := &Document{Name: name, Date: date, Schedule: domain.NewSchedule(dayLength)}
	pos := 0
	for rows.Next() {
		pos++
		var (
			rec          taskRecord
			rigid, fixed int
		)
		if err := rows.Scan(&rec.Name, &rec.StartTime, &rec.Length, &rigid, &fixed); err != nil {
			return nil, fmt.Errorf("scanning task of %s: %w", name, err)
		}
		rec.Rigid, rec.Fixed = intToBool(rigid), intToBool(fixed)
		a, err := activityOf(rec)
		if err != nil {
			reason := fmt.Sprintf("task %d: %v", pos, err)
			doc.Skipped = append(doc.Skipped, reason)
			r.logger.Warn("skipping invalid task", "document", name, "reason", reason)
			continue
		}
		doc.Schedule.Append(a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading tasks of %s: %w", name, err)
	}
	return doc, nil
}

func (r *SQLiteDocumentRepo) Save(ctx context.Context, doc *Document) error {
	if doc.Date == "" {
		doc.Date = documentDate(doc.Name, r.ext, r.clock)
	}
	records := recordsOf(doc.Schedule)
	updatedAt := r.clock.Now().UTC().Format(timestampLayout)

	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM documents WHERE name = ?`, doc.Name).Scan(&id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			id = uuid.New().String()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO documents (id, name, date, day_length, updated_at) VALUES (?, ?, ?, ?, ?)`,
				id, doc.Name, doc.Date, doc.Schedule.DayLength, updatedAt,
			); err != nil {
				return fmt.Errorf("inserting document: %w", err)
			}
		case err != nil:
			return fmt.Errorf("looking up document: %w", err)
		default:
			if _, err := tx.ExecContext(ctx,
				`UPDATE documents SET date = ?, day_length = ?, updated_at = ? WHERE id = ?`,
				doc.Date, doc.Schedule.DayLength, updatedAt, id,
			); err != nil {
				return fmt.Errorf("updating document: %w", err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM document_tasks WHERE document_id = ?`, id); err != nil {
			return fmt.Errorf("clearing tasks: %w", err)
		}
		for pos, rec := range records {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO document_tasks (document_id, position, name, start_time, length, rigid, fixed)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id, pos, rec.Name, rec.StartTime, rec.Length, boolToInt(rec.Rigid), boolToInt(rec.Fixed),
			); err != nil {
				return fmt.Errorf("inserting task %d: %w", pos+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving document %s: %w", doc.Name, err)
	}
	r.logger.Debug("document saved", "document", doc.Name, "tasks", len(records))
	return nil
}

func (r *SQLiteDocumentRepo) List(ctx context.Context) ([]DocumentInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, updated_at FROM documents ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentInfo
	for rows.Next() {
		var name, updatedAt string
		if err := rows.Scan(&name, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		modified, _ := time.Parse(timestampLayout, updatedAt)
		docs = append(docs, DocumentInfo{Name: name, ModifiedAt: modified})
	}
	return docs, rows.Err()
}

func (r *SQLiteDocumentRepo) Exists(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE name = ?`, name).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("checking document %s: %w", name, err)
	}
}
