// Package credits keeps an attribution record of every image a populate
// run acquired, so fetched photos can be credited later.
package credits

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"puzzleassets/pkg/models"
)

// Image is one acquired image as stored in the catalog.
type Image struct {
	ID       string
	Category string
	Filename string
	Record   models.ImageRecord
}

type Run struct {
	ID         string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Acquired   int
	Failed     int
}

type Store struct {
	DB  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, now: time.Now}
}

// BeginRun inserts a run row and returns its id.
func (s *Store) BeginRun(ctx context.Context, mode string) (string, error) {
	id := uuid.NewString()
	if _, err := s.DB.ExecContext(ctx,
		`INSERT INTO runs (id, mode, started_at) VALUES (?, ?, ?)`,
		id, mode, s.now().UTC(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

func (s *Store) FinishRun(ctx context.Context, runID string, acquired, failed int) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, acquired = ?, failed = ? WHERE id = ?`,
		s.now().UTC(), acquired, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update run %s: not found", runID)
	}
	return nil
}

// SaveImages upserts images in one transaction. Re-running a category
// replaces the previous attribution for the same id.
func (s *Store) SaveImages(ctx context.Context, runID string, images []Image) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO images (id, category, filename, title, photographer, source, url, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
		  category = excluded.category,
		  filename = excluded.filename,
		  title = excluded.title,
		  photographer = excluded.photographer,
		  source = excluded.source,
		  url = excluded.url,
		  run_id = excluded.run_id,
		  updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
	for _, img := range images {
		if _, err := stmt.ExecContext(
			ctx,
			img.ID,
			img.Category,
			img.Filename,
			nullString(img.Record.Title),
			nullString(img.Record.Photographer),
			string(img.Record.Source),
			nullString(img.Record.URL),
			runID,
			now,
		); err != nil {
			return fmt.Errorf("exec upsert for %s: %w", img.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]Image, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, category, filename, title, photographer, source, url
		FROM images
		ORDER BY category, filename
	`)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		var (
			img          Image
			title        sql.NullString
			photographer sql.NullString
			source       string
			url          sql.NullString
		)
		if err := rows.Scan(&img.ID, &img.Category, &img.Filename, &title, &photographer, &source, &url); err != nil {
			return nil, fmt.Errorf("list scan: %w", err)
		}
		img.Record = models.ImageRecord{
			URL:          url.String,
			Photographer: photographer.String,
			Title:        title.String,
			Source:       models.Source(source),
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// LatestRun returns the most recently started run, or nil when the catalog
// has none.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	var (
		r        Run
		finished sql.NullTime
	)
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, mode, started_at, finished_at, acquired, failed FROM runs
		 ORDER BY started_at DESC, rowid DESC LIMIT 1`,
	).Scan(&r.ID, &r.Mode, &r.StartedAt, &finished, &r.Acquired, &r.Failed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if finished.Valid {
		r.FinishedAt = finished.Time
	}
	return &r, nil
}

// ExportCSV writes every stored attribution as CSV, ordered by category
// and filename, and returns the number of data rows.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	images, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "category", "filename", "title", "photographer", "source", "url"}); err != nil {
		return 0, err
	}
	for _, img := range images {
		if err := cw.Write([]string{
			img.ID,
			img.Category,
			img.Filename,
			img.Record.Title,
			img.Record.Photographer,
			string(img.Record.Source),
			img.Record.URL,
		}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(images), cw.Error()
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}
