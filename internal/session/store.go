package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"partsplit/internal/config"
	"partsplit/internal/segment"
	"partsplit/internal/services"
)

// Store persists edit sessions in SQLite. A file lock next to the database
// serializes concurrent CLI invocations: the second process fails fast with
// a clear message instead of interleaving edits.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the session database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !held {
		return nil, fmt.Errorf("another partsplit process holds %s; wait for it to finish", cfg.LockPath())
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath, lock: lock}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection and releases the store lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Create persists a new session and its splits.
func (s *Store) Create(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("session is nil")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO sessions (
            id, base_name, source_path, page_count, status,
            needs_review, review_reason, created_at, updated_at, exported_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.BaseName,
		nullableString(sess.SourcePath),
		sess.PageCount,
		sess.Status,
		boolToInt(sess.NeedsReview),
		nullableString(sess.ReviewReason),
		sess.CreatedAt.Format(time.RFC3339Nano),
		sess.UpdatedAt.Format(time.RFC3339Nano),
		nullableTime(sess.ExportedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if err := insertSplits(ctx, tx, sess.ID, sess.Splits()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create: %w", err)
	}
	return nil
}

// GetByID fetches a session with its splits.
func (s *Store) GetByID(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.Wrap(services.ErrNotFound, "session", "get", fmt.Sprintf("no session %s", id), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := s.loadSplits(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// List returns sessions filtered by status (or all sessions when no status
// is provided), oldest first, splits included.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Session, error) {
	baseQuery := `SELECT ` + sessionColumns + ` FROM sessions`
	orderClause := ` ORDER BY created_at`

	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		rows, err = s.db.QueryContext(ctx, baseQuery+` WHERE status IN (`+placeholders+`)`+orderClause, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		if err := s.loadSplits(ctx, sess); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// Update persists the current state of an existing session, replacing its
// split rows in the same transaction.
func (s *Store) Update(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("session is nil")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`UPDATE sessions
         SET base_name = ?, source_path = ?, page_count = ?, status = ?,
             needs_review = ?, review_reason = ?, updated_at = ?, exported_at = ?
         WHERE id = ?`,
		sess.BaseName,
		nullableString(sess.SourcePath),
		sess.PageCount,
		sess.Status,
		boolToInt(sess.NeedsReview),
		nullableString(sess.ReviewReason),
		sess.UpdatedAt.Format(time.RFC3339Nano),
		nullableTime(sess.ExportedAt),
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "session", "update", fmt.Sprintf("no session %s", sess.ID), nil)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE session_id = ?`, sess.ID); err != nil {
		return fmt.Errorf("clear splits: %w", err)
	}
	if err := insertSplits(ctx, tx, sess.ID, sess.Splits()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update: %w", err)
	}
	return nil
}

// MarkExported transitions a session to exported and stamps the export time.
func (s *Store) MarkExported(ctx context.Context, id string, exportedAt time.Time) error {
	exported := exportedAt.UTC()
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE sessions SET status = ?, exported_at = ?, updated_at = ? WHERE id = ?`,
		StatusExported,
		exported.Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "session", "export", fmt.Sprintf("no session %s", id), nil)
	}
	return nil
}

// Delete removes a session and, via cascade, its splits.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// ClearExported removes all exported sessions.
func (s *Store) ClearExported(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE status = ?`, StatusExported)
	if err != nil {
		return 0, fmt.Errorf("clear exported: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns a count of sessions grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM sessions GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

const sessionColumns = "id, base_name, source_path, page_count, status, needs_review, review_reason, created_at, updated_at, exported_at"

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id           string
		baseName     string
		sourcePath   sql.NullString
		pageCount    int
		statusStr    string
		needsReview  sql.NullInt64
		reviewReason sql.NullString
		createdRaw   string
		updatedRaw   string
		exportedRaw  sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&baseName,
		&sourcePath,
		&pageCount,
		&statusStr,
		&needsReview,
		&reviewReason,
		&createdRaw,
		&updatedRaw,
		&exportedRaw,
	); err != nil {
		return nil, err
	}

	sess := &Session{
		ID:           id,
		BaseName:     baseName,
		SourcePath:   sourcePath.String,
		PageCount:    pageCount,
		Status:       Status(statusStr),
		ReviewReason: reviewReason.String,
	}
	if needsReview.Valid {
		sess.NeedsReview = needsReview.Int64 != 0
	}
	if created, err := parseTimeString(createdRaw); err == nil {
		sess.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw); err == nil {
		sess.UpdatedAt = updated
	}
	if exportedRaw.Valid {
		if exported, err := parseTimeString(exportedRaw.String); err == nil {
			sess.ExportedAt = &exported
		}
	}
	return sess, nil
}

func (s *Store) loadSplits(ctx context.Context, sess *Session) error {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT instrument, matched, start_page, end_page
         FROM splits WHERE session_id = ? ORDER BY position`,
		sess.ID,
	)
	if err != nil {
		return fmt.Errorf("load splits: %w", err)
	}
	defer rows.Close()

	var splits []segment.Split
	for rows.Next() {
		var (
			instrument sql.NullString
			matched    int
			startPage  int
			endPage    int
		)
		if err := rows.Scan(&instrument, &matched, &startPage, &endPage); err != nil {
			return err
		}
		splits = append(splits, segment.NewSplit(instrument.String, matched != 0, startPage, endPage))
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := segment.ValidateCoverage(splits, sess.PageCount); err != nil {
		return services.Wrap(services.ErrStructure, "session", "load", fmt.Sprintf("stored splits for %s are inconsistent", sess.ID), err)
	}
	sess.splits = splits
	return nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, sessionID string, splits []segment.Split) error {
	for position, split := range splits {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO splits (session_id, position, instrument, matched, start_page, end_page)
             VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID,
			position,
			split.Instrument,
			boolToInt(split.Matched),
			split.StartPage,
			split.EndPage,
		)
		if err != nil {
			return fmt.Errorf("insert split %d: %w", position, err)
		}
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
