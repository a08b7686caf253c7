package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"djutil/internal/services"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db        *sql.DB
	path      string
	backupDir string
	lock      *flock.Flock
}

// Open connects to the catalog database at path and takes an exclusive
// advisory lock. It refuses to open when another process holds the lock: the
// catalog must not be concurrently open for writes during a run.
func Open(path, backupDir string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "open", "catalog path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock catalog: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrExternalTool, "catalog", "open",
			"catalog is locked - close any other application using it", nil)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply catalog schema: %w", err)
	}

	return &Store{db: db, path: path, backupDir: backupDir, lock: lock}, nil
}

// Close releases the lock and the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	if s.lock != nil {
		errs = append(errs, s.lock.Unlock())
	}
	return errors.Join(errs...)
}

const entryColumns = "id, artist, title, folder_path, file_size, analysis_path, analyzed"

// AllStreamingEntries returns every entry whose backing path is empty or
// names a streaming provider. Provider detection is textual, so the filter
// runs over the full row set rather than in SQL.
func (s *Store) AllStreamingEntries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+entryColumns+" FROM entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var streaming []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if entry.IsStreaming() {
			streaming = append(streaming, entry)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return streaming, nil
}

// EntryByID returns the entry with the given id, or nil when absent.
func (s *Store) EntryByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE id = ?", id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateToLocal points the entry at a local file: backing path and size are
// replaced and the streaming marker disappears with the old path. The update
// runs in a transaction and is rolled back when it does not affect exactly
// one row.
func (s *Store) UpdateToLocal(ctx context.Context, id int64, path string, size int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update: %w", err)
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE entries SET folder_path = ?, file_size = ?, updated_at = ? WHERE id = ?",
		path, size, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		_ = tx.Rollback()
		return services.Wrap(services.ErrExternalTool, "catalog", "update", fmt.Sprintf("entry %d", id), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected != 1 {
		_ = tx.Rollback()
		return services.Wrap(services.ErrExternalTool, "catalog", "update",
			fmt.Sprintf("entry %d: update affected %d rows, expected 1", id, affected), nil)
	}
	return tx.Commit()
}

// ClearAnalysis clears the cached analysis metadata for an entry so the
// downstream consumer regenerates waveform and grid data from the new file.
func (s *Store) ClearAnalysis(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE entries SET analysis_path = '', analyzed = 0, updated_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "catalog", "clear analysis", fmt.Sprintf("entry %d", id), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected != 1 {
		return services.Wrap(services.ErrNotFound, "catalog", "clear analysis", fmt.Sprintf("entry %d not found", id), nil)
	}
	return nil
}

// Backup snapshots the database into the backup directory using VACUUM INTO
// and returns the backup path.
func (s *Store) Backup(ctx context.Context) (string, error) {
	dir := s.backupDir
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Dir(s.path)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure backup directory: %w", err)
	}
	name := fmt.Sprintf("catalog-%s-%s.db",
		time.Now().UTC().Format("20060102-150405"), uuid.NewString()[:8])
	target := filepath.Join(dir, name)
	if _, err := s.db.ExecContext(ctx, "VACUUM INTO ?", target); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "catalog", "backup", target, err)
	}
	return target, nil
}

// InsertEntry adds a catalog entry and returns its id. A positive entry.ID is
// kept; zero lets SQLite assign one. Used by seeding tools and tests; the
// linking pipeline never creates entries.
func (s *Store) InsertEntry(ctx context.Context, entry Entry) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var (
		res sql.Result
		err error
	)
	if entry.ID > 0 {
		res, err = s.db.ExecContext(ctx,
			"INSERT INTO entries (id, artist, title, folder_path, file_size, analysis_path, analyzed, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			entry.ID, entry.Artist, entry.Title, entry.FolderPath, entry.FileSize, entry.AnalysisPath, boolToInt(entry.Analyzed), now)
	} else {
		res, err = s.db.ExecContext(ctx,
			"INSERT INTO entries (artist, title, folder_path, file_size, analysis_path, analyzed, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			entry.Artist, entry.Title, entry.FolderPath, entry.FileSize, entry.AnalysisPath, boolToInt(entry.Analyzed), now)
	}
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	return res.LastInsertId()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var analyzed int64
	if err := row.Scan(&entry.ID, &entry.Artist, &entry.Title, &entry.FolderPath,
		&entry.FileSize, &entry.AnalysisPath, &analyzed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	entry.Analyzed = analyzed != 0
	return entry, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
