package metastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/media"
	"media-catalog/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// ErrClosed is returned by operations on a closed Store.
var ErrClosed = errors.New("metadata store is closed")

// Store persists per-item metadata.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
	closed bool
}

// TagCount is a tag and the number of items carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Open opens or creates the database at dbPath. The parent directory must
// exist and be writable.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	logging.Info("Metadata database path: %s", dbPath)

	if err := diagnosePermissions(dbPath); err != nil {
		logging.Warn("Metadata database permission diagnostics: %v", err)
	}

	// busy_timeout helps prevent "database is locked" errors
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close metadata database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to metadata database: %w", err)
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close metadata database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize metadata schema: %w", err)
	}

	logging.Info("Metadata database ready at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) (err error) {
	done := metrics.ObserveMetastoreQuery("initialize_schema")
	defer func() { done(err) }()

	_, err = s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS item_metadata (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_item_metadata_updated ON item_metadata(updated_at);
	`)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Load returns the metadata stored for id. ok is false when there is none.
func (s *Store) Load(ctx context.Context, id string) (md media.Metadata, ok bool, err error) {
	done := metrics.ObserveMetastoreQuery("load")
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return media.Metadata{}, false, ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err = s.db.QueryRowContext(ctx,
		"SELECT title, tags FROM item_metadata WHERE id = ?", id,
	).Scan(&md.Title, &md.Tags)
	if errors.Is(err, sql.ErrNoRows) {
		return media.Metadata{}, false, nil
	}
	if err != nil {
		return media.Metadata{}, false, fmt.Errorf("load metadata for %s: %w", id, err)
	}
	return md, true, nil
}

// Save upserts the metadata for id. Tags are normalized before storing.
func (s *Store) Save(ctx context.Context, id string, md media.Metadata) (err error) {
	done := metrics.ObserveMetastoreQuery("save")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO item_metadata (id, title, tags, updated_at)
		VALUES (?, ?, ?, strftime('%s', 'now'))
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`, id, md.Title, media.JoinTags(media.SplitTags(md.Tags)))
	if err != nil {
		return fmt.Errorf("save metadata for %s: %w", id, err)
	}
	return nil
}

// Delete removes the metadata for id. Deleting a missing row is not an
// error.
func (s *Store) Delete(ctx context.Context, id string) (err error) {
	done := metrics.ObserveMetastoreQuery("delete")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err = s.db.ExecContext(ctx, "DELETE FROM item_metadata WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete metadata for %s: %w", id, err)
	}
	return nil
}

// TagCounts returns every tag in use with the number of items carrying it,
// most used first and then by name.
func (s *Store) TagCounts(ctx context.Context) (counts []TagCount, err error) {
	done := metrics.ObserveMetastoreQuery("tags")
	defer func() { done(err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, "SELECT tags FROM item_metadata WHERE tags != ''")
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn("failed to close tag rows: %v", closeErr)
		}
	}()

	byName := make(map[string]int)
	for rows.Next() {
		var tags string
		if err = rows.Scan(&tags); err != nil {
			return nil, fmt.Errorf("scan tags: %w", err)
		}
		for _, tag := range media.SplitTags(tags) {
			byName[tag]++
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	counts = make([]TagCount, 0, len(byName))
	for name, n := range byName {
		counts = append(counts, TagCount{Name: name, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Name < counts[j].Name
	})
	return counts, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// diagnosePermissions logs what it can find out about the database
// directory and files before opening.
func diagnosePermissions(dbPath string) error {
	dir := filepath.Dir(dbPath)

	retry := filesystem.DefaultRetryConfig()
	dirInfo, err := filesystem.StatWithRetry(dir, retry)
	if err != nil {
		return fmt.Errorf("cannot stat metadata directory: %w", err)
	}
	logging.Debug("Metadata directory: %s (mode: %v)", dir, dirInfo.Mode())

	testFile := filepath.Join(dir, ".perm-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		return fmt.Errorf("metadata directory not writable: %w", err)
	}
	_ = os.Remove(testFile)

	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := filesystem.StatWithRetry(p, retry)
		if err != nil {
			continue
		}
		logging.Debug("Metadata file exists: %s (mode: %v, size: %d bytes)", p, info.Mode(), info.Size())
		if info.Mode().Perm()&0o200 == 0 {
			logging.Warn("Metadata file %s is read-only (mode %v), writes will fail", p, info.Mode())
		}
	}
	return nil
}
