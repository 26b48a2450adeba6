package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"media-catalog/internal/filesystem"
	"media-catalog/internal/logging"
	"media-catalog/internal/mediatypes"
	"media-catalog/internal/metrics"
)

// Manager lists and edits the media files directly inside one root
// directory. It keeps no state between calls beyond its configuration, so
// every listing reflects the directory as it is at call time.
type Manager struct {
	scheme *IDScheme
	store  MetadataStore
	loc    *time.Location
	retry  filesystem.RetryConfig
}

// Option configures a Manager.
type Option func(*Manager)

// WithMetadataStore attaches a store for titles and tags.
func WithMetadataStore(store MetadataStore) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithLocation sets the time zone used to bucket items by day.
func WithLocation(loc *time.Location) Option {
	return func(m *Manager) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithRetryConfig overrides the ESTALE retry policy for stat, open and
// readdir calls.
func WithRetryConfig(cfg filesystem.RetryConfig) Option {
	return func(m *Manager) {
		m.retry = cfg
	}
}

// New creates a Manager for root. It fails with ErrInvalidDirectory if root
// does not exist or is not a directory.
func New(root string, mode AddressingMode, opts ...Option) (*Manager, error) {
	scheme, err := NewIDScheme(root, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDirectory, err)
	}

	m := &Manager{
		scheme: scheme,
		loc:    time.Local,
		retry:  filesystem.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(m)
	}

	info, err := filesystem.StatWithRetry(scheme.Root(), m.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDirectory, root)
	}

	logging.Debug("Media manager ready: root=%s mode=%s store=%t", scheme.Root(), mode, m.store != nil)
	return m, nil
}

// Root returns the absolute media directory.
func (m *Manager) Root() string {
	return m.scheme.Root()
}

// Scheme returns the identifier scheme in use.
func (m *Manager) Scheme() *IDScheme {
	return m.scheme
}

// Location returns the time zone used for date grouping.
func (m *Manager) Location() *time.Location {
	return m.loc
}

// HasMetadataStore reports whether titles and tags are persisted.
func (m *Manager) HasMetadataStore() bool {
	return m.store != nil
}

// ListMediaItems enumerates the root, keeps the entries the qualifier
// selects, then sorts and groups them. Entries that vanish or cannot be read
// between enumeration and inspection are skipped. Only a failure to read the
// root itself is reported, wrapped in ErrIOFailure.
func (m *Manager) ListMediaItems(ctx context.Context, q Qualifier) (groups []MediaGroup, err error) {
	done := metrics.ObserveCatalogOperation("list")
	defer func() { done(err) }()

	root := m.scheme.Root()
	entries, err := filesystem.ReadDirWithRetry(root, m.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIOFailure, root, err)
	}

	matcher := newMatcher(q, m.retry)
	wantTags := q.Tags()
	filterTags := len(wantTags) > 0 && m.store != nil
	if len(wantTags) > 0 && m.store == nil {
		logging.Debug("Tag filter %v ignored: no metadata store configured", wantTags)
	}

	items := make([]MediaItem, 0, len(entries))
	for _, entry := range entries {
		metrics.CatalogEntriesScanned.Inc()
		name := entry.Name()

		if !matcher.MatchName(name) {
			metrics.CatalogEntriesSkipped.WithLabelValues("unmatched").Inc()
			continue
		}

		p := filepath.Join(root, name)
		info, statErr := filesystem.StatWithRetry(p, m.retry)
		if statErr != nil {
			logging.Debug("Skipping %s: %v", name, statErr)
			metrics.CatalogEntriesSkipped.WithLabelValues("stat").Inc()
			continue
		}
		if !info.Mode().IsRegular() {
			metrics.CatalogEntriesSkipped.WithLabelValues("not_regular").Inc()
			continue
		}

		item, matErr := m.itemFromInfo(ctx, p, info)
		if matErr != nil {
			logging.Debug("Skipping %s: %v", name, matErr)
			metrics.CatalogEntriesSkipped.WithLabelValues("materialize").Inc()
			continue
		}

		if filterTags && !hasAnyTag(item.Tags, wantTags) {
			metrics.CatalogEntriesSkipped.WithLabelValues("tags").Inc()
			continue
		}

		items = append(items, item)
	}

	order := q.SortOrder()
	SortItems(items, order)
	if order.ByDate() {
		groups = GroupByDate(items, m.loc)
	} else {
		groups = GroupByTitle(items)
	}

	metrics.CatalogItemsReturned.Observe(float64(len(items)))
	metrics.CatalogGroupsReturned.Observe(float64(len(groups)))
	logging.Debug("Listed %d items in %d groups for %s", len(items), len(groups), q)
	return groups, nil
}

// GetMediaItem returns the item for id, or ErrNotFound if id does not name
// a regular file directly inside the root.
func (m *Manager) GetMediaItem(ctx context.Context, id string) (item MediaItem, err error) {
	done := metrics.ObserveCatalogOperation("get")
	defer func() { done(err) }()

	p, err := m.resolveExisting(id)
	if err != nil {
		return MediaItem{}, err
	}
	item, err = m.materialize(ctx, p)
	if err != nil {
		return MediaItem{}, fmt.Errorf("%w: %s: %v", ErrNotFound, id, err)
	}
	return item, nil
}

// OpenContent opens the file behind id for reading. The caller closes it.
func (m *Manager) OpenContent(ctx context.Context, id string) (*os.File, MediaItem, error) {
	item, err := m.GetMediaItem(ctx, id)
	if err != nil {
		return nil, MediaItem{}, err
	}
	p, err := m.scheme.Resolve(item.ID)
	if err != nil {
		return nil, MediaItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	f, err := filesystem.OpenWithRetry(p, m.retry)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, MediaItem{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, MediaItem{}, fmt.Errorf("%w: open %s: %v", ErrIOFailure, id, err)
	}
	return f, item, nil
}

// UpdateMediaItem writes item.Date to the file's modification time (unless
// zero) and stores item.Title and item.Tags when a metadata store is
// configured.
func (m *Manager) UpdateMediaItem(ctx context.Context, item MediaItem) (err error) {
	done := metrics.ObserveCatalogOperation("update")
	defer func() { done(err) }()

	p, err := m.resolveExisting(item.ID)
	if err != nil {
		return err
	}

	if !item.Date.IsZero() {
		if err = os.Chtimes(p, time.Now(), item.Date); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", ErrNotFound, item.ID)
			}
			return fmt.Errorf("%w: set time on %s: %v", ErrIOFailure, item.ID, err)
		}
	}

	if canonical, idErr := m.scheme.ToIdentifier(p); idErr == nil {
		item.ID = canonical
	}
	if err = m.saveMetadata(ctx, item); err != nil {
		return err
	}

	logging.Debug("Updated %s (date=%s)", item.ID, item.Date.Format(time.RFC3339))
	return nil
}

// DeleteMediaItem removes the file behind id and its stored metadata. An
// identifier that names nothing is not an error.
func (m *Manager) DeleteMediaItem(ctx context.Context, id string) (err error) {
	done := metrics.ObserveCatalogOperation("delete")
	defer func() { done(err) }()

	p, err := m.scheme.Resolve(id)
	if err != nil {
		logging.Debug("Delete of %q ignored: %v", id, err)
		return nil
	}

	info, statErr := filesystem.StatWithRetry(p, m.retry)
	switch {
	case statErr != nil && os.IsNotExist(statErr):
		logging.Debug("Delete of %s: already gone", id)
	case statErr != nil:
		logging.Warn("Delete of %s: stat failed: %v", id, statErr)
	case !info.Mode().IsRegular():
		logging.Debug("Delete of %s ignored: not a regular file", id)
		return nil
	default:
		if rmErr := os.Remove(p); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("%w: remove %s: %v", ErrIOFailure, id, rmErr)
		}
	}

	if m.store != nil {
		canonical, idErr := m.scheme.ToIdentifier(p)
		if idErr != nil {
			canonical = id
		}
		if storeErr := m.store.Delete(ctx, canonical); storeErr != nil {
			logging.Warn("Failed to drop metadata for %s: %v", canonical, storeErr)
		}
	}
	return nil
}

// CreateMediaItem writes content to a new file named after the base name of
// item.ID. An existing file with that name is never overwritten. On success
// item.ID holds the canonical identifier of the new file; on any failure the
// file is removed again and item is left untouched.
func (m *Manager) CreateMediaItem(ctx context.Context, item *MediaItem, content io.Reader) (err error) {
	done := metrics.ObserveCatalogOperation("create")
	defer func() { done(err) }()

	if item == nil {
		return fmt.Errorf("%w: nil item", ErrIOFailure)
	}

	name := filepath.Base(filepath.FromSlash(item.ID))
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		return fmt.Errorf("%w: invalid file name %q", ErrIOFailure, item.ID)
	}
	target := filepath.Join(m.scheme.Root(), name)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIOFailure, name, err)
	}

	if _, err = io.Copy(f, content); err != nil {
		_ = f.Close()
		removePartial(target)
		return fmt.Errorf("%w: write %s: %v", ErrIOFailure, name, err)
	}
	if err = f.Close(); err != nil {
		removePartial(target)
		return fmt.Errorf("%w: close %s: %v", ErrIOFailure, name, err)
	}

	if !item.Date.IsZero() {
		if err = os.Chtimes(target, time.Now(), item.Date); err != nil {
			logging.Warn("Created %s but could not set its time: %v", name, err)
			err = nil
		}
	}

	id, err := m.scheme.ToIdentifier(target)
	if err != nil {
		removePartial(target)
		return fmt.Errorf("%w: %v", ErrIOFailure, err)
	}

	// The file only stays if its metadata could be stored as well.
	created := *item
	created.ID = id
	if err = m.saveMetadata(ctx, created); err != nil {
		removePartial(target)
		return err
	}
	item.ID = id

	logging.Info("Created media item %s", id)
	return nil
}

// CountByType counts the listable files in the root per media type name.
// Every listable type is present in the result, possibly with zero.
func (m *Manager) CountByType(_ context.Context) (counts map[string]int, err error) {
	done := metrics.ObserveCatalogOperation("stats")
	defer func() { done(err) }()

	counts = make(map[string]int, len(mediatypes.Listable))
	for _, t := range mediatypes.Listable {
		counts[t.String()] = 0
	}

	root := m.scheme.Root()
	entries, err := filesystem.ReadDirWithRetry(root, m.retry)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrIOFailure, root, err)
	}

	matcher := newMatcher(NewQualifier().WithTypes(mediatypes.Listable...), m.retry)
	for _, entry := range entries {
		if matcher.Accept(root, entry.Name()) {
			counts[mediatypes.Classify(entry.Name()).String()]++
		}
	}
	return counts, nil
}

// resolveExisting maps id to a path and checks that a regular file is there.
func (m *Manager) resolveExisting(id string) (string, error) {
	p, err := m.scheme.Resolve(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	info, err := filesystem.StatWithRetry(p, m.retry)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p, nil
}

// materialize builds the item for a file known to be inside the root. The
// title defaults to the file name; the store, when present, may override it
// and supplies tags.
func (m *Manager) materialize(ctx context.Context, p string) (MediaItem, error) {
	info, err := filesystem.StatWithRetry(p, m.retry)
	if err != nil {
		return MediaItem{}, err
	}
	if !info.Mode().IsRegular() {
		return MediaItem{}, errors.New("not a regular file")
	}
	return m.itemFromInfo(ctx, p, info)
}

// itemFromInfo builds the item for p from an already taken stat.
func (m *Manager) itemFromInfo(ctx context.Context, p string, info os.FileInfo) (MediaItem, error) {
	id, err := m.scheme.ToIdentifier(p)
	if err != nil {
		return MediaItem{}, err
	}

	item := MediaItem{
		Title: filepath.Base(p),
		ID:    id,
		Date:  info.ModTime(),
	}

	if m.store != nil {
		md, ok, loadErr := m.store.Load(ctx, id)
		switch {
		case loadErr != nil:
			logging.Warn("Metadata lookup for %s failed: %v", id, loadErr)
		case ok:
			if md.Title != "" {
				item.Title = md.Title
			}
			item.Tags = md.Tags
		}
	}
	return item, nil
}

func (m *Manager) saveMetadata(ctx context.Context, item MediaItem) error {
	if m.store == nil {
		return nil
	}
	md := Metadata{
		Title: item.Title,
		Tags:  JoinTags(SplitTags(item.Tags)),
	}
	if err := m.store.Save(ctx, item.ID, md); err != nil {
		return fmt.Errorf("%w: save metadata for %s: %w", ErrIOFailure, item.ID, err)
	}
	return nil
}

func hasAnyTag(tags string, want []string) bool {
	have := SplitTags(tags)
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("Failed to remove partial file %s: %v", path, err)
	}
}
