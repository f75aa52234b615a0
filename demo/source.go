// Package demo provides the sample rows shown by the dyntable command: inline
// text, the contents of local files and documents fetched over HTTP.
//
// A Source owns the catalog and the loads in flight. Every item carries a
// stable ID so that a load keeps following its item when rows are inserted
// or removed while it runs.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Kind selects one of the catalog's lists.
type Kind string

const (
	KindText   Kind = "text"
	KindFiles  Kind = "files"
	KindRemote Kind = "remote"
)

// Kinds lists every kind in display order.
var Kinds = []Kind{KindText, KindFiles, KindRemote}

var (
	// ErrUnknownKind is returned for kinds outside Kinds.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrIndex is returned for indices outside a list.
	ErrIndex = errors.New("index out of range")
)

const (
	// maxBody caps the bytes read from a remote document.
	maxBody = 64 << 10
	// prefetchLimit bounds the concurrent prefetch requests.
	prefetchLimit = 4
)

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if !slices.Contains(Kinds, kind) {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
	}
	return kind, nil
}

// Catalog is the on-disk list of items per kind.
type Catalog struct {
	Text   []string `toml:"text"`
	Files  []string `toml:"files"`
	Remote []string `toml:"remote"`
}

// LoadCatalog decodes a TOML catalog.
func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return Catalog{}, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// DefaultCatalog returns a built-in catalog with text items only.
func DefaultCatalog() Catalog {
	return Catalog{
		Text: []string{
			"Rows are measured once when the table is reloaded.",
			"Only the rows that intersect the visible area have a view. Scroll down and the rows that leave the top are handed back to the data source.",
			"Zoom with = and -. The rows keep their geometry; only the mapping to cells changes.",
			"A row that changes size moves every row below it.\n\nThe rows below are confirmed again before they are reused.",
			"Short row.",
			"Each row fades in over a few frames and is reported as displayed once the fade has finished.",
			"Press x to remove the selected row and r to reload everything.",
			"The scroll bar on the right follows the total content length.",
		},
	}
}

// Item is one catalog entry: inline text, a file path or a URL, depending on
// the kind.
type Item struct {
	ID    uuid.UUID
	Value string
}

// Result is the outcome of a load.
type Result struct {
	Kind Kind
	ID   uuid.UUID
	Text string
	Err  error
}

// Source serves catalog items and loads their contents. It is safe for
// concurrent use.
type Source struct {
	mu      sync.Mutex
	items   map[Kind][]Item
	cache   map[uuid.UUID]Result
	loads   map[uuid.UUID]context.CancelFunc
	client  *http.Client
	timeout time.Duration
	logger  *log.Logger
}

// NewSource returns a source serving the catalog's items.
func NewSource(c Catalog) *Source {
	s := &Source{
		items:   make(map[Kind][]Item),
		cache:   make(map[uuid.UUID]Result),
		loads:   make(map[uuid.UUID]context.CancelFunc),
		client:  http.DefaultClient,
		timeout: 10 * time.Second,
		logger:  log.Default(),
	}
	for kind, values := range map[Kind][]string{KindText: c.Text, KindFiles: c.Files, KindRemote: c.Remote} {
		items := make([]Item, len(values))
		for i, v := range values {
			items[i] = Item{ID: uuid.New(), Value: v}
		}
		s.items[kind] = items
	}
	return s
}

// SetHTTPClient sets the client used for remote items.
func (s *Source) SetHTTPClient(client *http.Client) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
	return s
}

// SetTimeout bounds every remote request.
func (s *Source) SetTimeout(timeout time.Duration) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

// SetLogger sets the logger for load failures.
func (s *Source) SetLogger(logger *log.Logger) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Count returns the number of items of kind.
func (s *Source) Count(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items[kind])
}

// Item returns the item at index.
func (s *Source) Item(kind Kind, index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemLocked(kind, index)
}

// IndexOf returns the current index of the item with the given ID, or -1.
func (s *Source) IndexOf(kind Kind, id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.IndexFunc(s.items[kind], func(it Item) bool { return it.ID == id })
}

// Cached returns the finished load of the item at index.
func (s *Source) Cached(kind Kind, index int) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.itemLocked(kind, index)
	if err != nil {
		return Result{}, false
	}
	r, ok := s.cache[it.ID]
	return r, ok
}

// Loading reports whether a load of the item at index is in flight.
func (s *Source) Loading(kind Kind, index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.itemLocked(kind, index)
	if err != nil {
		return false
	}
	_, ok := s.loads[it.ID]
	return ok
}

// Load resolves the item at index and calls done with the result. Text and
// file items are resolved before Load returns. Remote items are fetched on a
// new goroutine and done is called from it, unless the load is cancelled
// first. Loading an item that is already cached or in flight does nothing.
func (s *Source) Load(ctx context.Context, kind Kind, index int, done func(Result)) error {
	s.mu.Lock()
	it, err := s.itemLocked(kind, index)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if _, ok := s.cache[it.ID]; ok {
		s.mu.Unlock()
		return nil
	}
	if _, ok := s.loads[it.ID]; ok {
		s.mu.Unlock()
		return nil
	}

	if kind != KindRemote {
		s.mu.Unlock()
		r := s.resolveLocal(kind, it)
		s.store(r)
		done(r)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	s.loads[it.ID] = cancel
	client := s.client
	s.mu.Unlock()

	go func() {
		defer cancel()
		text, err := fetch(ctx, client, it.Value)
		r := Result{Kind: kind, ID: it.ID, Text: text, Err: err}

		s.mu.Lock()
		_, live := s.loads[it.ID]
		delete(s.loads, it.ID)
		if live && !errors.Is(err, context.Canceled) {
			s.cache[it.ID] = r
		}
		logger := s.logger
		s.mu.Unlock()

		if !live || errors.Is(err, context.Canceled) {
			logger.Debug("remote load cancelled", "id", it.ID, "url", it.Value)
			return
		}
		if err != nil {
			logger.Warn("remote load failed", "url", it.Value, "err", err)
		}
		done(r)
	}()
	return nil
}

// Cancel stops the load of the item at index. Its done callback will not be
// called.
func (s *Source) Cancel(kind Kind, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.itemLocked(kind, index)
	if err != nil {
		return
	}
	s.cancelLocked(it.ID)
}

// CancelItem stops the load of the item with the given ID, wherever the item
// is now.
func (s *Source) CancelItem(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// CancelAll stops every load in flight.
func (s *Source) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.loads {
		s.cancelLocked(id)
	}
}

// Insert adds an item with the given value before index. An index equal to
// Count appends.
func (s *Source) Insert(kind Kind, index int, value string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.items[kind]
	if !ok {
		return Item{}, fmt.Errorf("insert %q: %w", kind, ErrUnknownKind)
	}
	if index < 0 || index > len(items) {
		return Item{}, fmt.Errorf("insert %s at %d of %d: %w", kind, index, len(items), ErrIndex)
	}
	it := Item{ID: uuid.New(), Value: value}
	s.items[kind] = slices.Insert(items, index, it)
	return it, nil
}

// Remove deletes the item at index and cancels its load.
func (s *Source) Remove(kind Kind, index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, err := s.itemLocked(kind, index)
	if err != nil {
		return Item{}, err
	}
	s.items[kind] = slices.Delete(s.items[kind], index, index+1)
	s.cancelLocked(it.ID)
	delete(s.cache, it.ID)
	return it, nil
}

// Prefetch resolves the items at indices that are neither cached nor in
// flight, a few at a time, and caches the results. It returns the first
// error; a failed item stays uncached so a later Load retries it.
func (s *Source) Prefetch(ctx context.Context, kind Kind, indices []int) error {
	s.mu.Lock()
	var todo []Item
	for _, index := range indices {
		it, err := s.itemLocked(kind, index)
		if err != nil {
			continue
		}
		_, cached := s.cache[it.ID]
		_, loading := s.loads[it.ID]
		if !cached && !loading {
			todo = append(todo, it)
		}
	}
	client, timeout := s.client, s.timeout
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(prefetchLimit)
	for _, it := range todo {
		g.Go(func() error {
			var r Result
			if kind == KindRemote {
				fctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				text, err := fetch(fctx, client, it.Value)
				if err != nil {
					return err
				}
				r = Result{Kind: kind, ID: it.ID, Text: text}
			} else {
				r = s.resolveLocal(kind, it)
				if r.Err != nil {
					return r.Err
				}
			}
			s.store(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("prefetch %s: %w", kind, err)
	}
	return nil
}

func (s *Source) itemLocked(kind Kind, index int) (Item, error) {
	items, ok := s.items[kind]
	if !ok {
		return Item{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	if index < 0 || index >= len(items) {
		return Item{}, fmt.Errorf("%s item %d of %d: %w", kind, index, len(items), ErrIndex)
	}
	return items[index], nil
}

func (s *Source) cancelLocked(id uuid.UUID) {
	if cancel, ok := s.loads[id]; ok {
		cancel()
		delete(s.loads, id)
	}
}

func (s *Source) store(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[r.ID] = r
}

func (s *Source) resolveLocal(kind Kind, it Item) Result {
	r := Result{Kind: kind, ID: it.ID}
	switch kind {
	case KindText:
		r.Text = it.Value
	case KindFiles:
		data, err := os.ReadFile(it.Value)
		if err != nil {
			r.Err = fmt.Errorf("read %s: %w", it.Value, err)
			break
		}
		r.Text = string(data)
	}
	return r
}

func fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(data), nil
}
