package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"

	"github.com/guttosm/fixdict/internal/logger"
	"github.com/guttosm/fixdict/internal/quickfix"
	"github.com/guttosm/fixdict/internal/service"
	"github.com/guttosm/fixdict/internal/storage"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads spec files from a directory as they change. A file that
// fails to import, or that declares a version owned by another file, leaves
// the dictionary already registered for that version in place.
type Watcher struct {
	opts     Options
	registry *service.Registry
	repo     storage.DictionaryRepository
	match    glob.Glob
	fsw      *fsnotify.Watcher

	// Debounce is the quiet period after the last event before files are reloaded.
	Debounce time.Duration

	// OnReload, when set, is called after each reload batch with the files
	// that were processed and the first error seen.
	OnReload func(files []string, err error)

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewWatcher starts watching opts.Dir. Call Run to process events and Close
// to release the underlying watcher.
func NewWatcher(opts Options, registry *service.Registry, repo storage.DictionaryRepository) (*Watcher, error) {
	g, err := glob.Compile(opts.pattern())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", opts.pattern(), err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(opts.Dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", opts.Dir, err)
	}
	return &Watcher{
		opts:     opts,
		registry: registry,
		repo:     repo,
		match:    g,
		fsw:      fsw,
		Debounce: defaultDebounce,
		pending:  make(map[string]struct{}),
	}, nil
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = struct{}{}
			w.mu.Unlock()

			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload(ctx, w.drain())

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.L().Warn().Err(err).Str("dir", w.opts.Dir).Msg("watcher error")
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	return w.match.Match(filepath.Base(event.Name))
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(files)
	return files
}

func (w *Watcher) reload(ctx context.Context, files []string) {
	var firstErr error
	for _, f := range files {
		if err := w.reloadFile(ctx, f); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if w.OnReload != nil {
		w.OnReload(files, firstErr)
	}
}

func (w *Watcher) reloadFile(ctx context.Context, path string) error {
	base := filepath.Base(path)
	start := time.Now()

	d, err := quickfix.LoadFile(path, w.opts.importOptions()...)
	if err != nil {
		logger.L().Error().Str("file", base).Err(err).Msg("reload failed, keeping previous dictionary")
		return err
	}
	if err := w.registry.CheckSource(d.Version(), path); err != nil {
		logger.L().Error().Str("file", base).Err(err).Msg("reload rejected, keeping previous dictionary")
		return err
	}

	if _, err := persist(ctx, w.repo, d, base, true); err != nil {
		logger.L().Error().Str("file", base).Str("version", d.Version()).Err(err).Msg("persist failed")
		return err
	}
	replaced, err := w.registry.RegisterSource(d, path)
	if err != nil {
		return err
	}
	logger.L().Info().
		Str("file", base).
		Str("version", d.Version()).
		Bool("replaced", replaced).
		Dur("elapsed", time.Since(start)).
		Msg("dictionary reloaded")
	return nil
}
