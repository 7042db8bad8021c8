package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/fixdict/internal/dict"
	"github.com/guttosm/fixdict/internal/logger"
	"github.com/guttosm/fixdict/internal/quickfix"
	"github.com/guttosm/fixdict/internal/service"
	"github.com/guttosm/fixdict/internal/storage"
)

const (
	DefaultPattern = "*.xml"
	maxParallel    = 8
)

// Options controls a directory ingestion run.
type Options struct {
	Dir      string // directory holding QuickFIX XML files
	Pattern  string // glob matched against file base names (default "*.xml")
	Parallel int    // concurrent imports, clamped to 1..8 (default min(NumCPU, 8))
	Force    bool   // persist again versions already in storage
	Strict   bool   // reject required markers other than Y/N
}

func (o Options) pattern() string {
	if o.Pattern == "" {
		return DefaultPattern
	}
	return o.Pattern
}

func (o Options) parallel() int {
	n := o.Parallel
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n > maxParallel {
		n = maxParallel
	}
	return n
}

func (o Options) importOptions() []quickfix.Option {
	opts := []quickfix.Option{quickfix.WithLogger(logger.L().With().Str("component", "import").Logger())}
	if o.Strict {
		opts = append(opts, quickfix.WithStrictRequired())
	}
	return opts
}

// DiscoverFiles lists the regular files in dir whose base name matches
// pattern, sorted by name. Subdirectories are not descended into.
func DiscoverFiles(dir, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !g.Match(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// ProcessDirectory imports every spec file in opts.Dir and registers the
// resulting dictionaries.
//
// Behavior:
//   - Fails when no file matches the pattern.
//   - Imports files concurrently, bounded by opts.Parallel.
//   - Two files declaring the same version are an error.
//   - When repo is non-nil, each dictionary is persisted unless its version
//     is already stored and opts.Force is false.
//   - The first error cancels the remaining files and is returned.
//   - Dictionaries are registered, with their source file, only once every
//     file has succeeded; on error the registry is left untouched.
func ProcessDirectory(ctx context.Context, opts Options, registry *service.Registry, repo storage.DictionaryRepository) error {
	files, err := DiscoverFiles(opts.Dir, opts.pattern())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no spec files matching %q in %s", opts.pattern(), opts.Dir)
	}

	parallel := opts.parallel()
	logger.L().Info().Int("files", len(files)).Str("dir", opts.Dir).Int("max_parallel", parallel).Msg("ingestion start")

	var (
		mu     sync.Mutex
		seen   = make(map[string]string, len(files))
		loaded = make(map[string]*dict.Dictionary, len(files))
	)
	claim := func(version, file string) error {
		mu.Lock()
		defer mu.Unlock()
		if prev, ok := seen[version]; ok {
			return fmt.Errorf("%s declared by both %s and %s", version, filepath.Base(prev), filepath.Base(file))
		}
		seen[version] = file
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, parallel)

	for i, file := range files {
		idx := i
		f := file
		select {
		case sem <- struct{}{}:
		case <-gctx.Done():
		}
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)

			d, err := quickfix.LoadFile(f, opts.importOptions()...)
			if err != nil {
				logger.L().Error().Str("file", base).Err(err).Msg("import failed")
				return err
			}
			if err := claim(d.Version(), f); err != nil {
				return err
			}

			persisted, err := persist(gctx, repo, d, base, opts.Force)
			if err != nil {
				logger.L().Error().Str("file", base).Str("version", d.Version()).Err(err).Msg("persist failed")
				return fmt.Errorf("file %s: %w", f, err)
			}

			mu.Lock()
			loaded[d.Version()] = d
			mu.Unlock()

			logger.L().Info().
				Int("idx", idx+1).
				Int("total", len(files)).
				Str("file", base).
				Str("version", d.Version()).
				Int("fields", len(d.Fields())).
				Int("messages", len(d.Messages())).
				Bool("persisted", persisted).
				Dur("elapsed", time.Since(start)).
				Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// All or nothing: the registry only sees a fully imported directory.
	for v := range loaded {
		if err := registry.CheckSource(v, seen[v]); err != nil {
			return err
		}
	}
	for v, d := range loaded {
		if _, err := registry.RegisterSource(d, seen[v]); err != nil {
			return err
		}
	}
	return nil
}

// persist stores d unless storage is disabled or the version is already
// there and force is off. It reports whether a write happened.
func persist(ctx context.Context, repo storage.DictionaryRepository, d *dict.Dictionary, sourceFile string, force bool) (bool, error) {
	if repo == nil {
		return false, nil
	}
	exists, err := repo.HasDictionary(ctx, d.Version())
	if err != nil {
		return false, fmt.Errorf("check catalog: %w", err)
	}
	if exists && !force {
		return false, nil
	}
	if err := repo.SaveDictionary(ctx, d, sourceFile); err != nil {
		return false, fmt.Errorf("save dictionary: %w", err)
	}
	return true, nil
}
