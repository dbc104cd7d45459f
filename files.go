package colcsv

import (
	"context"
	"fmt"

	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// FileFunc is called by ReadFiles with an open Reader positioned after the header.
// The Reader is closed when FileFunc returns.
type FileFunc func(ctx context.Context, path string, r *Reader) error

// ReadFiles opens every path and calls fn with its Reader, running at most
// cfg.MaxOpenFiles files at a time. Each file gets its own Reader, so fn may be called
// concurrently. The first error cancels ctx for the remaining calls and is returned.
func ReadFiles(ctx context.Context, paths []string, cfg *Config, fn FileFunc) error {
	c, err := mergeConfig(cfg)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.MaxOpenFiles)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return readFile(ctx, path, c, fn)
		})
	}
	err = g.Wait()
	level.Debug(c.Logger).Log("msg", "files read", "files", len(paths))
	return err
}

func readFile(ctx context.Context, path string, c *Config, fn FileFunc) (err error) {
	r, err := Open(path, c)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := fn(ctx, path, r); err != nil {
		return fmt.Errorf("colcsv: %s: %w", path, err)
	}
	return nil
}
