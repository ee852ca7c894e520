package repl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch evaluates the file at path, then evaluates it again every time it
// is written, until ctx is done. The parent directory is watched so that
// editors which replace the file on save are followed.
func (s *Session) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("repl: resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("repl: watch: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("repl: watch %s: %w", filepath.Dir(abs), err)
	}

	s.reload(ctx, abs)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.reload(ctx, abs)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(s.err, "watch: %v\n", err)
		}
	}
}

func (s *Session) reload(ctx context.Context, path string) {
	fmt.Fprintf(s.out, "# %s\n", filepath.Base(path))
	if err := s.EvalFile(ctx, path); err != nil {
		fmt.Fprintf(s.err, "error: %v\n", err)
	}
}
