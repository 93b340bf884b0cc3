package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// DirPublisher writes a site to a local directory. The directory is
// owned by the publisher: files that are not part of the published set
// are pruned, so point it at a dedicated output directory.
type DirPublisher struct {
	dir    string
	logger *slog.Logger
}

// NewDirPublisher creates a publisher writing to dir.
func NewDirPublisher(dir string, logger *slog.Logger) (*DirPublisher, error) {
	if dir == "" {
		return nil, errors.New("publish: empty output directory")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DirPublisher{
		dir:    dir,
		logger: logger.With("component", "publish"),
	}, nil
}

// Publish writes every item under the output directory, then removes
// files left over from earlier runs.
func (p *DirPublisher) Publish(ctx context.Context, items []Item) error {
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		return fmt.Errorf("publish: create output dir: %w", err)
	}

	keep := make(map[string]bool, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		dest := filepath.Join(p.dir, filepath.FromSlash(item.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("publish: create dir for %s: %w", item.Path, err)
		}
		if err := os.WriteFile(dest, item.Body, 0644); err != nil {
			return fmt.Errorf("publish: write %s: %w", item.Path, err)
		}
		keep[item.Path] = true
		p.logger.Debug("wrote file", "path", item.Path, "bytes", len(item.Body))
	}

	pruned, err := p.prune(keep)
	if err != nil {
		return err
	}
	p.logger.Info("site published", "dir", p.dir, "files", len(items), "pruned", pruned)
	return nil
}

// prune removes files under the output directory that are not in keep.
func (p *DirPublisher) prune(keep map[string]bool) (int, error) {
	var stale []string
	err := filepath.WalkDir(p.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.dir, path)
		if err != nil {
			return err
		}
		if !keep[filepath.ToSlash(rel)] {
			stale = append(stale, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("publish: scan output dir: %w", err)
	}

	for _, path := range stale {
		if err := os.Remove(path); err != nil {
			return 0, fmt.Errorf("publish: prune %s: %w", path, err)
		}
	}
	return len(stale), nil
}
