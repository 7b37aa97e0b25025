// Package publish ships a session's generated files to their
// destination. Publishing is the repo's only outward boundary: nothing
// else writes outside the process.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Publisher writes a set of named files somewhere.
type Publisher interface {
	// Publish writes every file. The message describes the change for
	// destinations that record one (a commit message); others ignore it.
	Publish(ctx context.Context, files map[string]string, message string) error
}

// DirPublisher writes files into a local directory, creating it as
// needed. Existing files are overwritten.
type DirPublisher struct {
	Root string
}

// Publish implements Publisher. Files are written in name order so
// repeated runs touch the filesystem in a stable sequence.
func (d *DirPublisher) Publish(ctx context.Context, files map[string]string, _ string) error {
	if len(files) == 0 {
		return fmt.Errorf("publish: no files to write")
	}
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("publish: creating %s: %w", d.Root, err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(d.Root, filepath.Clean(name))
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return fmt.Errorf("publish: writing %s: %w", name, err)
		}
	}
	return nil
}
