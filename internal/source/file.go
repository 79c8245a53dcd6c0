package source

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"prospekt/internal/errors"
)

// FileSource serves snapshots from a local data directory. Snapshot ids are
// slash-separated paths relative to the directory, matching the publisher's
// layout ("2024/KW01/2024-01-03.json").
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Kind returns "file".
func (f *FileSource) Kind() string { return "file" }

// Manifest walks the data directory and returns every *.json file as a
// snapshot id, sorted chronologically (KW9 before KW10, despite the
// unpadded week numbers).
func (f *FileSource) Manifest(_ context.Context) ([]string, error) {
	var ids []string
	err := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(f.dir, path)
		if err != nil {
			return err
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, transportErr("manifest", f.dir, err)
	}
	sortChronological(ids)
	return ids, nil
}

// Snapshot reads the raw payload for a snapshot id. Ids are validated to
// stay inside the data directory.
func (f *FileSource) Snapshot(_ context.Context, id string) ([]byte, error) {
	clean := filepath.Clean(filepath.FromSlash(id))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, errors.NewTransportError("snapshot", id, errors.ErrSnapshotNotFound)
	}

	data, err := os.ReadFile(filepath.Join(f.dir, clean))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewTransportError("snapshot", id, errors.ErrSnapshotNotFound)
		}
		return nil, transportErr("snapshot", id, err)
	}
	return data, nil
}

// Watch reports changes to the snapshot set. It emits one (coalesced)
// notification whenever a *.json file or a directory under the data dir is
// created, removed, or renamed, so the caller can re-read the manifest. The
// watcher closes the returned channel when ctx is done.
func (f *FileSource) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, transportErr("manifest", f.dir, err)
	}

	// Watch the root and every existing subdirectory; fsnotify is not
	// recursive on its own.
	addErr := filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if addErr != nil {
		watcher.Close()
		return nil, transportErr("manifest", f.dir, addErr)
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer watcher.Close()
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				// New week directories appear during the publishing cycle;
				// start watching them as they show up.
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = watcher.Add(event.Name)
					}
				}
				if !relevant(event.Name) {
					continue
				}
				select {
				case changes <- struct{}{}:
				default: // a notification is already pending
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return changes, nil
}

// relevant reports whether a filesystem event path can change the manifest.
func relevant(path string) bool {
	if strings.HasSuffix(path, ".json") {
		return true
	}
	// Directory create/remove/rename can add or drop whole weeks.
	ext := filepath.Ext(path)
	return ext == ""
}
