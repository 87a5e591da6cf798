// Package templates serves operator-authored response text (help, start,
// patch notes). Files live in one directory and are editable without a
// redeploy: a watcher drops the cache entry whenever a file changes.
package templates

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Store caches named .txt templates from a directory.
type Store struct {
	mu      sync.Mutex
	dir     string
	cache   map[string]string
	watcher *fsnotify.Watcher
}

// New opens a template store over dir. Watching is best effort: if the
// watcher cannot start, templates are simply re-read per miss after edits.
func New(dir string) (*Store, error) {
	s := &Store{dir: dir, cache: map[string]string{}}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return s, nil
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return s, nil
	}
	s.watcher = watcher
	go s.watchLoop()
	return s, nil
}

// Get returns the named template's content. The boolean is false when the
// file does not exist.
func (s *Store) Get(name string) (string, bool) {
	s.mu.Lock()
	if text, ok := s.cache[name]; ok {
		s.mu.Unlock()
		return text, true
	}
	s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name+".txt"))
	if err != nil {
		return "", false
	}
	text := string(data)

	s.mu.Lock()
	s.cache[name] = text
	s.mu.Unlock()
	return text, true
}

// Close stops the watcher.
func (s *Store) Close() {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
}

func (s *Store) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), ".txt")
			s.mu.Lock()
			delete(s.cache, name)
			s.mu.Unlock()
		case _, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
