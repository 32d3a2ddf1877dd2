package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// DotEnv loads .env files into the process environment. Earlier files take
// precedence over later ones, and variables that were already set in the
// environment when the DotEnv was created are never touched.
type DotEnv struct {
	files  []string
	preset map[string]bool

	mu    sync.Mutex
	owned map[string]bool
}

// NewDotEnv creates a DotEnv for the given files. Missing files are allowed.
func NewDotEnv(files ...string) *DotEnv {
	preset := make(map[string]bool)
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok {
			preset[key] = true
		}
	}

	return &DotEnv{
		files:  files,
		preset: preset,
		owned:  make(map[string]bool),
	}
}

// Load applies the files to the environment and returns the ones that were
// read. Variables a previous Load set but no file defines any more are unset.
func (d *DotEnv) Load() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	merged := make(map[string]string)
	var loaded []string
	for _, f := range d.files {
		values, err := godotenv.Read(f)
		if err != nil {
			continue
		}
		loaded = append(loaded, f)
		for k, v := range values {
			if _, ok := merged[k]; !ok {
				merged[k] = v
			}
		}
	}

	for k := range d.owned {
		if _, ok := merged[k]; !ok {
			os.Unsetenv(k)
			delete(d.owned, k)
		}
	}
	for k, v := range merged {
		if d.preset[k] {
			continue
		}
		os.Setenv(k, v)
		d.owned[k] = true
	}
	return loaded
}

// Watch reloads the files whenever one of them is written, created, renamed
// or removed. The watch is in place when Watch returns and stops when ctx is
// done.
func (d *DotEnv) Watch(ctx context.Context, logger *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}

	// Directories are watched rather than files so that editors replacing a
	// file by rename are still seen.
	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range d.files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return fmt.Errorf("could not resolve %s: %w", f, err)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !targets[filepath.Clean(event.Name)] || event.Op == fsnotify.Chmod {
					continue
				}
				loaded := d.Load()
				logger.Info("reloaded env files",
					zap.String("changed", event.Name),
					zap.Strings("env_files", loaded),
				)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("env file watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
