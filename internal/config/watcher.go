package config

import (
	"context"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"netpulse/pkg/logx"
)

// Watch re-loads the config whenever the file changes and hands the new
// value to onChange. Events are debounced so editors that write in several
// steps trigger one reload; an invalid config is rejected with a warning
// and the previous one stays active. Blocks until ctx is done.
func Watch(ctx context.Context, path string, log logx.Logger, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	file := filepath.Base(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	// mu serializes reloads and guards lastHash and timer: each debounced
	// timer fires on its own goroutine, and a slow reload may still be
	// running when the next one fires.
	var (
		mu       sync.Mutex
		lastHash uint64
		timer    *time.Timer
	)
	if data, err := os.ReadFile(path); err == nil {
		lastHash = hashBytes(data)
	}

	reload := func() {
		mu.Lock()
		defer mu.Unlock()

		cfg, err := Load(path)
		if err != nil {
			log.Warn("config rejected", logx.String("path", path), logx.Err(err))
			return
		}

		// Skip redundant reloads when content is unchanged.
		data, err := os.ReadFile(path)
		if err == nil {
			h := hashBytes(data)
			if h == lastHash {
				log.Debug("config unchanged; skipping reload", logx.String("path", path))
				return
			}
			lastHash = h
		}

		log.Info("config reloaded", logx.String("path", path))
		onChange(cfg)
	}
	debounce := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(250*time.Millisecond, reload)
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	log.Debug("config watcher started", logx.String("dir", dir), logx.String("file", file))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// Compare by basename; editors often replace the file via rename.
			if strings.EqualFold(filepath.Base(ev.Name), file) {
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove|fsnotify.Chmod) != 0 {
					debounce()
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				log.Warn("config watch error", logx.String("dir", dir), logx.Err(err))
			}
		}
	}
}

func hashBytes(b []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64()
}
