package server

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/schemafile"
)

// SchemaHolder provides concurrent access to the served schema and reloads
// it when its file changes.
type SchemaHolder struct {
	mu       sync.RWMutex
	schema   *model.Schema
	path     string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*model.Schema)
	onReload []func(error)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSchemaHolder loads the schema at path.
func NewSchemaHolder(path string, logger zerolog.Logger) (*SchemaHolder, error) {
	schema, err := schemafile.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server: load schema: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("server: absolute path: %w", err)
	}
	return &SchemaHolder{
		schema: schema,
		path:   absPath,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

// StaticSchema wraps a schema that is never reloaded.
func StaticSchema(schema *model.Schema) *SchemaHolder {
	return &SchemaHolder{schema: schema, logger: zerolog.Nop(), stopCh: make(chan struct{})}
}

// Get returns the current schema.
func (h *SchemaHolder) Get() *model.Schema {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.schema
}

// Path returns the watched file, or "" for a static schema.
func (h *SchemaHolder) Path() string {
	return h.path
}

// Reload re-reads the schema file. On failure the previous schema stays in
// place.
func (h *SchemaHolder) Reload() error {
	if h.path == "" {
		return nil
	}
	h.logger.Info().Str("path", h.path).Msg("reloading schema")

	schema, err := schemafile.LoadFile(h.path)
	if err != nil {
		h.logger.Error().Err(err).Msg("schema reload failed, keeping old schema")
		h.notifyReload(err)
		return fmt.Errorf("server: reload schema: %w", err)
	}

	h.mu.Lock()
	old := h.schema
	h.schema = schema
	listeners := slices.Clone(h.onChange)
	h.mu.Unlock()

	h.notifyReload(nil)

	if old.Len() != schema.Len() {
		h.logger.Info().Int("old", old.Len()).Int("new", schema.Len()).Msg("field count changed")
	}
	for _, fn := range listeners {
		fn(schema)
	}
	h.logger.Info().Msg("schema reloaded successfully")
	return nil
}

// OnChange registers a callback run after each successful reload.
func (h *SchemaHolder) OnChange(fn func(*model.Schema)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// OnReload registers a callback run after every reload attempt with its
// error, or nil on success.
func (h *SchemaHolder) OnReload(fn func(error)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReload = append(h.onReload, fn)
}

func (h *SchemaHolder) notifyReload(err error) {
	h.mu.RLock()
	hooks := slices.Clone(h.onReload)
	h.mu.RUnlock()
	for _, fn := range hooks {
		fn(err)
	}
}

// WatchFile reloads the schema whenever its file is written or replaced.
func (h *SchemaHolder) WatchFile() error {
	if h.path == "" {
		return fmt.Errorf("server: static schema cannot be watched")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: create watcher: %w", err)
	}
	// Watch the directory; editors save by replacing the file.
	if err := watcher.Add(filepath.Dir(h.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("server: watch directory: %w", err)
	}
	h.watcher = watcher

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching schema file for changes")
	return nil
}

// Stop ends file watching.
func (h *SchemaHolder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *SchemaHolder) watchLoop() {
	filename := filepath.Base(h.path)

	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("schema file changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}
