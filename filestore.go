package ask

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a FileStore.
type Format string

// Supported file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for a file extension or Format with no codec.
var ErrUnknownFormat = errors.New("unknown storage format")

// DefaultMaxBackups is the number of rotated copies a FileStore keeps.
const DefaultMaxBackups = 3

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// FileStore is a Storage backed by a project configuration file such as
// .yo-rc.json. With a namespace, values live under that top-level key and
// the rest of the file is preserved. It is safe for concurrent use.
type FileStore struct {
	mu         sync.Mutex
	path       string
	format     Format
	namespace  string
	maxBackups int
	logger     *zap.Logger

	loaded  bool
	dirty   bool
	rotated bool
	// doc is the whole file; values is doc[namespace] or doc itself.
	doc    map[string]any
	values map[string]any
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithNamespace stores values under the given top-level key.
func WithNamespace(namespace string) FileStoreOption {
	return func(s *FileStore) {
		s.namespace = namespace
	}
}

// WithMaxBackups sets how many rotated copies (path.1, path.2, ...) are kept.
// Zero disables backups.
func WithMaxBackups(n int) FileStoreOption {
	return func(s *FileStore) {
		if n >= 0 {
			s.maxBackups = n
		}
	}
}

// WithFormat overrides the format derived from the file extension.
func WithFormat(format Format) FileStoreOption {
	return func(s *FileStore) {
		s.format = format
	}
}

// WithStoreLogger sets the logger for load and save events.
func WithStoreLogger(logger *zap.Logger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore returns a store for path. A leading ~ is expanded to the home
// directory and relative paths are made absolute. The file is read lazily on
// first access.
func NewFileStore(path string, options ...FileStoreOption) (*FileStore, error) {
	abs, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	if abs == "" {
		return nil, errors.New("storage path is required")
	}

	s := &FileStore{
		path:       abs,
		maxBackups: DefaultMaxBackups,
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(s)
	}

	if s.format == "" {
		format, err := FormatFromPath(abs)
		if err != nil {
			return nil, err
		}
		s.format = format
	}
	switch s.format {
	case FormatJSON, FormatYAML, FormatTOML:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(s.format))
	}
	return s, nil
}

// Path returns the absolute file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Storage.
func (s *FileStore) Get(name string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, false, err
	}
	v, ok := s.values[name]
	return v, ok, nil
}

// Set implements Storage. The file is written immediately.
func (s *FileStore) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	s.values[name] = value
	s.dirty = true
	return s.save()
}

// Delete removes name and writes the file if anything changed.
func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.values[name]; !ok {
		return nil
	}
	delete(s.values, name)
	s.dirty = true
	return s.save()
}

// Keys returns the stored names in sorted order.
func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Save writes pending changes. It is a no-op when nothing changed.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *FileStore) load() error {
	if s.loaded {
		return nil
	}

	doc := make(map[string]any)
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return fmt.Errorf("failed to open storage file: %w", err)
	case len(bytes.TrimSpace(data)) > 0:
		if err := decodeDocument(s.format, data, &doc); err != nil {
			return fmt.Errorf("failed to read storage file %s: %w", s.path, err)
		}
		if doc == nil {
			doc = make(map[string]any)
		}
	}

	values := doc
	if s.namespace != "" {
		nested, ok := doc[s.namespace].(map[string]any)
		if !ok {
			nested = make(map[string]any)
			doc[s.namespace] = nested
		}
		values = nested
	}

	s.doc = doc
	s.values = values
	s.loaded = true
	s.logger.Debug("storage loaded", zap.String("path", s.path), zap.Int("keys", len(values)))
	return nil
}

func (s *FileStore) save() error {
	if !s.dirty {
		return nil
	}

	if !s.rotated {
		if err := s.rotate(); err != nil {
			return fmt.Errorf("failed to rotate storage file: %w", err)
		}
		s.rotated = true
	}

	data, err := encodeDocument(s.format, s.doc)
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}

	s.dirty = false
	s.logger.Debug("storage saved", zap.String("path", s.path))
	return nil
}

// rotate shifts path.1..path.N-1 up by one and copies the current file to
// path.1. It runs once per store, before the first write.
func (s *FileStore) rotate() error {
	if s.maxBackups <= 0 {
		return nil
	}
	current, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	oldest := s.backupPath(s.maxBackups)
	if _, err := os.Stat(oldest); err == nil {
		if err := os.Remove(oldest); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}
	for i := s.maxBackups - 1; i >= 1; i-- {
		from := s.backupPath(i)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, s.backupPath(i+1)); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}
	if err := os.WriteFile(s.backupPath(1), current, 0600); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	return nil
}

func (s *FileStore) backupPath(n int) string {
	return s.path + "." + strconv.Itoa(n)
}

func decodeDocument(format Format, data []byte, doc *map[string]any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, doc)
	case FormatYAML:
		return yaml.Unmarshal(data, doc)
	case FormatTOML:
		_, err := toml.Decode(string(data), doc)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

func encodeDocument(format Format, doc map[string]any) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// expandPath expands a leading ~ and converts path to an absolute path.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return abs, nil
}
