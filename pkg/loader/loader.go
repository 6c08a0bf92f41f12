package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

var (
	// ErrEmptyDocument is returned for blank definition files.
	ErrEmptyDocument = errors.New("loader: document is empty")
	// ErrInvalidDocument is returned when a file is neither JSON nor YAML.
	ErrInvalidDocument = errors.New("loader: invalid JSON or YAML")
)

// Catalog holds the schemas of one or more documents in declaration order.
type Catalog struct {
	schemas map[string]*schema.Schema
	sources map[string]string
	order   []string
}

func newCatalog() *Catalog {
	return &Catalog{
		schemas: make(map[string]*schema.Schema),
		sources: make(map[string]string),
	}
}

// Schema returns the schema declared as name.
func (c *Catalog) Schema(name string) (*schema.Schema, bool) {
	if c == nil {
		return nil, false
	}
	s, ok := c.schemas[name]
	return s, ok
}

// Source returns the document a schema was declared in.
func (c *Catalog) Source(name string) string {
	if c == nil {
		return ""
	}
	return c.sources[name]
}

// Names lists the schema names in declaration order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

func (c *Catalog) add(name, source string, s *schema.Schema) error {
	if previous, exists := c.sources[name]; exists {
		return fmt.Errorf("loader: duplicate schema %q (file %s, first declared in %s)", name, source, previous)
	}
	c.schemas[name] = s
	c.sources[name] = source
	c.order = append(c.order, name)
	return nil
}

// Loader parses definition documents.
type Loader struct {
	registry *hints.Registry
	logger   zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry resolves hint keys on reg instead of hints.Default.
func WithRegistry(reg *hints.Registry) Option {
	return func(l *Loader) {
		if reg != nil {
			l.registry = reg
		}
	}
}

// WithLogger sets the logger used for load and watch events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a loader. It logs nothing unless given a logger.
func New(options ...Option) *Loader {
	l := &Loader{registry: hints.Default, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load parses a single document. source names it in errors.
func Load(data []byte, source string, options ...Option) (*Catalog, error) {
	return New(options...).Load(data, source)
}

// LoadFile parses the document at path.
func LoadFile(path string, options ...Option) (*Catalog, error) {
	return New(options...).LoadFile(path)
}

// LoadFS parses every JSON and YAML document of fsys, in lexical order.
func LoadFS(fsys fs.FS, options ...Option) (*Catalog, error) {
	return New(options...).LoadFS(fsys)
}

func (l *Loader) Load(data []byte, source string) (*Catalog, error) {
	catalog := newCatalog()
	if err := l.loadInto(catalog, data, source); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (l *Loader) LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return l.Load(data, path)
}

func (l *Loader) LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := newCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("loader: read %s: %w", path, err)
		}
		return l.loadInto(catalog, data, path)
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func (l *Loader) loadInto(catalog *Catalog, data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	b := &builder{catalog: catalog, registry: l.registry, source: source}
	for index, node := range doc.Schemas {
		name, _ := node["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("loader: file %s schema #%d has no name", source, index)
		}
		s, err := b.topLevel(name, node)
		if err != nil {
			return fmt.Errorf("loader: file %s schema %q: %w", source, name, err)
		}
		if err := catalog.add(name, source, s); err != nil {
			return err
		}
		l.logger.Debug().Str("file", source).Str("schema", name).Msg("schema loaded")
	}
	return nil
}

type documentFile struct {
	Schemas []map[string]any `json:"schemas" yaml:"schemas"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("%w: %s", ErrInvalidDocument, source)
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
