package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/goliatone/go-modelkit/pkg/schema"
)

var (
	// ErrEmptyDocument is returned when the payload is blank.
	ErrEmptyDocument = errors.New("openapi: document payload is empty")
	// ErrRecursiveReference is returned when a component refers back to itself.
	ErrRecursiveReference = errors.New("openapi: recursive schema reference")
)

// Importer converts OpenAPI component schemas.
type Importer struct {
	registry *hints.Registry
	strict   bool
	validate bool
	logger   zerolog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithRegistry resolves x-modelkit-<name> extensions on reg.
func WithRegistry(reg *hints.Registry) Option {
	return func(i *Importer) {
		if reg != nil {
			i.registry = reg
		}
	}
}

// WithStrictHints makes unknown hint extensions an error instead of skipping
// them.
func WithStrictHints(strict bool) Option {
	return func(i *Importer) {
		i.strict = strict
	}
}

// WithValidation toggles document validation. It is on by default.
func WithValidation(enabled bool) Option {
	return func(i *Importer) {
		i.validate = enabled
	}
}

// WithLogger sets the logger used to report skipped extensions.
func WithLogger(logger zerolog.Logger) Option {
	return func(i *Importer) {
		i.logger = logger
	}
}

// NewImporter constructs an Importer.
func NewImporter(options ...Option) *Importer {
	i := &Importer{registry: hints.Default, validate: true, logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Import converts the component schemas of data, keyed by component name.
func Import(ctx context.Context, data []byte, options ...Option) (map[string]*schema.Schema, error) {
	return NewImporter(options...).Import(ctx, data)
}

// ImportFile reads and converts the document at path.
func ImportFile(ctx context.Context, path string, options ...Option) (map[string]*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", path, err)
	}
	return NewImporter(options...).Import(ctx, data)
}

// ImportFS reads and converts the document name of fsys.
func ImportFS(ctx context.Context, fsys fs.FS, name string, options ...Option) (map[string]*schema.Schema, error) {
	if fsys == nil {
		return nil, errors.New("openapi: filesystem is not configured")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return NewImporter(options...).Import(ctx, data)
}

// Import converts the component schemas of data, keyed by component name.
// Components that are not objects are skipped.
func (i *Importer) Import(ctx context.Context, data []byte) (map[string]*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrEmptyDocument
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if i.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}

	result := make(map[string]*schema.Schema)
	if doc.Components == nil {
		return result, nil
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil || !isObject(ref.Value) {
			i.logger.Debug().Str("component", name).Msg("skipping non object component")
			continue
		}
		c := &converter{importer: i, visiting: map[*openapi3.Schema]string{}}
		s, err := c.object(name, ref, false, componentRef(name))
		if err != nil {
			return nil, fmt.Errorf("openapi: component %q: %w", name, err)
		}
		result[name] = s
		i.logger.Debug().Str("component", name).Msg("component imported")
	}
	return result, nil
}

func componentRef(name string) string {
	return "#/components/schemas/" + name
}
