package hints

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Hint is the opaque identifier returned by Declare. Hints compare by
// identity, never by name.
type Hint struct {
	name string
	seq  uint64
}

// Name returns the human-readable name supplied at declaration time.
func (h *Hint) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

func (h *Hint) String() string {
	if h == nil {
		return "Hint(<nil>)"
	}
	return fmt.Sprintf("Hint(%s#%d)", h.name, h.seq)
}

// Target is implemented by values that can hold hint values. Setters receive
// the target so they can store a transformed value.
type Target interface {
	fmt.Stringer
	StoreHint(h *Hint, value any)
}

// Setter replaces the plain write performed by Apply for a given hint.
type Setter func(target Target, hint *Hint, value any) error

// Option configures a hint declaration.
type Option func(*declaration)

// WithSetter installs a custom setter invoked whenever the hint is assigned.
func WithSetter(setter Setter) Option {
	return func(d *declaration) {
		d.setter = setter
	}
}

type declaration struct {
	hint   *Hint
	setter Setter
}

// Registry stores hint declarations. Reads are safe for concurrent use;
// declarations are expected to happen during initialisation.
type Registry struct {
	mu     sync.RWMutex
	parent *Registry
	decls  map[*Hint]declaration
	byName map[string][]*Hint
	order  []*Hint
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithParent makes the registry fall back to parent for hints it did not
// declare itself.
func WithParent(parent *Registry) RegistryOption {
	return func(r *Registry) {
		r.parent = parent
	}
}

var sequence struct {
	mu   sync.Mutex
	next uint64
}

func nextSeq() uint64 {
	sequence.mu.Lock()
	defer sequence.mu.Unlock()
	sequence.next++
	return sequence.next
}

// NewRegistry creates an empty registry.
func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		decls:  make(map[*Hint]declaration),
		byName: make(map[string][]*Hint),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Default is the process-wide registry used by fields that are not given an
// explicit one.
var Default = NewRegistry()

// Declare registers a new hint and returns its identifier.
func (r *Registry) Declare(name string, options ...Option) *Hint {
	hint := &Hint{name: strings.TrimSpace(name), seq: nextSeq()}
	decl := declaration{hint: hint}
	for _, opt := range options {
		if opt != nil {
			opt(&decl)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.decls[hint] = decl
	r.byName[hint.name] = append(r.byName[hint.name], hint)
	r.order = append(r.order, hint)
	return hint
}

// IsHint reports whether h was declared on the registry or one of its parents.
func (r *Registry) IsHint(h *Hint) bool {
	_, ok := r.lookup(h)
	return ok
}

func (r *Registry) lookup(h *Hint) (declaration, bool) {
	if r == nil || h == nil {
		return declaration{}, false
	}
	r.mu.RLock()
	decl, ok := r.decls[h]
	r.mu.RUnlock()
	if ok {
		return decl, true
	}
	return r.parent.lookup(h)
}

// Apply assigns value to hint h on target, dispatching to the hint's custom
// setter when one was declared.
func (r *Registry) Apply(target Target, h *Hint, value any) error {
	decl, ok := r.lookup(h)
	if !ok {
		return &UnknownHintError{Target: target, Hint: h, Name: h.Name(), Value: value}
	}
	if decl.setter != nil {
		return decl.setter(target, h, value)
	}
	target.StoreHint(h, value)
	return nil
}

// Lookup resolves a hint by name, for string-keyed definitions. Names shared
// by several declarations cannot be resolved.
func (r *Registry) Lookup(name string) (*Hint, error) {
	name = strings.TrimSpace(name)
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.RLock()
		matches := append([]*Hint(nil), reg.byName[name]...)
		reg.mu.RUnlock()
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("hints: name %q is declared %d times: %w", name, len(matches), ErrAmbiguousHint)
		}
	}
	return nil, &UnknownHintError{Name: name}
}

// Hints returns the hints declared directly on the registry, sorted by name
// then declaration order.
func (r *Registry) Hints() []*Hint {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := append([]*Hint(nil), r.order...)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].name < out[j].name
	})
	return out
}

// Declare registers a hint on the Default registry.
func Declare(name string, options ...Option) *Hint {
	return Default.Declare(name, options...)
}

// IsHint reports whether h was declared on the Default registry.
func IsHint(h *Hint) bool {
	return Default.IsHint(h)
}

// Apply assigns a hint value through the Default registry.
func Apply(target Target, h *Hint, value any) error {
	return Default.Apply(target, h, value)
}

// Lookup resolves a hint name on the Default registry.
func Lookup(name string) (*Hint, error) {
	return Default.Lookup(name)
}
