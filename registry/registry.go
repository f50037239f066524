package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/quay/xuma"
)

type inputFactory[Ctx any] func(json.RawMessage) (xuma.DataInput[Ctx], error)
type matcherFactory func(json.RawMessage) (xuma.InputMatcher, error)
type actionFactory[A any] func(json.RawMessage) (A, error)

// RegistryBuilder accumulates input and matcher factories under stable type
// URLs. It is not safe for concurrent registration and evaluation; build up
// a RegistryBuilder single-threaded, then call [RegistryBuilder.Build] to
// freeze it into a [Registry] that is safe to share.
type RegistryBuilder[Ctx any] struct {
	mu       sync.Mutex
	inputs   map[string]inputFactory[Ctx]
	matchers map[string]matcherFactory
}

// NewRegistryBuilder returns an empty builder with the two core matcher
// factories (StringMatcher, BoolMatcher) pre-registered under
// [TypeURLStringMatcher] and [TypeURLBoolMatcher].
func NewRegistryBuilder[Ctx any]() *RegistryBuilder[Ctx] {
	b := &RegistryBuilder[Ctx]{
		inputs:   make(map[string]inputFactory[Ctx]),
		matchers: make(map[string]matcherFactory),
	}
	registerBuiltinMatchers(b)
	return b
}

// RegisterInput stores, under typeURL, a closure that deserializes a JSON
// value into C and calls fromConfig. Register will panic if typeURL is
// already registered — the teacher's registry/updater package does the
// same for duplicate UpdaterSetFactory names, on the theory that a
// collision is a programming error caught at process startup, not a
// runtime condition to recover from.
func RegisterInput[Ctx any, C any](b *RegistryBuilder[Ctx], typeURL string, fromConfig func(C) (xuma.DataInput[Ctx], error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.inputs[typeURL]; ok {
		panic(fmt.Sprintf("xuma/registry: duplicate input type url %q", typeURL))
	}
	b.inputs[typeURL] = func(raw json.RawMessage) (xuma.DataInput[Ctx], error) {
		var cfg C
		if err := decodeConfig(raw, &cfg); err != nil {
			return nil, xuma.NewInvalidConfigError("input:"+typeURL, err)
		}
		in, err := fromConfig(cfg)
		if err != nil {
			return nil, xuma.NewInvalidConfigError("input:"+typeURL, err)
		}
		return in, nil
	}
}

// RegisterMatcher stores, under typeURL, a closure that deserializes a JSON
// value into C and calls fromConfig to produce an [xuma.InputMatcher].
func RegisterMatcher[Ctx any, C any](b *RegistryBuilder[Ctx], typeURL string, fromConfig func(C) (xuma.InputMatcher, error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.matchers[typeURL]; ok {
		panic(fmt.Sprintf("xuma/registry: duplicate matcher type url %q", typeURL))
	}
	b.matchers[typeURL] = func(raw json.RawMessage) (xuma.InputMatcher, error) {
		var cfg C
		if err := decodeConfig(raw, &cfg); err != nil {
			return nil, xuma.NewInvalidConfigError("matcher:"+typeURL, err)
		}
		m, err := fromConfig(cfg)
		if err != nil {
			return nil, xuma.NewInvalidConfigError("matcher:"+typeURL, err)
		}
		return m, nil
	}
}

func decodeConfig[C any](raw json.RawMessage, cfg *C) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, cfg)
}

// Registry is the frozen, immutable result of [RegistryBuilder.Build]. It
// is safe for concurrent lookups from many goroutines; a compiled
// [xuma.Matcher] does not retain a reference to the Registry that built it
// and may outlive it.
type Registry[Ctx any] struct {
	inputs   map[string]inputFactory[Ctx]
	matchers map[string]matcherFactory
}

// Build freezes b into a Registry. b must not be used afterward.
func (b *RegistryBuilder[Ctx]) Build() *Registry[Ctx] {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := &Registry[Ctx]{
		inputs:   make(map[string]inputFactory[Ctx], len(b.inputs)),
		matchers: make(map[string]matcherFactory, len(b.matchers)),
	}
	for k, v := range b.inputs {
		r.inputs[k] = v
	}
	for k, v := range b.matchers {
		r.matchers[k] = v
	}
	return r
}

// ContainsInput reports whether typeURL has a registered input factory.
func (r *Registry[Ctx]) ContainsInput(typeURL string) bool {
	_, ok := r.inputs[typeURL]
	return ok
}

// ContainsMatcher reports whether typeURL has a registered matcher factory.
func (r *Registry[Ctx]) ContainsMatcher(typeURL string) bool {
	_, ok := r.matchers[typeURL]
	return ok
}

// InputTypeURLs returns the sorted list of registered input type URLs.
func (r *Registry[Ctx]) InputTypeURLs() []string { return sortedKeys(r.inputs) }

// MatcherTypeURLs returns the sorted list of registered matcher type URLs.
func (r *Registry[Ctx]) MatcherTypeURLs() []string { return sortedKeysMatcher(r.matchers) }

func (r *Registry[Ctx]) resolveInput(typeURL string, cfg json.RawMessage) (xuma.DataInput[Ctx], error) {
	f, ok := r.inputs[typeURL]
	if !ok {
		return nil, xuma.NewUnknownTypeURLError(typeURL, "input", r.InputTypeURLs())
	}
	return f(cfg)
}

func (r *Registry[Ctx]) resolveMatcher(typeURL string, cfg json.RawMessage) (xuma.InputMatcher, error) {
	f, ok := r.matchers[typeURL]
	if !ok {
		return nil, xuma.NewUnknownTypeURLError(typeURL, "matcher", r.MatcherTypeURLs())
	}
	return f(cfg)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeysMatcher(m map[string]matcherFactory) []string { return sortedKeys(m) }

// ActionRegistryBuilder accumulates action factories under stable type
// URLs, for callers using [LoadTyped] (where actions are themselves
// TypedConfig values rather than directly JSON-deserializable).
type ActionRegistryBuilder[A any] struct {
	mu      sync.Mutex
	actions map[string]actionFactory[A]
}

// NewActionRegistryBuilder returns an empty action registry builder.
func NewActionRegistryBuilder[A any]() *ActionRegistryBuilder[A] {
	return &ActionRegistryBuilder[A]{actions: make(map[string]actionFactory[A])}
}

// RegisterAction stores, under typeURL, a closure that deserializes a JSON
// value into C and calls fromConfig to produce an action of type A.
func RegisterAction[A any, C any](b *ActionRegistryBuilder[A], typeURL string, fromConfig func(C) (A, error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.actions[typeURL]; ok {
		panic(fmt.Sprintf("xuma/registry: duplicate action type url %q", typeURL))
	}
	b.actions[typeURL] = func(raw json.RawMessage) (A, error) {
		var cfg C
		if err := decodeConfig(raw, &cfg); err != nil {
			var zero A
			return zero, xuma.NewInvalidConfigError("action:"+typeURL, err)
		}
		return fromConfig(cfg)
	}
}

// ActionRegistry is the frozen result of [ActionRegistryBuilder.Build].
type ActionRegistry[A any] struct {
	actions map[string]actionFactory[A]
}

// Build freezes b into an ActionRegistry.
func (b *ActionRegistryBuilder[A]) Build() *ActionRegistry[A] {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := &ActionRegistry[A]{actions: make(map[string]actionFactory[A], len(b.actions))}
	for k, v := range b.actions {
		r.actions[k] = v
	}
	return r
}

// ContainsAction reports whether typeURL has a registered action factory.
func (r *ActionRegistry[A]) ContainsAction(typeURL string) bool {
	_, ok := r.actions[typeURL]
	return ok
}

// ActionTypeURLs returns the sorted list of registered action type URLs.
func (r *ActionRegistry[A]) ActionTypeURLs() []string { return sortedKeys(r.actions) }

func (r *ActionRegistry[A]) resolveAction(typeURL string, cfg json.RawMessage) (A, error) {
	f, ok := r.actions[typeURL]
	if !ok {
		var zero A
		return zero, xuma.NewUnknownTypeURLError(typeURL, "action", r.ActionTypeURLs())
	}
	return f(cfg)
}
