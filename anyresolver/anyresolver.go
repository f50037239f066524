// Package anyresolver decodes binary protobuf `Any` payloads
// (type_url + bytes) into the JSON shape xuma/registry consumes, for
// callers whose configuration arrives over the wire as proto rather than
// as a JSON/YAML document.
//
// It is a second monomorphization-then-erasure table, one layer below
// xuma/registry: [Register] captures a concrete [proto.Message] type behind
// a closure keyed by type URL, the same pattern xuma/registry uses to erase
// Config types.
package anyresolver

import (
	"sort"
	"strings"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"

	"github.com/quay/xuma"
	"github.com/quay/xuma/internal/xmetrics"
)

const googleapisPrefix = "type.googleapis.com/"

type decodeFunc func([]byte) ([]byte, error)

// Resolver is an immutable, frozen table of proto decoders keyed by type
// URL, built via [Builder].
type Resolver struct {
	decoders map[string]decodeFunc
}

// Builder accumulates decoders before [Builder.Build] freezes them.
type Builder struct {
	mu       sync.Mutex
	decoders map[string]decodeFunc
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{decoders: make(map[string]decodeFunc)}
}

// Register installs, under typeURL, a decoder for proto messages of type M:
// an empty M is allocated, proto-unmarshaled, then marshaled to JSON via
// protojson. Register panics on a duplicate typeURL, matching the
// xuma/registry convention for programming-error collisions caught at
// startup.
func Register[M interface {
	proto.Message
	Reset()
}](b *Builder, typeURL string, newMessage func() M) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.decoders[typeURL]; ok {
		panic("xuma/anyresolver: duplicate type url " + typeURL)
	}
	b.decoders[typeURL] = func(raw []byte) ([]byte, error) {
		msg := newMessage()
		if err := proto.Unmarshal(raw, msg); err != nil {
			return nil, xuma.NewInvalidConfigError("anyresolver:"+typeURL, err)
		}
		out, err := protojson.Marshal(msg)
		if err != nil {
			return nil, xuma.NewInvalidConfigError("anyresolver:"+typeURL, err)
		}
		return out, nil
	}
}

// Build freezes b into a Resolver.
func (b *Builder) Build() *Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := &Resolver{decoders: make(map[string]decodeFunc, len(b.decoders))}
	for k, v := range b.decoders {
		r.decoders[k] = v
	}
	return r
}

// TypeURLs returns the sorted list of registered type URLs.
func (r *Resolver) TypeURLs() []string {
	out := make([]string, 0, len(r.decoders))
	for k := range r.decoders {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Resolved is the JSON-decoded form of an Any payload, directly consumable
// as a registry TypedConfig's Config.
type Resolved struct {
	TypeURL string
	JSON    []byte
}

// Resolve strips the "type.googleapis.com/" prefix from a.TypeUrl if
// present, looks up the matching decoder, and decodes a.Value into JSON.
func (r *Resolver) Resolve(a *anypb.Any) (Resolved, error) {
	typeURL := strings.TrimPrefix(a.GetTypeUrl(), googleapisPrefix)
	dec, ok := r.decoders[typeURL]
	if !ok {
		xmetrics.AnyResolverDecodeTotal.WithLabelValues("error").Inc()
		names := r.TypeURLs()
		return Resolved{}, xuma.NewUnknownTypeURLError(typeURL, "any_resolver", names)
	}
	out, err := dec(a.GetValue())
	if err != nil {
		xmetrics.AnyResolverDecodeTotal.WithLabelValues("error").Inc()
		return Resolved{}, err
	}
	xmetrics.AnyResolverDecodeTotal.WithLabelValues("ok").Inc()
	return Resolved{TypeURL: typeURL, JSON: out}, nil
}
