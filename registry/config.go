// Package registry turns type-URL-tagged configuration documents into
// compiled [xuma.Matcher] trees.
//
// Registration happens through a builder (early type erasure, à la the
// teacher's registry/updater package): each call to [RegisterInput],
// [RegisterMatcher], or [RegisterAction] captures a concrete Config type
// behind a closure keyed by a stable type URL, so the frozen [Registry]
// itself stays non-generic in the extension universe while each
// registration site keeps full static typing.
package registry

import "encoding/json"

// MatcherConfig is the top-level configuration document for a
// [xuma.Matcher]: an ordered list of field matchers plus an optional
// fallback.
type MatcherConfig struct {
	Matchers  []FieldMatcherConfig `json:"matchers"`
	OnNoMatch *OnMatchConfig       `json:"on_no_match,omitempty"`
}

// FieldMatcherConfig is a (predicate, on_match) pair.
type FieldMatcherConfig struct {
	Predicate PredicateConfig `json:"predicate"`
	OnMatch   OnMatchConfig   `json:"on_match"`
}

// PredicateConfig is a tagged union over single/and/or/not, matching
// spec §6's PredicateConfig exactly.
type PredicateConfig struct {
	Type string `json:"type"`

	// type == "single"
	Input       *TypedConfig      `json:"input,omitempty"`
	ValueMatch  *StringMatchSpec  `json:"value_match,omitempty"`
	CustomMatch *TypedConfig      `json:"custom_match,omitempty"`

	// type == "and" | "or"
	Predicates []PredicateConfig `json:"predicates,omitempty"`

	// type == "not"
	Predicate *PredicateConfig `json:"predicate,omitempty"`
}

// TypedConfig names an extension by a stable type URL plus its
// arbitrary-shaped sub-configuration.
type TypedConfig struct {
	TypeURL string          `json:"type_url"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// StringMatchSpec is the wire form of [xuma.StringMatchSpec]: a JSON object
// carrying exactly one of the five keys.
type StringMatchSpec struct {
	Exact      *string `json:"Exact,omitempty"`
	Prefix     *string `json:"Prefix,omitempty"`
	Suffix     *string `json:"Suffix,omitempty"`
	Contains   *string `json:"Contains,omitempty"`
	Regex      *string `json:"Regex,omitempty"`
	IgnoreCase bool    `json:"ignore_case,omitempty"`
}

// OnMatchConfig is a tagged union over action/matcher.
type OnMatchConfig struct {
	Type    string          `json:"type"`
	Action  json.RawMessage `json:"action,omitempty"`
	Matcher *MatcherConfig  `json:"matcher,omitempty"`
}

// UnitConfig accepts any JSON value (including absent/null) and carries no
// data. Extensions that need no configuration use it as their Config type.
type UnitConfig struct{}

// UnmarshalJSON implements json.Unmarshaler, discarding whatever shape it's
// handed.
func (*UnitConfig) UnmarshalJSON(_ []byte) error { return nil }

// Builtin type URLs the core ships.
const (
	TypeURLStringMatcher = "xuma.core.v1.StringMatcher"
	TypeURLBoolMatcher   = "xuma.core.v1.BoolMatcher"
)
