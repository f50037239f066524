package xuma

import "strings"

// InputMatcher is the domain-agnostic boolean predicate over [MatchingData].
// Implementations must be safe for concurrent use from many goroutines and
// must not use interior mutability that affects Matches' outcome.
//
// A mismatched MatchingData variant (one not listed in SupportedTypes)
// always yields false, never a panic; construction-time validation in the
// registry load path is what normally prevents this pairing, per the spec's
// "silent-false is defense in depth, not a feature" note.
type InputMatcher interface {
	// Matches reports whether d satisfies the matcher.
	Matches(d MatchingData) bool
	// SupportedTypes is the set of MatchingData semantic type names this
	// matcher can evaluate.
	SupportedTypes() []string
}

// ExactMatcher matches a string exactly, optionally case-insensitively via
// [strings.EqualFold] (Unicode simple case folding, not ASCII-only).
type ExactMatcher struct {
	Expected   string
	IgnoreCase bool
}

// Matches implements [InputMatcher].
func (m ExactMatcher) Matches(d MatchingData) bool {
	s, ok := d.AsString()
	if !ok {
		return false
	}
	if m.IgnoreCase {
		return strings.EqualFold(s, m.Expected)
	}
	return s == m.Expected
}

// SupportedTypes implements [InputMatcher].
func (ExactMatcher) SupportedTypes() []string { return []string{"string"} }

// PrefixMatcher matches a string by prefix.
type PrefixMatcher struct {
	Prefix     string
	IgnoreCase bool
}

// Matches implements [InputMatcher].
//
// Case-insensitive comparison folds only the same byte-length prefix of the
// input; a shorter input is rejected rather than compared against a
// truncated expectation.
func (m PrefixMatcher) Matches(d MatchingData) bool {
	s, ok := d.AsString()
	if !ok {
		return false
	}
	if len(s) < len(m.Prefix) {
		return false
	}
	if m.IgnoreCase {
		return strings.EqualFold(s[:len(m.Prefix)], m.Prefix)
	}
	return strings.HasPrefix(s, m.Prefix)
}

// SupportedTypes implements [InputMatcher].
func (PrefixMatcher) SupportedTypes() []string { return []string{"string"} }

// SuffixMatcher matches a string by suffix; the mirror of PrefixMatcher on
// the tail of the input.
type SuffixMatcher struct {
	Suffix     string
	IgnoreCase bool
}

// Matches implements [InputMatcher].
func (m SuffixMatcher) Matches(d MatchingData) bool {
	s, ok := d.AsString()
	if !ok {
		return false
	}
	if len(s) < len(m.Suffix) {
		return false
	}
	if m.IgnoreCase {
		return strings.EqualFold(s[len(s)-len(m.Suffix):], m.Suffix)
	}
	return strings.HasSuffix(s, m.Suffix)
}

// SupportedTypes implements [InputMatcher].
func (SuffixMatcher) SupportedTypes() []string { return []string{"string"} }

// ContainsMatcher matches a string by substring search.
//
// In case-insensitive mode the pattern is folded once, at construction
// (NewContainsMatcher), to avoid per-call reallocation; the input is folded
// per call. Both are folded with [strings.ToLower], which lower-cases all
// Unicode letters, not only ASCII ones; see DESIGN.md.
type ContainsMatcher struct {
	pattern    string
	ignoreCase bool
}

// NewContainsMatcher builds a ContainsMatcher, folding pattern once up
// front when ignoreCase is set.
func NewContainsMatcher(pattern string, ignoreCase bool) ContainsMatcher {
	if ignoreCase {
		pattern = strings.ToLower(pattern)
	}
	return ContainsMatcher{pattern: pattern, ignoreCase: ignoreCase}
}

// Matches implements [InputMatcher].
func (m ContainsMatcher) Matches(d MatchingData) bool {
	s, ok := d.AsString()
	if !ok {
		return false
	}
	if m.ignoreCase {
		s = strings.ToLower(s)
	}
	return strings.Contains(s, m.pattern)
}

// SupportedTypes implements [InputMatcher].
func (ContainsMatcher) SupportedTypes() []string { return []string{"string"} }

// BoolMatcher matches a bool value for exact equality.
type BoolMatcher struct {
	Expected bool
}

// Matches implements [InputMatcher].
func (m BoolMatcher) Matches(d MatchingData) bool {
	b, ok := d.AsBool()
	if !ok {
		return false
	}
	return b == m.Expected
}

// SupportedTypes implements [InputMatcher].
func (BoolMatcher) SupportedTypes() []string { return []string{"bool"} }
