// Package xuma implements a unified matcher engine: declarative match
// configuration is compiled into an immutable evaluation tree, then the tree
// is evaluated against domain-specific contexts to produce actions.
//
// The core abstractions are generic over the context type ([DataInput],
// [Predicate], [Matcher]) so a single evaluation implementation is shared
// across domains, while [MatchingData] erases the extracted value to a small
// closed set of variants so [InputMatcher] implementations stay
// non-generic. Configuration is compiled through the [xuma/registry]
// package, which turns type-URL-tagged JSON into compiled matchers.
package xuma
