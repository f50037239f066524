package xuma

// Validation bounds the engine enforces at construction time. They exist to
// bound resource consumption of a compiled [Matcher]: stack depth at
// evaluation, and the cost of scanning a single level of the tree.
//
// Enforcement happens in the registry load path (see xuma/registry) and in
// [Matcher.Validate]; evaluation never checks these.
const (
	// MaxDepth is the maximum total depth of a Predicate/Matcher tree.
	MaxDepth = 32
	// MaxFieldMatchers is the maximum number of FieldMatchers in one Matcher.
	MaxFieldMatchers = 256
	// MaxPredicatesPerCompound is the maximum width of an And/Or predicate.
	MaxPredicatesPerCompound = 256
	// MaxPatternLength is the maximum length of a non-regex string pattern.
	MaxPatternLength = 8192
	// MaxRegexPatternLength is the maximum length of a regex pattern.
	MaxRegexPatternLength = 4096
)
