package xuma

// StringMatchKind tags which variant a [StringMatchSpec] carries.
type StringMatchKind int

const (
	StringMatchExact StringMatchKind = iota
	StringMatchPrefix
	StringMatchSuffix
	StringMatchContains
	StringMatchRegex
)

// StringMatchSpec is the configuration-level intent for string matching: a
// sum type over {Exact, Prefix, Suffix, Contains, Regex}, each carrying a
// pattern and (for the non-regex variants) a case-sensitivity flag. It
// compiles to a concrete [InputMatcher] via [StringMatchSpec.Compile].
type StringMatchSpec struct {
	Kind       StringMatchKind
	Pattern    string
	IgnoreCase bool
}

// Compile produces the InputMatcher corresponding to spec, enforcing the
// pattern-length caps from [MaxPatternLength] and [MaxRegexPatternLength].
// A Regex pattern that fails to compile is reported as an
// [InvalidPatternError] carrying the offending pattern and diagnostic.
func (spec StringMatchSpec) Compile() (InputMatcher, error) {
	if spec.Kind != StringMatchRegex && len(spec.Pattern) > MaxPatternLength {
		return nil, NewPatternTooLongError(len(spec.Pattern), MaxPatternLength)
	}
	switch spec.Kind {
	case StringMatchExact:
		return ExactMatcher{Expected: spec.Pattern, IgnoreCase: spec.IgnoreCase}, nil
	case StringMatchPrefix:
		return PrefixMatcher{Prefix: spec.Pattern, IgnoreCase: spec.IgnoreCase}, nil
	case StringMatchSuffix:
		return SuffixMatcher{Suffix: spec.Pattern, IgnoreCase: spec.IgnoreCase}, nil
	case StringMatchContains:
		return NewContainsMatcher(spec.Pattern, spec.IgnoreCase), nil
	case StringMatchRegex:
		return NewRegexMatcher(spec.Pattern)
	default:
		return nil, NewInvalidConfigError("StringMatchSpec.Compile", errUnknownStringMatchKind)
	}
}

// ToPredicate combines spec with input to produce a single-leaf [Predicate]
// (see [Single]).
func ToPredicate[Ctx any](input DataInput[Ctx], spec StringMatchSpec) (Predicate[Ctx], error) {
	m, err := spec.Compile()
	if err != nil {
		return Predicate[Ctx]{}, err
	}
	return Single(SinglePredicate[Ctx]{Input: input, Matcher: m}), nil
}

var errUnknownStringMatchKind = stringMatchKindError{}

type stringMatchKindError struct{}

func (stringMatchKindError) Error() string { return "unknown StringMatchKind" }
