package xuma

import "regexp"

// RegexMatcher matches a string against a compiled regular expression over
// the full input. The underlying engine is [regexp] (RE2), which guarantees
// linear time in input length — backreferences and look-around are
// unsupported and rejected at compile time, never silently ignored.
type RegexMatcher struct {
	re *regexp.Regexp
}

// NewRegexMatcher compiles pattern, anchoring it to match the full input.
// Compilation failures (including patterns RE2 can't express, such as
// backreferences) are reported as an [InvalidPatternError].
func NewRegexMatcher(pattern string) (RegexMatcher, error) {
	if len(pattern) > MaxRegexPatternLength {
		return RegexMatcher{}, NewPatternTooLongError(len(pattern), MaxRegexPatternLength)
	}
	re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
	if err != nil {
		return RegexMatcher{}, NewInvalidPatternError(pattern, err)
	}
	return RegexMatcher{re: re}, nil
}

// Matches implements [InputMatcher].
func (m RegexMatcher) Matches(d MatchingData) bool {
	s, ok := d.AsString()
	if !ok {
		return false
	}
	return m.re.MatchString(s)
}

// SupportedTypes implements [InputMatcher].
func (RegexMatcher) SupportedTypes() []string { return []string{"string"} }
