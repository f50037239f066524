package xuma

import (
	"errors"
	"fmt"
	"strings"
)

// Error is the xuma error domain type.
//
// Errors coming from xuma components should be able to be inspected as
// ([errors.As]) an *Error at some point in the error chain.
//
// Implementers of extension components should create an Error at the
// construction boundary (an extension's Config deserializer, a regex
// compile) and intermediate layers should not wrap in another Error except
// to add additional [ErrorKind] information. That is to say, use
// [fmt.Errorf] with a "%w" verb in preference to creating a containing
// Error.
type Error struct {
	Inner   error
	Kind    ErrorKind
	Message string
	Op      string
}

// Assert this implements all the cool features.
var (
	_ error                       = (*Error)(nil)
	_ interface{ Is(error) bool } = (*Error)(nil)
	_ interface{ Unwrap() error } = (*Error)(nil)
)

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	b.WriteString("[")
	switch e.Kind {
	case ErrDepthExceeded,
		ErrTooManyMatchers,
		ErrTooManyPredicates,
		ErrPatternTooLong,
		ErrInvalidPattern,
		ErrInvalidConfig,
		ErrUnknownTypeURL,
		ErrIncompatibleTypes:
		b.WriteString(string(e.Kind))
	default:
		b.WriteString("???")
	}
	b.WriteString("]: ")
	if e.Message != "" {
		b.WriteString(e.Message)
	}
	if e.Message != "" && e.Inner != nil {
		b.WriteString(": ")
	}
	if e.Op == "" && e.Message == "" {
		b.Reset()
	}
	if e.Inner != nil {
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Is enables [errors.Is].
//
// It compares the error kind. Callers should compare against a declared
// [ErrorKind] over a specific error.
func (e *Error) Is(kind error) bool {
	return errors.Is(e.Kind, kind)
}

// Unwrap enables [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Inner
}

// ErrorKind reports e's kind. Every structured error type in this package
// (DepthExceededError, UnknownTypeURLError, ...) embeds *Error and so
// promotes this method, making a bare `err.(interface{ ErrorKind() ErrorKind
// })` type assertion the stable way for callers outside this package to
// recover the kind without needing to know (or assert to) the concrete
// wrapper type.
func (e *Error) ErrorKind() ErrorKind {
	return e.Kind
}

// ErrorKind represents classes of load-time validation failure.
//
// The taxonomy is closed: every failure the registry/validation path can
// produce is one of these kinds. Evaluation never produces an Error; its
// only "error-like" outcome is a nil action, which is a normal result, not a
// failure.
type ErrorKind string

// Defined error kinds, one per spec §7 entry.
var (
	ErrDepthExceeded     = ErrorKind("depth exceeded")      // tree exceeds MaxDepth
	ErrTooManyMatchers   = ErrorKind("too many matchers")   // FieldMatcher list exceeds MaxFieldMatchers
	ErrTooManyPredicates = ErrorKind("too many predicates") // And/Or width exceeds MaxPredicatesPerCompound
	ErrPatternTooLong    = ErrorKind("pattern too long")    // string pattern exceeds its length cap
	ErrInvalidPattern    = ErrorKind("invalid pattern")     // regex failed to compile
	ErrInvalidConfig     = ErrorKind("invalid config")      // config deserialization/construction failure
	ErrUnknownTypeURL    = ErrorKind("unknown type url")    // type URL has no registered factory
	ErrIncompatibleTypes = ErrorKind("incompatible types")  // input data_type not in matcher's supported_types
)

// Error implements error.
func (e ErrorKind) Error() string {
	return string(e)
}

// DepthExceededError reports a tree whose depth exceeds [MaxDepth].
type DepthExceededError struct {
	*Error
	Depth, Max int
}

// NewDepthExceededError builds a [DepthExceededError].
func NewDepthExceededError(depth, max int) *DepthExceededError {
	return &DepthExceededError{
		Error: &Error{
			Kind:    ErrDepthExceeded,
			Message: fmt.Sprintf("depth %d exceeds maximum %d", depth, max),
		},
		Depth: depth,
		Max:   max,
	}
}

// TooManyFieldMatchersError reports a Matcher whose field-matcher list
// exceeds [MaxFieldMatchers].
type TooManyFieldMatchersError struct {
	*Error
	Count, Max int
}

// NewTooManyFieldMatchersError builds a [TooManyFieldMatchersError].
func NewTooManyFieldMatchersError(count, max int) *TooManyFieldMatchersError {
	return &TooManyFieldMatchersError{
		Error: &Error{
			Kind:    ErrTooManyMatchers,
			Message: fmt.Sprintf("%d field matchers exceeds maximum %d", count, max),
		},
		Count: count,
		Max:   max,
	}
}

// TooManyPredicatesError reports an And/Or predicate whose width exceeds
// [MaxPredicatesPerCompound].
type TooManyPredicatesError struct {
	*Error
	Count, Max int
}

// NewTooManyPredicatesError builds a [TooManyPredicatesError].
func NewTooManyPredicatesError(count, max int) *TooManyPredicatesError {
	return &TooManyPredicatesError{
		Error: &Error{
			Kind:    ErrTooManyPredicates,
			Message: fmt.Sprintf("%d predicates exceeds maximum %d", count, max),
		},
		Count: count,
		Max:   max,
	}
}

// PatternTooLongError reports a string pattern exceeding its length cap.
type PatternTooLongError struct {
	*Error
	Len, Max int
}

// NewPatternTooLongError builds a [PatternTooLongError].
func NewPatternTooLongError(length, max int) *PatternTooLongError {
	return &PatternTooLongError{
		Error: &Error{
			Kind:    ErrPatternTooLong,
			Message: fmt.Sprintf("pattern length %d exceeds maximum %d", length, max),
		},
		Len: length,
		Max: max,
	}
}

// InvalidPatternError reports a regex that failed to compile.
type InvalidPatternError struct {
	*Error
	Pattern string
}

// NewInvalidPatternError builds an [InvalidPatternError] wrapping cause.
func NewInvalidPatternError(pattern string, cause error) *InvalidPatternError {
	return &InvalidPatternError{
		Error: &Error{
			Kind:    ErrInvalidPattern,
			Message: fmt.Sprintf("pattern %q failed to compile", pattern),
			Inner:   cause,
		},
		Pattern: pattern,
	}
}

// InvalidConfigError reports a configuration deserialization or semantic
// construction failure.
type InvalidConfigError struct {
	*Error
}

// NewInvalidConfigError builds an [InvalidConfigError] wrapping cause.
//
// Extension implementations (IntoDataInput, IntoInputMatcher, IntoAction)
// use this to report a malformed Config value.
func NewInvalidConfigError(op string, cause error) *InvalidConfigError {
	return &InvalidConfigError{
		Error: &Error{
			Kind:    ErrInvalidConfig,
			Op:      op,
			Message: "invalid configuration",
			Inner:   cause,
		},
	}
}

// UnknownTypeURLError reports a type URL with no registered factory in the
// named registry. Available is always the sorted list of registered URLs,
// so the error message is self-correcting.
type UnknownTypeURLError struct {
	*Error
	TypeURL   string
	Registry  string // one of "input", "matcher", "action", "any_resolver"
	Available []string
}

// NewUnknownTypeURLError builds an [UnknownTypeURLError].
func NewUnknownTypeURLError(typeURL, registry string, available []string) *UnknownTypeURLError {
	return &UnknownTypeURLError{
		Error: &Error{
			Kind: ErrUnknownTypeURL,
			Message: fmt.Sprintf("unknown %s type url %q (available: %s)",
				registry, typeURL, strings.Join(available, ", ")),
		},
		TypeURL:   typeURL,
		Registry:  registry,
		Available: available,
	}
}

// IncompatibleTypesError reports an input whose data_type is not in the
// matcher's supported_types.
type IncompatibleTypesError struct {
	*Error
	InputType    string
	MatcherTypes []string
}

// NewIncompatibleTypesError builds an [IncompatibleTypesError].
func NewIncompatibleTypesError(inputType string, matcherTypes []string) *IncompatibleTypesError {
	return &IncompatibleTypesError{
		Error: &Error{
			Kind: ErrIncompatibleTypes,
			Message: fmt.Sprintf("input type %q not supported by matcher (supports: %s)",
				inputType, strings.Join(matcherTypes, ", ")),
		},
		InputType:    inputType,
		MatcherTypes: matcherTypes,
	}
}
