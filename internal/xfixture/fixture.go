// Package xfixture is a minimal map-based context used by this module's own
// tests to exercise [xuma.DataInput]/[xuma.Predicate]/[xuma.Matcher]/
// xuma/registry without depending on any real domain adapter. It mirrors
// the conformance fixture harness the original implementation used for its
// own test suite — a generic TestContext keyed by string fields, not a
// published domain integration.
package xfixture

import "github.com/quay/xuma"

// Context is a flat string-keyed bag of values, standing in for a real
// domain context (an HTTP request, a hook event, ...) in this module's own
// tests.
type Context struct {
	fields map[string]string
	bools  map[string]bool
}

// NewContext builds a Context from string fields.
func NewContext(fields map[string]string) *Context {
	return &Context{fields: fields}
}

// WithBool sets a boolean field and returns c for chaining.
func (c *Context) WithBool(key string, value bool) *Context {
	if c.bools == nil {
		c.bools = make(map[string]bool)
	}
	c.bools[key] = value
	return c
}

// StringInput extracts a named string field, yielding [xuma.None] when the
// key is absent.
type StringInput struct {
	Key string
}

// Get implements [xuma.DataInput].
func (in StringInput) Get(ctx *Context) xuma.MatchingData {
	v, ok := ctx.fields[in.Key]
	if !ok {
		return xuma.None
	}
	return xuma.String(v)
}

// DataType implements [xuma.DataInput].
func (StringInput) DataType() string { return "string" }

// String implements fmt.Stringer for trace rendering.
func (in StringInput) String() string { return "StringInput(" + in.Key + ")" }

// BoolInput extracts a named boolean field, yielding [xuma.None] when the
// key is absent.
type BoolInput struct {
	Key string
}

// Get implements [xuma.DataInput].
func (in BoolInput) Get(ctx *Context) xuma.MatchingData {
	v, ok := ctx.bools[in.Key]
	if !ok {
		return xuma.None
	}
	return xuma.Bool(v)
}

// DataType implements [xuma.DataInput].
func (BoolInput) DataType() string { return "bool" }

// String implements fmt.Stringer for trace rendering.
func (in BoolInput) String() string { return "BoolInput(" + in.Key + ")" }
