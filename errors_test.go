package xuma

import (
	"errors"
	"fmt"
	"testing"
)

func ExampleError() {
	fmt.Println(&Error{
		Kind:    ErrInvalidConfig,
		Message: "test",
		Op:      "ExampleError",
	})

	fmt.Println(&Error{
		Inner:   errors.New("boom"),
		Kind:    ErrUnknownTypeURL,
		Message: "no such factory",
		Op:      "Load",
	})

	err := fmt.Errorf("somepackage: oops: %w", &Error{
		Inner:   errors.New("boom"),
		Kind:    ErrInvalidPattern,
		Message: "bad regex",
		Op:      "Compile",
	})
	fmt.Println(err)

	// Output:
	// ExampleError [invalid config]: test
	// Load [unknown type url]: no such factory: boom
	// somepackage: oops: Compile [invalid pattern]: bad regex: boom
}

func TestErrorIs(t *testing.T) {
	err := NewDepthExceededError(40, MaxDepth)
	if !errors.Is(err, ErrDepthExceeded) {
		t.Error("expected errors.Is to match ErrDepthExceeded")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Error("did not expect errors.Is to match ErrInvalidConfig")
	}

	wrapped := fmt.Errorf("load: %w", err)
	if !errors.Is(wrapped, ErrDepthExceeded) {
		t.Error("expected wrapped error to still match ErrDepthExceeded")
	}

	var de *DepthExceededError
	if !errors.As(wrapped, &de) {
		t.Fatal("expected errors.As to recover *DepthExceededError")
	}
	if de.Depth != 40 || de.Max != MaxDepth {
		t.Errorf("got depth=%d max=%d, want depth=40 max=%d", de.Depth, de.Max, MaxDepth)
	}
}

func TestUnknownTypeURLErrorIncludesAvailable(t *testing.T) {
	err := NewUnknownTypeURLError("xuma.http.v1.PathInput", "input", []string{"xuma.core.v1.BoolMatcher", "xuma.core.v1.StringMatcher"})
	if err.Registry != "input" {
		t.Errorf("got registry %q, want %q", err.Registry, "input")
	}
	want := "[unknown type url]: unknown input type url \"xuma.http.v1.PathInput\" (available: xuma.core.v1.BoolMatcher, xuma.core.v1.StringMatcher)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
