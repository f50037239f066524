package xuma_test

import (
	"strings"
	"testing"

	"github.com/quay/xuma"
	"github.com/quay/xuma/internal/xfixture"
)

func TestEvaluateWithTraceVisitsEveryAndChild(t *testing.T) {
	// Unlike Evaluate, tracing must not short-circuit: every child of an
	// And/Or node is evaluated so the trace captures full diagnostic
	// information, even though the returned bool still matches the
	// short-circuiting Evaluate result.
	p := xuma.And(methodIs("GET"), methodIs("POST"))
	ctx := xfixture.NewContext(map[string]string{"method": "DELETE"})

	matched, trace := p.EvaluateWithTrace(ctx)
	if matched {
		t.Error("expected overall match to be false")
	}
	if matched != p.Evaluate(ctx) {
		t.Error("EvaluateWithTrace's bool must agree with Evaluate")
	}
	if len(trace.Children) != 2 {
		t.Fatalf("got %d children traced, want 2 (no short-circuit)", len(trace.Children))
	}
	for i, c := range trace.Children {
		if c.Matched {
			t.Errorf("child %d unexpectedly matched", i)
		}
	}
}

func TestEvalTraceStopsAtFirstWin(t *testing.T) {
	m := xuma.NewMatcher([]xuma.FieldMatcher[*xfixture.Context, string]{
		{Predicate: methodIs("GET"), OnMatch: xuma.ActionOnMatch[*xfixture.Context]("route-get")},
		{Predicate: xuma.And[*xfixture.Context](), OnMatch: xuma.ActionOnMatch[*xfixture.Context]("route-catchall")},
	}, nil)

	ctx := xfixture.NewContext(map[string]string{"method": "GET"})
	result, ok, trace := m.EvaluateWithTrace(ctx)
	if !ok || result != "route-get" {
		t.Fatalf("EvaluateWithTrace result = (%q, %v), want (route-get, true)", result, ok)
	}
	if len(trace.Steps) != 1 {
		t.Fatalf("got %d steps, want 1 (scan stops at the first winning field matcher)", len(trace.Steps))
	}
	if !trace.Steps[0].Matched {
		t.Error("expected the winning step to be marked Matched")
	}
	if !trace.HasResult || trace.Result != "route-get" {
		t.Errorf("trace.Result = %v, want route-get", trace.Result)
	}
}

func TestEvalTraceRecordsFallback(t *testing.T) {
	fallback := xuma.ActionOnMatch[*xfixture.Context]("default")
	m := xuma.NewMatcher([]xuma.FieldMatcher[*xfixture.Context, string]{
		{Predicate: methodIs("GET"), OnMatch: xuma.ActionOnMatch[*xfixture.Context]("route-get")},
	}, &fallback)

	ctx := xfixture.NewContext(map[string]string{"method": "DELETE"})
	result, ok, trace := m.EvaluateWithTrace(ctx)
	if !ok || result != "default" {
		t.Fatalf("EvaluateWithTrace result = (%q, %v), want (default, true)", result, ok)
	}
	if !trace.UsedFallback {
		t.Error("expected UsedFallback to be true")
	}
	if trace.OnNoMatch == nil || !trace.OnNoMatch.IsAction || trace.OnNoMatch.Action != "default" {
		t.Errorf("unexpected OnNoMatch trace: %+v", trace.OnNoMatch)
	}
}

func TestEvalTraceRender(t *testing.T) {
	m := xuma.NewMatcher([]xuma.FieldMatcher[*xfixture.Context, string]{
		{Predicate: methodIs("GET"), OnMatch: xuma.ActionOnMatch[*xfixture.Context]("route-get")},
	}, nil)
	ctx := xfixture.NewContext(map[string]string{"method": "GET"})
	_, _, trace := m.EvaluateWithTrace(ctx)

	out := trace.Render()
	if !strings.Contains(out, "field_matcher[0]") {
		t.Errorf("rendered trace missing field_matcher line: %q", out)
	}
	if !strings.Contains(out, "route-get") {
		t.Errorf("rendered trace missing action value: %q", out)
	}
}
