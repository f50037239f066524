package xuma

import (
	"fmt"
	"strings"
)

// describe renders v using its Stringer implementation when available,
// falling back to its dynamic type name. It exists purely for trace
// output — nothing in the evaluation path calls it.
func describe(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", v)
}

// describeData renders a MatchingData value for trace output.
func describeData(d MatchingData) string {
	switch d.Kind() {
	case KindNone:
		return "none"
	case KindString:
		s, _ := d.AsString()
		return fmt.Sprintf("string(%q)", s)
	case KindInt:
		i, _ := d.AsInt()
		return fmt.Sprintf("int(%d)", i)
	case KindBool:
		b, _ := d.AsBool()
		return fmt.Sprintf("bool(%t)", b)
	case KindBytes:
		b, _ := d.AsBytes()
		return fmt.Sprintf("bytes(%d)", len(b))
	default:
		return fmt.Sprintf("custom(%s)", d.TypeName())
	}
}

// PredicateTrace mirrors the shape of a [Predicate] tree, adding a Matched
// field and, for Single nodes, textual renderings of the input, the
// extracted data, and the matcher. Tracing does not short-circuit And/Or:
// every child is evaluated to maximize debugging information, though
// Matched still reflects the correct short-circuit boolean.
type PredicateTrace struct {
	Kind        PredicateKind
	Matched     bool
	InputDesc   string
	DataDesc    string
	MatcherDesc string
	Children    []PredicateTrace
	Negated     *PredicateTrace
}

// EvaluateWithTrace evaluates p, recording a full trace. Unlike Evaluate,
// every And/Or child runs regardless of earlier results, so
// trace.Children has one entry per child even though the returned bool
// agrees with the short-circuiting Evaluate.
func (p Predicate[Ctx]) EvaluateWithTrace(ctx Ctx) (bool, PredicateTrace) {
	switch p.kind {
	case PredicateSingle:
		d := p.single.Input.Get(ctx)
		matched := !d.IsNone() && p.single.Matcher.Matches(d)
		return matched, PredicateTrace{
			Kind:        PredicateSingle,
			Matched:     matched,
			InputDesc:   describe(p.single.Input),
			DataDesc:    describeData(d),
			MatcherDesc: describe(p.single.Matcher),
		}
	case PredicateAnd:
		matched := true
		children := make([]PredicateTrace, len(p.children))
		for i, c := range p.children {
			cm, ct := c.EvaluateWithTrace(ctx)
			children[i] = ct
			matched = matched && cm
		}
		return matched, PredicateTrace{Kind: PredicateAnd, Matched: matched, Children: children}
	case PredicateOr:
		matched := false
		children := make([]PredicateTrace, len(p.children))
		for i, c := range p.children {
			cm, ct := c.EvaluateWithTrace(ctx)
			children[i] = ct
			matched = matched || cm
		}
		return matched, PredicateTrace{Kind: PredicateOr, Matched: matched, Children: children}
	case PredicateNot:
		cm, ct := p.negated.EvaluateWithTrace(ctx)
		return !cm, PredicateTrace{Kind: PredicateNot, Matched: !cm, Negated: &ct}
	default:
		return false, PredicateTrace{}
	}
}

// OnMatchTrace is either a resolved Action or a recursive Nested EvalTrace.
type OnMatchTrace[Ctx any, A any] struct {
	IsAction bool
	Action   A
	Nested   *EvalTrace[Ctx, A]
}

func (m OnMatch[Ctx, A]) resolveWithTrace(ctx Ctx) (A, bool, OnMatchTrace[Ctx, A]) {
	if m.isAction {
		return m.action, true, OnMatchTrace[Ctx, A]{IsAction: true, Action: m.action}
	}
	a, ok, nt := m.nested.EvaluateWithTrace(ctx)
	return a, ok, OnMatchTrace[Ctx, A]{Nested: &nt}
}

// EvalStep records one FieldMatcher visited during a traced evaluation.
type EvalStep[Ctx any, A any] struct {
	Index     int
	Matched   bool
	Predicate PredicateTrace
	OnMatch   *OnMatchTrace[Ctx, A]
}

// EvalTrace records the overall result of a traced [Matcher.EvaluateWithTrace]
// call: the result (identical to plain Evaluate), the ordered steps taken
// (stopping after the first winning FieldMatcher, to preserve first-match-
// wins visibility), and whether the fallback (OnNoMatch) was used.
type EvalTrace[Ctx any, A any] struct {
	Result       A
	HasResult    bool
	Steps        []EvalStep[Ctx, A]
	UsedFallback bool
	OnNoMatch    *OnMatchTrace[Ctx, A]
}

// EvaluateWithTrace evaluates m, recording a full [EvalTrace]. The returned
// (A, bool) pair always equals what Evaluate would have returned.
func (m *Matcher[Ctx, A]) EvaluateWithTrace(ctx Ctx) (A, bool, EvalTrace[Ctx, A]) {
	var steps []EvalStep[Ctx, A]
	for i, fm := range m.fieldMatchers {
		matched, ptrace := fm.Predicate.EvaluateWithTrace(ctx)
		if !matched {
			steps = append(steps, EvalStep[Ctx, A]{Index: i, Matched: false, Predicate: ptrace})
			continue
		}
		a, ok, omt := fm.OnMatch.resolveWithTrace(ctx)
		steps = append(steps, EvalStep[Ctx, A]{Index: i, Matched: true, Predicate: ptrace, OnMatch: &omt})
		if ok {
			return a, true, EvalTrace[Ctx, A]{Result: a, HasResult: true, Steps: steps}
		}
	}
	if m.onNoMatch != nil {
		a, ok, omt := m.onNoMatch.resolveWithTrace(ctx)
		return a, ok, EvalTrace[Ctx, A]{Result: a, HasResult: ok, Steps: steps, UsedFallback: true, OnNoMatch: &omt}
	}
	var zero A
	return zero, false, EvalTrace[Ctx, A]{Steps: steps}
}

// Render formats t as an indented, human-readable tree: one line per node,
// "[x]"/"[ ]" markers for matched/unmatched steps. This mirrors the
// --explain-style renderer the reference implementation's CLI builds over
// its trace structures.
func (t EvalTrace[Ctx, A]) Render() string {
	var b strings.Builder
	for _, s := range t.Steps {
		mark := "[ ]"
		if s.Matched {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s field_matcher[%d]\n", mark, s.Index)
		renderPredicate(&b, s.Predicate, 1)
		if s.OnMatch != nil {
			renderOnMatch(&b, *s.OnMatch, 1)
		}
	}
	if t.UsedFallback {
		b.WriteString("on_no_match:\n")
		if t.OnNoMatch != nil {
			renderOnMatch(&b, *t.OnNoMatch, 1)
		}
	}
	if t.HasResult {
		fmt.Fprintf(&b, "result: %v\n", t.Result)
	} else {
		b.WriteString("result: <no match>\n")
	}
	return b.String()
}

func renderPredicate(b *strings.Builder, t PredicateTrace, depth int) {
	indent := strings.Repeat("  ", depth)
	mark := "[ ]"
	if t.Matched {
		mark = "[x]"
	}
	switch t.Kind {
	case PredicateSingle:
		fmt.Fprintf(b, "%s%s single(input=%s, data=%s, matcher=%s)\n",
			indent, mark, t.InputDesc, t.DataDesc, t.MatcherDesc)
	case PredicateAnd:
		fmt.Fprintf(b, "%s%s and\n", indent, mark)
		for _, c := range t.Children {
			renderPredicate(b, c, depth+1)
		}
	case PredicateOr:
		fmt.Fprintf(b, "%s%s or\n", indent, mark)
		for _, c := range t.Children {
			renderPredicate(b, c, depth+1)
		}
	case PredicateNot:
		fmt.Fprintf(b, "%s%s not\n", indent, mark)
		if t.Negated != nil {
			renderPredicate(b, *t.Negated, depth+1)
		}
	}
}

func renderOnMatch[Ctx any, A any](b *strings.Builder, t OnMatchTrace[Ctx, A], depth int) {
	indent := strings.Repeat("  ", depth)
	if t.IsAction {
		fmt.Fprintf(b, "%saction: %v\n", indent, t.Action)
		return
	}
	fmt.Fprintf(b, "%snested:\n", indent)
	if t.Nested != nil {
		nested := t.Nested.Render()
		for _, line := range strings.Split(strings.TrimRight(nested, "\n"), "\n") {
			fmt.Fprintf(b, "%s  %s\n", indent, line)
		}
	}
}
