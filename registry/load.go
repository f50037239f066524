package registry

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quay/zlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/quay/xuma"
	"github.com/quay/xuma/internal/xmetrics"
)

var tracer = otel.Tracer("github.com/quay/xuma/registry")

// Load compiles cfg into a [xuma.Matcher] whose action type A is decoded
// directly from each OnMatchConfig's Action JSON via [json.Unmarshal]. Use
// this entry point when the configuration schema embeds the action
// value/shape inline; use [LoadTyped] when actions are themselves
// TypedConfig values resolved through an [ActionRegistry].
//
// All validation happens here, at load time: width caps
// ([xuma.MaxFieldMatchers], [xuma.MaxPredicatesPerCompound]), pattern
// length caps, type-URL resolution, data/matcher type compatibility, and
// finally the assembled matcher's depth, via [xuma.Matcher.Validate].
func Load[Ctx any, A any](ctx context.Context, r *Registry[Ctx], cfg MatcherConfig) (*xuma.Matcher[Ctx, A], error) {
	ctx = zlog.ContextWithValues(ctx, "component", "xuma/registry.Load")
	ctx, span := tracer.Start(ctx, "xuma/registry.Load")
	defer span.End()

	m, err := loadMatcher[Ctx, A](r, nil, cfg, 0)
	recordLoad(ctx, span, m, err)
	return m, err
}

// LoadTyped compiles cfg the same way [Load] does, except each
// OnMatchConfig's Action is a [TypedConfig] resolved through ar.
func LoadTyped[Ctx any, A any](ctx context.Context, r *Registry[Ctx], ar *ActionRegistry[A], cfg MatcherConfig) (*xuma.Matcher[Ctx, A], error) {
	ctx = zlog.ContextWithValues(ctx, "component", "xuma/registry.LoadTyped")
	ctx, span := tracer.Start(ctx, "xuma/registry.LoadTyped")
	defer span.End()

	m, err := loadMatcher[Ctx, A](r, ar, cfg, 0)
	recordLoad(ctx, span, m, err)
	return m, err
}

func recordLoad[Ctx any, A any](ctx context.Context, span oteltrace.Span, m *xuma.Matcher[Ctx, A], err error) {
	if err != nil {
		xmetrics.LoadTotal.WithLabelValues("error", errorKind(err)).Inc()
		zlog.Error(ctx).Err(err).Msg("matcher load failed")
		return
	}
	depth := m.Depth()
	span.SetAttributes(attribute.Int("xuma.depth", depth), attribute.Int("xuma.field_matchers", len(m.FieldMatchers())))
	xmetrics.LoadTotal.WithLabelValues("ok", "").Inc()
	xmetrics.LoadDepth.Set(float64(depth))
	zlog.Debug(ctx).Int("depth", depth).Msg("matcher loaded")
}

// kindedError is implemented by *xuma.Error and, via embedding, by every
// structured error type it underlies (DepthExceededError,
// UnknownTypeURLError, ...). Matching on this interface rather than the
// concrete *xuma.Error type lets errorKind recover the kind regardless of
// which wrapper struct the load path actually returned.
type kindedError interface {
	ErrorKind() xuma.ErrorKind
}

func errorKind(err error) string {
	type unwrapper interface{ Unwrap() error }
	for err != nil {
		if ke, ok := err.(kindedError); ok {
			return string(ke.ErrorKind())
		}
		u, ok := err.(unwrapper)
		if !ok {
			return "unknown"
		}
		err = u.Unwrap()
	}
	return "unknown"
}

func loadMatcher[Ctx any, A any](r *Registry[Ctx], ar *ActionRegistry[A], cfg MatcherConfig, depth int) (*xuma.Matcher[Ctx, A], error) {
	if n := len(cfg.Matchers); n > xuma.MaxFieldMatchers {
		return nil, xuma.NewTooManyFieldMatchersError(n, xuma.MaxFieldMatchers)
	}

	fieldMatchers := make([]xuma.FieldMatcher[Ctx, A], 0, len(cfg.Matchers))
	for _, fmc := range cfg.Matchers {
		pred, err := loadPredicate[Ctx](r, fmc.Predicate)
		if err != nil {
			return nil, err
		}
		om, err := loadOnMatch[Ctx, A](r, ar, fmc.OnMatch, depth+1)
		if err != nil {
			return nil, err
		}
		fieldMatchers = append(fieldMatchers, xuma.FieldMatcher[Ctx, A]{Predicate: pred, OnMatch: om})
	}

	var onNoMatch *xuma.OnMatch[Ctx, A]
	if cfg.OnNoMatch != nil {
		om, err := loadOnMatch[Ctx, A](r, ar, *cfg.OnNoMatch, depth+1)
		if err != nil {
			return nil, err
		}
		onNoMatch = &om
	}

	m := xuma.NewMatcher(fieldMatchers, onNoMatch)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func loadOnMatch[Ctx any, A any](r *Registry[Ctx], ar *ActionRegistry[A], cfg OnMatchConfig, depth int) (xuma.OnMatch[Ctx, A], error) {
	switch cfg.Type {
	case "action":
		a, err := decodeAction[A](ar, cfg.Action)
		if err != nil {
			return xuma.OnMatch[Ctx, A]{}, err
		}
		return xuma.ActionOnMatch[Ctx](a), nil
	case "matcher":
		if cfg.Matcher == nil {
			return xuma.OnMatch[Ctx, A]{}, xuma.NewInvalidConfigError("OnMatchConfig", fmt.Errorf(`type "matcher" requires a matcher field`))
		}
		nested, err := loadMatcher[Ctx, A](r, ar, *cfg.Matcher, depth)
		if err != nil {
			return xuma.OnMatch[Ctx, A]{}, err
		}
		return xuma.NestedOnMatch[Ctx](nested), nil
	default:
		return xuma.OnMatch[Ctx, A]{}, xuma.NewInvalidConfigError("OnMatchConfig", fmt.Errorf("unknown on_match type %q", cfg.Type))
	}
}

func decodeAction[A any](ar *ActionRegistry[A], raw json.RawMessage) (A, error) {
	var zero A
	if ar != nil {
		var tc TypedConfig
		if err := json.Unmarshal(raw, &tc); err != nil {
			return zero, xuma.NewInvalidConfigError("action", err)
		}
		return ar.resolveAction(tc.TypeURL, tc.Config)
	}
	var a A
	if len(raw) == 0 {
		return zero, xuma.NewInvalidConfigError("action", fmt.Errorf("missing action"))
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return zero, xuma.NewInvalidConfigError("action", err)
	}
	return a, nil
}

func loadPredicate[Ctx any](r *Registry[Ctx], cfg PredicateConfig) (xuma.Predicate[Ctx], error) {
	switch cfg.Type {
	case "single":
		return loadSingle[Ctx](r, cfg)
	case "and":
		if n := len(cfg.Predicates); n > xuma.MaxPredicatesPerCompound {
			return xuma.Predicate[Ctx]{}, xuma.NewTooManyPredicatesError(n, xuma.MaxPredicatesPerCompound)
		}
		children, err := loadChildren[Ctx](r, cfg.Predicates)
		if err != nil {
			return xuma.Predicate[Ctx]{}, err
		}
		return xuma.And(children...), nil
	case "or":
		if n := len(cfg.Predicates); n > xuma.MaxPredicatesPerCompound {
			return xuma.Predicate[Ctx]{}, xuma.NewTooManyPredicatesError(n, xuma.MaxPredicatesPerCompound)
		}
		children, err := loadChildren[Ctx](r, cfg.Predicates)
		if err != nil {
			return xuma.Predicate[Ctx]{}, err
		}
		return xuma.Or(children...), nil
	case "not":
		if cfg.Predicate == nil {
			return xuma.Predicate[Ctx]{}, xuma.NewInvalidConfigError("PredicateConfig", fmt.Errorf(`type "not" requires a predicate field`))
		}
		child, err := loadPredicate[Ctx](r, *cfg.Predicate)
		if err != nil {
			return xuma.Predicate[Ctx]{}, err
		}
		return xuma.Not(child), nil
	default:
		return xuma.Predicate[Ctx]{}, xuma.NewInvalidConfigError("PredicateConfig", fmt.Errorf("unknown predicate type %q", cfg.Type))
	}
}

func loadChildren[Ctx any](r *Registry[Ctx], cfgs []PredicateConfig) ([]xuma.Predicate[Ctx], error) {
	out := make([]xuma.Predicate[Ctx], 0, len(cfgs))
	for _, c := range cfgs {
		p, err := loadPredicate[Ctx](r, c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func loadSingle[Ctx any](r *Registry[Ctx], cfg PredicateConfig) (xuma.Predicate[Ctx], error) {
	if cfg.Input == nil {
		return xuma.Predicate[Ctx]{}, xuma.NewInvalidConfigError("PredicateConfig", fmt.Errorf(`type "single" requires an input field`))
	}
	input, err := r.resolveInput(cfg.Input.TypeURL, cfg.Input.Config)
	if err != nil {
		return xuma.Predicate[Ctx]{}, err
	}

	haveValue, haveCustom := cfg.ValueMatch != nil, cfg.CustomMatch != nil
	if haveValue == haveCustom {
		return xuma.Predicate[Ctx]{}, xuma.NewInvalidConfigError("PredicateConfig",
			fmt.Errorf("single predicate requires exactly one of value_match or custom_match"))
	}

	var matcher xuma.InputMatcher
	if haveValue {
		spec, err := toCoreStringMatchSpec(*cfg.ValueMatch)
		if err != nil {
			return xuma.Predicate[Ctx]{}, err
		}
		matcher, err = spec.Compile()
		if err != nil {
			return xuma.Predicate[Ctx]{}, err
		}
	} else {
		matcher, err = r.resolveMatcher(cfg.CustomMatch.TypeURL, cfg.CustomMatch.Config)
		if err != nil {
			return xuma.Predicate[Ctx]{}, err
		}
	}

	if !supports(matcher.SupportedTypes(), input.DataType()) {
		return xuma.Predicate[Ctx]{}, xuma.NewIncompatibleTypesError(input.DataType(), matcher.SupportedTypes())
	}

	return xuma.Single[Ctx](xuma.SinglePredicate[Ctx]{Input: input, Matcher: matcher}), nil
}

func supports(supported []string, dataType string) bool {
	for _, s := range supported {
		if s == dataType {
			return true
		}
	}
	return false
}

func toCoreStringMatchSpec(cfg StringMatchSpec) (xuma.StringMatchSpec, error) {
	set := 0
	var kind xuma.StringMatchKind
	var pattern string
	if cfg.Exact != nil {
		set++
		kind, pattern = xuma.StringMatchExact, *cfg.Exact
	}
	if cfg.Prefix != nil {
		set++
		kind, pattern = xuma.StringMatchPrefix, *cfg.Prefix
	}
	if cfg.Suffix != nil {
		set++
		kind, pattern = xuma.StringMatchSuffix, *cfg.Suffix
	}
	if cfg.Contains != nil {
		set++
		kind, pattern = xuma.StringMatchContains, *cfg.Contains
	}
	if cfg.Regex != nil {
		set++
		kind, pattern = xuma.StringMatchRegex, *cfg.Regex
	}
	if set != 1 {
		return xuma.StringMatchSpec{}, xuma.NewInvalidConfigError("StringMatchSpec",
			fmt.Errorf("expected exactly one of Exact/Prefix/Suffix/Contains/Regex, got %d", set))
	}
	return xuma.StringMatchSpec{Kind: kind, Pattern: pattern, IgnoreCase: cfg.IgnoreCase}, nil
}
