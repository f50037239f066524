package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quay/xuma"
	"github.com/quay/xuma/internal/xfixture"
	"github.com/quay/xuma/registry"
)

const typeURLStringField = "xuma.test.v1.StringField"

type stringFieldConfig struct {
	Key string `json:"key"`
}

func newTestRegistry() *registry.Registry[*xfixture.Context] {
	b := registry.NewRegistryBuilder[*xfixture.Context]()
	registry.RegisterInput(b, typeURLStringField, func(cfg stringFieldConfig) (xuma.DataInput[*xfixture.Context], error) {
		return xfixture.StringInput{Key: cfg.Key}, nil
	})
	return b.Build()
}

func exactMatcherConfig(value string) registry.PredicateConfig {
	return registry.PredicateConfig{
		Type:  "single",
		Input: &registry.TypedConfig{TypeURL: typeURLStringField, Config: []byte(`{"key":"method"}`)},
		ValueMatch: &registry.StringMatchSpec{
			Exact: &value,
		},
	}
}

func TestLoadRoundTripMatchesHandBuilt(t *testing.T) {
	r := newTestRegistry()
	cfg := registry.MatcherConfig{
		Matchers: []registry.FieldMatcherConfig{
			{
				Predicate: exactMatcherConfig("GET"),
				OnMatch:   registry.OnMatchConfig{Type: "action", Action: []byte(`"route-get"`)},
			},
		},
	}
	loaded, err := registry.Load[*xfixture.Context, string](context.Background(), r, cfg)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	handBuilt := xuma.NewMatcher([]xuma.FieldMatcher[*xfixture.Context, string]{
		{
			Predicate: xuma.Single(xuma.SinglePredicate[*xfixture.Context]{
				Input:   xfixture.StringInput{Key: "method"},
				Matcher: xuma.ExactMatcher{Expected: "GET"},
			}),
			OnMatch: xuma.ActionOnMatch[*xfixture.Context]("route-get"),
		},
	}, nil)

	for _, method := range []string{"GET", "POST", "DELETE"} {
		ctx := xfixture.NewContext(map[string]string{"method": method})
		got, gotOK := loaded.Evaluate(ctx)
		want, wantOK := handBuilt.Evaluate(ctx)
		if got != want || gotOK != wantOK {
			t.Errorf("method=%s: loaded = (%q, %v), hand-built = (%q, %v)", method, got, gotOK, want, wantOK)
		}
	}
}

func TestLoadUnknownInputTypeURLListsAvailable(t *testing.T) {
	r := newTestRegistry()
	cfg := registry.MatcherConfig{
		Matchers: []registry.FieldMatcherConfig{
			{
				Predicate: registry.PredicateConfig{
					Type:       "single",
					Input:      &registry.TypedConfig{TypeURL: "xuma.test.v1.DoesNotExist"},
					ValueMatch: &registry.StringMatchSpec{Exact: strPtr("x")},
				},
				OnMatch: registry.OnMatchConfig{Type: "action", Action: []byte(`"x"`)},
			},
		},
	}
	_, err := registry.Load[*xfixture.Context, string](context.Background(), r, cfg)
	var ue *xuma.UnknownTypeURLError
	if !errors.As(err, &ue) {
		t.Fatalf("Load() error = %v, want *UnknownTypeURLError", err)
	}
	if ue.Registry != "input" {
		t.Errorf("got Registry=%q, want %q", ue.Registry, "input")
	}
	found := false
	for _, u := range ue.Available {
		if u == typeURLStringField {
			found = true
		}
	}
	if !found {
		t.Errorf("Available = %v, want it to include %q", ue.Available, typeURLStringField)
	}
}

func TestLoadIncompatibleTypes(t *testing.T) {
	r := newTestRegistry()
	// BoolMatcher paired with a string-producing input.
	cfg := registry.MatcherConfig{
		Matchers: []registry.FieldMatcherConfig{
			{
				Predicate: registry.PredicateConfig{
					Type:        "single",
					Input:       &registry.TypedConfig{TypeURL: typeURLStringField, Config: []byte(`{"key":"method"}`)},
					CustomMatch: &registry.TypedConfig{TypeURL: registry.TypeURLBoolMatcher, Config: []byte(`{"expected":true}`)},
				},
				OnMatch: registry.OnMatchConfig{Type: "action", Action: []byte(`"x"`)},
			},
		},
	}
	_, err := registry.Load[*xfixture.Context, string](context.Background(), r, cfg)
	var ie *xuma.IncompatibleTypesError
	if !errors.As(err, &ie) {
		t.Fatalf("Load() error = %v, want *IncompatibleTypesError", err)
	}
}

func TestLoadValueMatchXorCustomMatch(t *testing.T) {
	r := newTestRegistry()

	neither := registry.MatcherConfig{
		Matchers: []registry.FieldMatcherConfig{
			{
				Predicate: registry.PredicateConfig{
					Type:  "single",
					Input: &registry.TypedConfig{TypeURL: typeURLStringField, Config: []byte(`{"key":"method"}`)},
				},
				OnMatch: registry.OnMatchConfig{Type: "action", Action: []byte(`"x"`)},
			},
		},
	}
	if _, err := registry.Load[*xfixture.Context, string](context.Background(), r, neither); err == nil {
		t.Error("expected an error when neither value_match nor custom_match is set")
	}

	value := "GET"
	both := registry.MatcherConfig{
		Matchers: []registry.FieldMatcherConfig{
			{
				Predicate: registry.PredicateConfig{
					Type:        "single",
					Input:       &registry.TypedConfig{TypeURL: typeURLStringField, Config: []byte(`{"key":"method"}`)},
					ValueMatch:  &registry.StringMatchSpec{Exact: &value},
					CustomMatch: &registry.TypedConfig{TypeURL: registry.TypeURLBoolMatcher},
				},
				OnMatch: registry.OnMatchConfig{Type: "action", Action: []byte(`"x"`)},
			},
		},
	}
	if _, err := registry.Load[*xfixture.Context, string](context.Background(), r, both); err == nil {
		t.Error("expected an error when both value_match and custom_match are set")
	}
}

func TestLoadFieldMatcherWidthCap(t *testing.T) {
	r := newTestRegistry()
	matchers := make([]registry.FieldMatcherConfig, xuma.MaxFieldMatchers+1)
	for i := range matchers {
		matchers[i] = registry.FieldMatcherConfig{
			Predicate: exactMatcherConfig("GET"),
			OnMatch:   registry.OnMatchConfig{Type: "action", Action: []byte(`"x"`)},
		}
	}
	_, err := registry.Load[*xfixture.Context, string](context.Background(), r, registry.MatcherConfig{Matchers: matchers})
	var te *xuma.TooManyFieldMatchersError
	if !errors.As(err, &te) {
		t.Fatalf("Load() error = %v, want *TooManyFieldMatchersError", err)
	}
}

func TestLoadNestedDepthCap(t *testing.T) {
	r := newTestRegistry()

	cfg := registry.MatcherConfig{
		Matchers: []registry.FieldMatcherConfig{
			{Predicate: exactMatcherConfig("GET"), OnMatch: registry.OnMatchConfig{Type: "action", Action: []byte(`"leaf"`)}},
		},
	}
	for i := 0; i <= xuma.MaxDepth; i++ {
		inner := cfg
		cfg = registry.MatcherConfig{
			Matchers: []registry.FieldMatcherConfig{
				{Predicate: exactMatcherConfig("GET"), OnMatch: registry.OnMatchConfig{Type: "matcher", Matcher: &inner}},
			},
		}
	}
	_, err := registry.Load[*xfixture.Context, string](context.Background(), r, cfg)
	var de *xuma.DepthExceededError
	if !errors.As(err, &de) {
		t.Fatalf("Load() error = %v, want *DepthExceededError", err)
	}
}

func strPtr(s string) *string { return &s }
