package registry

import "github.com/quay/xuma"

// BoolMatcherConfig is the Config for the builtin BoolMatcher, registered
// under [TypeURLBoolMatcher].
type BoolMatcherConfig struct {
	Expected bool `json:"expected"`
}

// registerBuiltinMatchers installs the two matcher factories the core
// ships: StringMatcher (the custom_match form of a [StringMatchSpec]) and
// BoolMatcher.
func registerBuiltinMatchers[Ctx any](b *RegistryBuilder[Ctx]) {
	RegisterMatcher[Ctx](b, TypeURLStringMatcher, func(cfg StringMatchSpec) (xuma.InputMatcher, error) {
		spec, err := toCoreStringMatchSpec(cfg)
		if err != nil {
			return nil, err
		}
		return spec.Compile()
	})
	RegisterMatcher[Ctx](b, TypeURLBoolMatcher, func(cfg BoolMatcherConfig) (xuma.InputMatcher, error) {
		return xuma.BoolMatcher{Expected: cfg.Expected}, nil
	})
}
