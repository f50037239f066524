package xuma

// SinglePredicate owns one [DataInput] and one [InputMatcher]. Evaluation
// extracts a [MatchingData] from the context and, unless it is [None],
// delegates to the matcher — the None→false invariant.
type SinglePredicate[Ctx any] struct {
	Input   DataInput[Ctx]
	Matcher InputMatcher
}

// Evaluate implements the SinglePredicate evaluation contract.
func (p SinglePredicate[Ctx]) Evaluate(ctx Ctx) bool {
	d := p.Input.Get(ctx)
	if d.IsNone() {
		return false
	}
	return p.Matcher.Matches(d)
}

// DataType reports the type name of the datum p's input would extract.
func (p SinglePredicate[Ctx]) DataType() string { return p.Input.DataType() }

// PredicateKind tags the variant a [Predicate] tree node carries.
type PredicateKind int

const (
	PredicateSingle PredicateKind = iota
	PredicateAnd
	PredicateOr
	PredicateNot
)

// Predicate is a boolean tree over [SinglePredicate] nodes: And/Or short-
// circuit in declaration order, Not negates, and Single delegates to its
// SinglePredicate. An empty And evaluates to true (vacuous truth); an empty
// Or evaluates to false.
//
// The zero value is not a valid Predicate; construct one with [Single],
// [And], [Or], or [Not].
type Predicate[Ctx any] struct {
	kind     PredicateKind
	single   SinglePredicate[Ctx]
	children []Predicate[Ctx]
	negated  *Predicate[Ctx]
}

// Single wraps sp as a Predicate leaf.
func Single[Ctx any](sp SinglePredicate[Ctx]) Predicate[Ctx] {
	return Predicate[Ctx]{kind: PredicateSingle, single: sp}
}

// And builds a conjunction. An empty And evaluates to true.
func And[Ctx any](children ...Predicate[Ctx]) Predicate[Ctx] {
	return Predicate[Ctx]{kind: PredicateAnd, children: children}
}

// Or builds a disjunction. An empty Or evaluates to false.
func Or[Ctx any](children ...Predicate[Ctx]) Predicate[Ctx] {
	return Predicate[Ctx]{kind: PredicateOr, children: children}
}

// Not negates child.
func Not[Ctx any](child Predicate[Ctx]) Predicate[Ctx] {
	return Predicate[Ctx]{kind: PredicateNot, negated: &child}
}

// Kind reports which variant p is.
func (p Predicate[Ctx]) Kind() PredicateKind { return p.kind }

// Children returns p's And/Or children, or nil otherwise.
func (p Predicate[Ctx]) Children() []Predicate[Ctx] { return p.children }

// Negated returns p's Not child, or nil otherwise.
func (p Predicate[Ctx]) Negated() *Predicate[Ctx] { return p.negated }

// SinglePredicate returns p's SinglePredicate payload; only meaningful when
// p.Kind() == PredicateSingle.
func (p Predicate[Ctx]) SinglePredicate() SinglePredicate[Ctx] { return p.single }

// Evaluate runs the short-circuiting fold described in spec §4.4.
func (p Predicate[Ctx]) Evaluate(ctx Ctx) bool {
	switch p.kind {
	case PredicateSingle:
		return p.single.Evaluate(ctx)
	case PredicateAnd:
		for _, c := range p.children {
			if !c.Evaluate(ctx) {
				return false
			}
		}
		return true
	case PredicateOr:
		for _, c := range p.children {
			if c.Evaluate(ctx) {
				return true
			}
		}
		return false
	case PredicateNot:
		return !p.negated.Evaluate(ctx)
	default:
		return false
	}
}

// Depth reports the tree depth: 1 for Single, 1+max(child depths) for
// And/Or, 1+inner depth for Not.
func (p Predicate[Ctx]) Depth() int {
	switch p.kind {
	case PredicateSingle:
		return 1
	case PredicateAnd, PredicateOr:
		max := 0
		for _, c := range p.children {
			if d := c.Depth(); d > max {
				max = d
			}
		}
		return 1 + max
	case PredicateNot:
		return 1 + p.negated.Depth()
	default:
		return 0
	}
}

// FromAll collapses an And construction: zero children yields catchAll, one
// child yields that child unwrapped, otherwise an And node. This eliminates
// redundant wrapper nodes during compilation.
func FromAll[Ctx any](children []Predicate[Ctx], catchAll Predicate[Ctx]) Predicate[Ctx] {
	switch len(children) {
	case 0:
		return catchAll
	case 1:
		return children[0]
	default:
		return And(children...)
	}
}

// FromAny collapses an Or construction the same way FromAll collapses And.
func FromAny[Ctx any](children []Predicate[Ctx], catchAll Predicate[Ctx]) Predicate[Ctx] {
	switch len(children) {
	case 0:
		return catchAll
	case 1:
		return children[0]
	default:
		return Or(children...)
	}
}
