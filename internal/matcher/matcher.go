package matcher

import (
	"cmp"
	"slices"

	"github.com/seitarof/eqcheck/internal/loader"
)

// TypePair is a left/right pair of same-named types.
type TypePair struct {
	Left  loader.NamedType
	Right loader.NamedType
}

// TypeMatcher matches named types declared in two packages.
type TypeMatcher interface {
	MatchTypes(left, right []loader.NamedType) []TypePair
}

type typeMatcherImpl struct{}

// NewTypeMatcher returns default type matcher.
func NewTypeMatcher() TypeMatcher {
	return &typeMatcherImpl{}
}

func (m *typeMatcherImpl) MatchTypes(left, right []loader.NamedType) []TypePair {
	rightMap := make(map[string]loader.NamedType, len(right))
	for _, r := range right {
		rightMap[r.Name] = r
	}

	pairs := make([]TypePair, 0, len(left))
	for _, l := range left {
		if r, ok := rightMap[l.Name]; ok {
			pairs = append(pairs, TypePair{Left: l, Right: r})
		}
	}

	slices.SortFunc(pairs, func(a, b TypePair) int { return cmp.Compare(a.Left.Name, b.Left.Name) })
	return pairs
}
