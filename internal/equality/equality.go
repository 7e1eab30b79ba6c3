// Package equality decides whether values of two types could ever be found
// equal by a structurally-aware equality comparer.
//
// The relation is directional: conversion and typed-equality declarations
// only count from the left operand toward the right one. Callers that want
// to know whether an assertion could ever pass evaluate both orders and OR
// the results.
package equality

import (
	"errors"
	"fmt"

	"github.com/seitarof/eqcheck/internal/descriptor"
)

// ErrNilDescriptor is returned when an operand descriptor is missing.
var ErrNilDescriptor = errors.New("nil type descriptor")

// Verdict is the three-valued outcome of comparing one pair.
type Verdict int

const (
	// Incompatible means no pair of values can be equal.
	Incompatible Verdict = iota
	// Assumed is produced by the cycle guard for a pair already being compared.
	Assumed
	// Compatible means some pair of values could be equal.
	Compatible
)

func (v Verdict) String() string {
	switch v {
	case Incompatible:
		return "incompatible"
	case Assumed:
		return "assumed"
	case Compatible:
		return "compatible"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// And combines verdicts of parts that must all be compatible.
func And(a, b Verdict) Verdict {
	return min(a, b)
}

// Rule tries to decide one ordered pair.
type Rule interface {
	Name() string
	Try(w *Walker, left, right *descriptor.Descriptor) (Verdict, bool)
}

// Comparer evaluates a rule chain. It holds no per-call state and is safe
// for concurrent use.
type Comparer struct {
	rules []Rule
	cache *Cache
}

// New builds a comparer with rule chain. With no rules it uses DefaultRules.
func New(rules ...Rule) *Comparer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Comparer{rules: rules}
}

// WithCache returns a copy of c that memoises top-level answers in cache.
func (c *Comparer) WithCache(cache *Cache) *Comparer {
	return &Comparer{rules: c.rules, cache: cache}
}

var defaultComparer = New()

// CanBeEqual evaluates left against right with the default rules.
func CanBeEqual(left, right *descriptor.Descriptor) (bool, error) {
	return defaultComparer.CanBeEqual(left, right)
}

// CanBeEqual reports whether a value of left could equal a value of right.
func (c *Comparer) CanBeEqual(left, right *descriptor.Descriptor) (bool, error) {
	if left == nil || right == nil {
		return false, fmt.Errorf("can be equal: %w", ErrNilDescriptor)
	}

	key := pairOf(left, right)
	if c.cache != nil {
		if v, ok := c.cache.load(key); ok {
			return v, nil
		}
	}

	w := newWalker(c.rules)
	result := w.Compare(left, right) == Compatible

	if c.cache != nil {
		c.cache.store(key, result)
	}
	return result, nil
}

// Walker carries the cycle guard of one top-level call. Rules use it to
// recurse into component types.
type Walker struct {
	rules []Rule
	guard *guard
}

func newWalker(rules []Rule) *Walker {
	return &Walker{rules: rules, guard: newGuard()}
}

// Compare evaluates one ordered pair, first rule that resolves wins.
func (w *Walker) Compare(left, right *descriptor.Descriptor) Verdict {
	key := pairOf(left, right)
	if w.guard.active(key) {
		return Assumed
	}
	w.guard.push(key)
	defer w.guard.pop()

	for _, rule := range w.rules {
		if v, ok := rule.Try(w, left, right); ok {
			return v
		}
	}
	return Incompatible
}

// Depth returns the number of pairs currently being compared.
func (w *Walker) Depth() int {
	return w.guard.depth()
}
