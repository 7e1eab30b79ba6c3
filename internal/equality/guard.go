package equality

import "github.com/seitarof/eqcheck/internal/descriptor"

// pair is an ordered identity pair.
type pair struct {
	left  descriptor.Identity
	right descriptor.Identity
}

func pairOf(left, right *descriptor.Descriptor) pair {
	return pair{left: left.Identity(), right: right.Identity()}
}

// guard tracks pairs on the active recursion path. A pair is pushed at most
// once because Compare checks active before pushing.
type guard struct {
	stack []pair
	set   map[pair]struct{}
}

func newGuard() *guard {
	return &guard{set: map[pair]struct{}{}}
}

func (g *guard) active(p pair) bool {
	_, ok := g.set[p]
	return ok
}

func (g *guard) push(p pair) {
	g.stack = append(g.stack, p)
	g.set[p] = struct{}{}
}

func (g *guard) pop() {
	last := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	delete(g.set, last)
}

func (g *guard) depth() int {
	return len(g.stack)
}
