package checker

import (
	"context"
	"fmt"
	"go/types"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/seitarof/eqcheck/internal/describe"
	"github.com/seitarof/eqcheck/internal/descriptor"
	"github.com/seitarof/eqcheck/internal/equality"
)

// Pair is one equality assertion site: a left and a right operand type.
type Pair struct {
	LeftExpr  string
	RightExpr string
	Left      types.Type
	Right     types.Type
	// Interfaces are checked for implementation by concrete operands in
	// addition to the interfaces reachable from the operands themselves.
	Interfaces []*types.Named
}

// Status classifies a finding for reporting.
type Status string

const (
	StatusOK          Status = "ok"
	StatusOneWay      Status = "one-way"
	StatusAlwaysFails Status = "always-fails"
)

// Finding is the outcome of checking one pair in both directions.
type Finding struct {
	Pair        Pair
	Forward     bool
	Reverse     bool
	LeftKind    descriptor.Kind
	RightKind   descriptor.Kind
	Directional bool
}

// MayBeEqual reports whether an equality assertion over the pair could pass.
func (f Finding) MayBeEqual() bool {
	if f.Directional {
		return f.Forward
	}
	return f.Forward || f.Reverse
}

// Status returns how the finding is reported.
func (f Finding) Status() Status {
	switch {
	case !f.MayBeEqual():
		return StatusAlwaysFails
	case f.Forward != f.Reverse:
		return StatusOneWay
	default:
		return StatusOK
	}
}

// HasUnknown reports an operand that could not be resolved.
func (f Finding) HasUnknown() bool {
	return f.LeftKind == descriptor.KindUnknown || f.RightKind == descriptor.KindUnknown
}

// Checker evaluates operand pairs.
type Checker interface {
	Check(pair Pair) (Finding, error)
	CheckAll(ctx context.Context, pairs []Pair) ([]Finding, error)
}

// Options configures a Checker.
type Options struct {
	// Jobs bounds parallel checks. Zero or less means GOMAXPROCS.
	Jobs int
	// Directional reports only the left-to-right answer.
	Directional bool
	// Cache is shared by every check of the checker when set.
	Cache *equality.Cache
}

type checkerImpl struct {
	opts     Options
	comparer *equality.Comparer
}

// New returns default checker.
func New(opts Options) Checker {
	comparer := equality.New()
	if opts.Cache != nil {
		comparer = comparer.WithCache(opts.Cache)
	}
	return &checkerImpl{opts: opts, comparer: comparer}
}

// Check describes both operands with a fresh describer, so it is safe to
// call from several goroutines.
func (c *checkerImpl) Check(pair Pair) (Finding, error) {
	d := describe.New(describe.WithInterfaces(pair.Interfaces...))
	d.Register(describe.InterfacesIn(pair.Left)...)
	d.Register(describe.InterfacesIn(pair.Right)...)

	left := d.Describe(pair.Left)
	right := d.Describe(pair.Right)

	forward, err := c.comparer.CanBeEqual(left, right)
	if err != nil {
		return Finding{}, fmt.Errorf("check %s = %s: %w", pair.LeftExpr, pair.RightExpr, err)
	}
	reverse, err := c.comparer.CanBeEqual(right, left)
	if err != nil {
		return Finding{}, fmt.Errorf("check %s = %s: %w", pair.RightExpr, pair.LeftExpr, err)
	}

	return Finding{
		Pair:        pair,
		Forward:     forward,
		Reverse:     reverse,
		LeftKind:    left.Kind(),
		RightKind:   right.Kind(),
		Directional: c.opts.Directional,
	}, nil
}

// CheckAll checks pairs in parallel and returns findings in input order.
func (c *checkerImpl) CheckAll(ctx context.Context, pairs []Pair) ([]Finding, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	jobs := c.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	results := make([]Finding, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(pairs)))

	for i, pair := range pairs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			f, err := c.Check(pair)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
