package cli

import (
	"context"
	"fmt"
	"go/types"
	"log"

	"github.com/seitarof/eqcheck/internal/checker"
	"github.com/seitarof/eqcheck/internal/loader"
	"github.com/seitarof/eqcheck/internal/matcher"
	"github.com/seitarof/eqcheck/internal/report"
)

// Runner orchestrates loader/matcher/checker/report layers.
type Runner interface {
	// Run returns the number of pairs that can never compare equal.
	Run(ctx context.Context, cfg *Config) (int, error)
}

type runnerImpl struct {
	loader   loader.Loader
	matcher  matcher.TypeMatcher
	checker  checker.Checker
	reporter report.Reporter
}

// NewRunner creates a default runner implementation.
func NewRunner(
	l loader.Loader,
	m matcher.TypeMatcher,
	c checker.Checker,
	rep report.Reporter,
) Runner {
	return &runnerImpl{
		loader:   l,
		matcher:  m,
		checker:  c,
		reporter: rep,
	}
}

// Run executes a single check cycle.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) (int, error) {
	pairs, err := r.exprPairs(cfg)
	if err != nil {
		return 0, err
	}
	if cfg.Audit() {
		audit, err := r.auditPairs(cfg)
		if err != nil {
			return 0, err
		}
		pairs = append(pairs, audit...)
	}
	if len(pairs) == 0 {
		return 0, fmt.Errorf("no matching types found between %q and %q", cfg.LeftPkg, cfg.RightPkg)
	}

	findings, err := r.checker.CheckAll(ctx, pairs)
	if err != nil {
		return 0, fmt.Errorf("check: %w", err)
	}
	logUnknownOperands(findings)

	if err := r.reporter.Report(cfg, findings); err != nil {
		return 0, fmt.Errorf("report: %w", err)
	}
	return countFailing(findings), nil
}

func (r *runnerImpl) exprPairs(cfg *Config) ([]checker.Pair, error) {
	if len(cfg.Pairs) == 0 {
		return nil, nil
	}

	ifaces, err := r.loader.Interfaces(cfg.Pkg)
	if err != nil {
		return nil, fmt.Errorf("load pkg: %w", err)
	}

	pairs := make([]checker.Pair, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		left, err := r.loader.Eval(cfg.Pkg, p.Left)
		if err != nil {
			return nil, fmt.Errorf("left operand: %w", err)
		}
		right, err := r.loader.Eval(cfg.Pkg, p.Right)
		if err != nil {
			return nil, fmt.Errorf("right operand: %w", err)
		}
		pairs = append(pairs, checker.Pair{
			LeftExpr:   p.Left,
			RightExpr:  p.Right,
			Left:       left,
			Right:      right,
			Interfaces: ifaces,
		})
	}
	return pairs, nil
}

func (r *runnerImpl) auditPairs(cfg *Config) ([]checker.Pair, error) {
	leftTypes, err := r.loader.NamedTypes(cfg.LeftPkg)
	if err != nil {
		return nil, fmt.Errorf("load left: %w", err)
	}
	rightTypes, err := r.loader.NamedTypes(cfg.RightPkg)
	if err != nil {
		return nil, fmt.Errorf("load right: %w", err)
	}
	leftIfaces, err := r.loader.Interfaces(cfg.LeftPkg)
	if err != nil {
		return nil, fmt.Errorf("load left: %w", err)
	}
	rightIfaces, err := r.loader.Interfaces(cfg.RightPkg)
	if err != nil {
		return nil, fmt.Errorf("load right: %w", err)
	}
	ifaces := append(leftIfaces[:len(leftIfaces):len(leftIfaces)], rightIfaces...)

	matched := r.matcher.MatchTypes(leftTypes, rightTypes)
	pairs := make([]checker.Pair, 0, len(matched))
	for _, m := range matched {
		pairs = append(pairs, checker.Pair{
			LeftExpr:   qualifiedName(m.Left),
			RightExpr:  qualifiedName(m.Right),
			Left:       m.Left.Type,
			Right:      m.Right.Type,
			Interfaces: ifaces,
		})
	}
	return pairs, nil
}

func qualifiedName(nt loader.NamedType) string {
	if nt.Type == nil {
		return nt.Name
	}
	return types.TypeString(nt.Type, (*types.Package).Name)
}

func countFailing(findings []checker.Finding) int {
	n := 0
	for _, f := range findings {
		if !f.MayBeEqual() {
			n++
		}
	}
	return n
}

func logUnknownOperands(findings []checker.Finding) {
	for _, f := range findings {
		if !f.HasUnknown() {
			continue
		}
		log.Printf(
			"eqcheck: warning: %s (%s) == %s (%s): unresolved operand, assumed comparable",
			f.Pair.LeftExpr,
			f.LeftKind,
			f.Pair.RightExpr,
			f.RightKind,
		)
	}
}
