package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var pairsRaw []string

	fs := pflag.NewFlagSet("eqcheck", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Pkg, "pkg", "p", ".", "package that type expressions are evaluated in")
	fs.StringArrayVar(&pairsRaw, "pair", nil, "LEFT=RIGHT type expressions to compare (repeatable)")
	fs.StringVar(&cfg.LeftPkg, "left-pkg", "", "left package for audit mode")
	fs.StringVar(&cfg.RightPkg, "right-pkg", "", "right package for audit mode")
	fs.IntVarP(&cfg.Jobs, "jobs", "j", 0, "parallel checks (0 = GOMAXPROCS)")
	fs.BoolVar(&cfg.Directional, "directional", false, "report only left-to-right answers")
	fs.StringVarP(&cfg.Output, "output", "o", "", "report file name (default stdout)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable coloured output")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	for _, raw := range pairsRaw {
		p, err := splitPair(raw)
		if err != nil {
			return nil, err
		}
		cfg.Pairs = append(cfg.Pairs, p)
	}

	cfg.LeftPkg = strings.TrimSpace(cfg.LeftPkg)
	cfg.RightPkg = strings.TrimSpace(cfg.RightPkg)
	if (cfg.LeftPkg == "") != (cfg.RightPkg == "") {
		return nil, fmt.Errorf("--left-pkg and --right-pkg must be set together")
	}
	if len(cfg.Pairs) == 0 && !cfg.Audit() {
		return nil, fmt.Errorf("--pair or --left-pkg/--right-pkg is required")
	}
	if strings.TrimSpace(cfg.Pkg) == "" {
		return nil, fmt.Errorf("--pkg must not be empty")
	}
	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("--jobs must not be negative")
	}
	return cfg, nil
}

// splitPair splits on the first '=' so the right side may be any expression.
func splitPair(raw string) (PairExpr, error) {
	left, right, ok := strings.Cut(raw, "=")
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if !ok || left == "" || right == "" {
		return PairExpr{}, fmt.Errorf("invalid --pair %q: want LEFT=RIGHT", raw)
	}
	return PairExpr{Left: left, Right: right}, nil
}
