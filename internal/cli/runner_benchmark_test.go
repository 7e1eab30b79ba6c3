package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/seitarof/eqcheck/internal/checker"
	"github.com/seitarof/eqcheck/internal/equality"
)

func BenchmarkRunnerRun_EndToEnd(b *testing.B) {
	out := filepath.Join(b.TempDir(), "report.txt")

	runner := newIntegrationRunner(checker.Options{Cache: equality.NewCache()})

	cfg := &Config{
		Pkg: "github.com/seitarof/eqcheck/testdata/eqtypes",
		Pairs: []PairExpr{
			{Left: "User", Right: "Admin"},
			{Left: "Tree", Right: "Forest"},
			{Left: "Registry", Right: "[]User"},
		},
		Output: out,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := runner.Run(context.Background(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
