package cli

// Config stores CLI options for a single check run.
type Config struct {
	Pkg         string
	Pairs       []PairExpr
	LeftPkg     string
	RightPkg    string
	Jobs        int
	Directional bool
	Output      string
	NoColor     bool
	ShowVersion bool
}

// PairExpr is a LEFT=RIGHT pair of type expressions.
type PairExpr struct {
	Left  string
	Right string
}

// Audit reports whether same-named types of two packages are compared.
func (c *Config) Audit() bool {
	return c.LeftPkg != "" && c.RightPkg != ""
}

// OutputFilename returns report file path for report layer.
func (c *Config) OutputFilename() string {
	return c.Output
}

// ColorEnabled reports whether the report may be coloured.
func (c *Config) ColorEnabled() bool {
	return !c.NoColor && c.Output == ""
}
