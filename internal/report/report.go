package report

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/fatih/color"

	"github.com/seitarof/eqcheck/internal/checker"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Reporter renders findings.
type Reporter interface {
	Report(cfg Config, findings []checker.Finding) error
}

// Config is the minimum config contract required by reporter.
type Config interface {
	OutputFilename() string
	ColorEnabled() bool
}

// Writer writes a rendered report.
type Writer interface {
	Write(filename string, data []byte) error
}

type reporterImpl struct {
	writer Writer
}

type outputWriter struct {
	stdout io.Writer
}

type templateData struct {
	Rows    []rowData
	Total   int
	Failing int
	OneWay  int
}

type rowData struct {
	Status    checker.Status
	Left      string
	Right     string
	LeftKind  string
	RightKind string
	Note      string
}

// New creates a reporter.
func New(w Writer) Reporter {
	return &reporterImpl{writer: w}
}

// NewWriter returns a writer that prints to stdout for an empty filename
// and writes the file otherwise.
func NewWriter(stdout io.Writer) Writer {
	return &outputWriter{stdout: stdout}
}

func (r *reporterImpl) Report(cfg Config, findings []checker.Finding) error {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"status": statusFunc(cfg.ColorEnabled()),
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "report.txt.tmpl", buildTemplateData(findings)); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	if err := r.writer.Write(cfg.OutputFilename(), buf.Bytes()); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (w *outputWriter) Write(filename string, data []byte) error {
	if filename == "" {
		_, err := w.stdout.Write(data)
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func buildTemplateData(findings []checker.Finding) templateData {
	data := templateData{Rows: make([]rowData, 0, len(findings)), Total: len(findings)}
	for _, f := range findings {
		status := f.Status()
		switch status {
		case checker.StatusAlwaysFails:
			data.Failing++
		case checker.StatusOneWay:
			data.OneWay++
		}
		data.Rows = append(data.Rows, rowData{
			Status:    status,
			Left:      f.Pair.LeftExpr,
			Right:     f.Pair.RightExpr,
			LeftKind:  f.LeftKind.String(),
			RightKind: f.RightKind.String(),
			Note:      noteFor(f),
		})
	}
	return data
}

func noteFor(f checker.Finding) string {
	switch {
	case f.HasUnknown():
		return "unresolved operand"
	case f.Forward && !f.Reverse:
		return "left to right only"
	case !f.Forward && f.Reverse:
		return "right to left only"
	default:
		return ""
	}
}

// statusFunc pads the status before colouring so columns stay aligned.
func statusFunc(enabled bool) func(checker.Status) string {
	palette := map[checker.Status]*color.Color{
		checker.StatusOK:          color.New(color.FgGreen),
		checker.StatusOneWay:      color.New(color.FgYellow),
		checker.StatusAlwaysFails: color.New(color.FgRed, color.Bold),
	}
	if !enabled {
		for _, c := range palette {
			c.DisableColor()
		}
	}
	return func(s checker.Status) string {
		text := fmt.Sprintf("%-12s", s)
		if c, ok := palette[s]; ok {
			return c.Sprint(text)
		}
		return text
	}
}
