// Package log sets up zerolog and prints rule outcomes for operators.
package log

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/respectabullz/contracttpl/internal/rewrite"
)

const (
	ruleIndent  = 2
	kindWidth   = 18
	needleWidth = 44
)

// New returns a console logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level. An empty name is info.
func ParseLevel(name string) (zerolog.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, errors.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Reporter prints one line per applied rule.
type Reporter struct {
	console io.Writer
}

// NewReporter creates a reporter writing to console.
func NewReporter(console io.Writer) *Reporter {
	return &Reporter{console: console}
}

// formatOutcome renders an outcome as an aligned, colored line.
func (r *Reporter) formatOutcome(o rewrite.Outcome) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case len(o.Paragraphs) == 0:
		symbol = '-'
		symbolColor = color.FgYellow
	case len(o.Repeated) > 0:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	var kindColor color.Attribute
	if o.Rule.Literal() {
		kindColor = color.FgCyan
	} else {
		kindColor = color.FgMagenta
	}

	needle := o.Rule.Needle
	if !o.Rule.Literal() {
		needle = "(every paragraph)"
	}

	return fmt.Sprintf("%s%s %2d %s %s %s",
		strings.Repeat(" ", ruleIndent),
		color.New(symbolColor).Sprint(string(symbol)),
		o.Order,
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, o.Rule.Kind)),
		fmt.Sprintf("%-*s", needleWidth, truncate(needle, needleWidth)),
		formatIndices(o.Paragraphs))
}

// Report prints every outcome followed by a summary line.
func (r *Reporter) Report(report *rewrite.Report) {
	for _, o := range report.Outcomes {
		fmt.Fprintln(r.console, r.formatOutcome(o))
	}

	fmt.Fprintf(r.console, "%s %d rules, %d paragraphs rewritten, %d optional misses\n",
		color.New(color.FgMagenta).Sprint("◆"),
		len(report.Outcomes),
		len(report.Rewritten()),
		len(report.Misses()))
}

func formatIndices(indices []int) string {
	if len(indices) == 0 {
		return color.New(color.Faint).Sprint("no match")
	}
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprint(idx)
	}
	return "¶ " + strings.Join(parts, ", ")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
