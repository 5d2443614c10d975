// Package render prints execution options as terminal tables.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/joeydtaylor/steeze-doris/pkg/execution"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// Table renders options as a markdown table of option, value and default.
// Values that differ from execution.Defaults are highlighted when colorize is set.
type Table struct {
	Colorize bool
}

// Options writes the table for one sink to w, followed by any warnings.
func (t Table) Options(w io.Writer, sink string, o execution.Options) error {
	defaults := map[string]string{}
	for _, f := range execution.Defaults().Fields() {
		defaults[f.Key] = formatValue(f.Value)
	}

	out := &strings.Builder{}
	fmt.Fprintf(out, "### %s\n\n", sink)

	table := tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header([]string{"option", "value", "default"})
	for _, f := range o.Fields() {
		val := formatValue(f.Value)
		def := defaults[f.Key]
		if val != def {
			val = t.colorize(val, color.FgYellow)
		}
		if err := table.Append([]string{f.Key, val, def}); err != nil {
			return fmt.Errorf("render %s: %w", sink, err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render %s: %w", sink, err)
	}

	for _, warn := range o.Warnings() {
		fmt.Fprintf(out, "\n%s %s", t.colorize("warning:", color.FgRed), warn)
	}
	out.WriteString("\n")

	_, err := io.WriteString(w, out.String())
	return err
}

func (t Table) colorize(text string, attrs ...color.Attribute) string {
	if !t.Colorize {
		return text
	}
	return color.New(attrs...).Sprint(text)
}

func formatValue(v any) string {
	p, ok := v.(execution.Properties)
	if !ok {
		return fmt.Sprint(v)
	}
	parts := make([]string, 0, len(p))
	for _, k := range p.Keys() {
		parts = append(parts, k+"="+p[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
