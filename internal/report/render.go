package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/render"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
	DryRun   bool
}

type palette struct {
	heading, created, updated, unchanged, added, removed, hunk func(a ...interface{}) string
}

func newPalette(noColor bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		heading:   mk(color.FgCyan, color.Bold),
		created:   mk(color.FgGreen),
		updated:   mk(color.FgYellow),
		unchanged: mk(color.FgHiBlack),
		added:     mk(color.FgGreen),
		removed:   mk(color.FgRed),
		hunk:      mk(color.FgCyan),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintCapabilities lists detectors or actions with their default state.
func PrintCapabilities(w io.Writer, title string, metas []capability.Meta, noColor bool) error {
	p := newPalette(noColor)
	fmt.Fprintf(w, "%s (%d)\n", p.heading(title), len(metas))

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Default", "Description")
	for _, m := range metas {
		def := "disabled"
		if m.DefaultEnabled {
			def = "enabled"
		}
		if err := table.Append([]string{m.Name, def, m.Description}); err != nil {
			return err
		}
	}
	return table.Render()
}

// status pads before coloring so escape codes don't break alignment.
func (p palette) status(s render.Status) string {
	label := fmt.Sprintf("%-9s", s)
	switch s {
	case render.Created:
		return p.created(label)
	case render.Updated:
		return p.updated(label)
	default:
		return p.unchanged(label)
	}
}

// PrintChanges prints one line per generated file followed by a summary.
func PrintChanges(w io.Writer, changes []render.Change, opts PrintOptions) {
	p := newPalette(opts.NoColor)
	created, updated, unchanged := 0, 0, 0
	if len(changes) == 0 {
		fmt.Fprintln(w, "No files generated")
	}
	for _, c := range changes {
		switch c.Status {
		case render.Created:
			created++
		case render.Updated:
			updated++
		default:
			unchanged++
		}
		fmt.Fprintf(w, "%s %s\n", p.status(c.Status), c.Path)
	}

	fmt.Fprintln(w)
	verb := "Files"
	if opts.DryRun {
		verb = "Files (dry run)"
	}
	fmt.Fprintf(w, "%s: %d (created: %d, updated: %d, unchanged: %d)\n", verb, len(changes), created, updated, unchanged)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Run duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// PrintDiffs writes a unified diff for every file that changed.
func PrintDiffs(w io.Writer, changes []render.Change, noColor bool) {
	p := newPalette(noColor)
	for _, c := range changes {
		d := c.Diff()
		if d == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d, "\n"), "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				line = p.heading(line)
			case strings.HasPrefix(line, "@@"):
				line = p.hunk(line)
			case strings.HasPrefix(line, "+"):
				line = p.added(line)
			case strings.HasPrefix(line, "-"):
				line = p.removed(line)
			}
			fmt.Fprintln(w, line)
		}
	}
}
