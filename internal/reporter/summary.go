package reporter

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/sl4desec/subpeek/internal/models"
)

// SummaryPrinter renders a RunSummary for humans, normally on stderr.
type SummaryPrinter struct {
	out io.Writer
}

// NewSummaryPrinter creates a printer writing to out
func NewSummaryPrinter(out io.Writer) *SummaryPrinter {
	return &SummaryPrinter{out: out}
}

// Print writes the per-stage counts of a run.
func (p *SummaryPrinter) Print(summary *models.RunSummary) {
	if summary == nil {
		return
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	fmt.Fprintln(p.out)
	bold.Fprintf(p.out, "Summary for %s ", summary.Domain)
	if summary.Status == models.RunStatusCompleted {
		green.Fprintf(p.out, "[%s]\n", summary.Status)
	} else {
		red.Fprintf(p.out, "[%s]\n", summary.Status)
	}

	p.line(dim, "├─", "sources", fmt.Sprintf("%d queried, %d failed", summary.SourcesQueried, summary.SourcesFailed))
	p.line(dim, "├─", "candidates", fmt.Sprintf("%d", summary.Candidates))
	p.line(dim, "├─", "resolved", fmt.Sprintf("%d", summary.Resolved))
	p.line(dim, "├─", "probed", fmt.Sprintf("%d (%d responded)", summary.Probed, summary.Responsive))

	if summary.WildcardDetected {
		p.line(yellow, "├─", "wildcard", fmt.Sprintf("detected at %s, %d filtered", summary.WildcardIP, summary.Filtered))
	} else {
		p.line(dim, "├─", "wildcard", "not detected")
	}

	p.line(green, "└─", "results", fmt.Sprintf("%d in %s", summary.Results, summary.Duration.Round(time.Millisecond)))
}

func (p *SummaryPrinter) line(c *color.Color, branch, label, value string) {
	c.Fprintf(p.out, "  %s %-10s %s\n", branch, label, value)
}
