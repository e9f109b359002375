package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/abelbrown/techinsights/internal/site"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(18)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
)

func printReport(w io.Writer, r *site.Report, took time.Duration) {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Tech Insights build "+r.RunID[:8]) + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}

	for _, c := range r.Categories {
		row(c.Label, fmt.Sprintf("%d stories", c.Stories))
	}
	row("Feeds", fmt.Sprintf("%d/%d ok", len(r.Sources)-len(r.Failures), len(r.Sources)))
	row("Top stories", fmt.Sprintf("%d", r.TopStories))
	row("Archive", fmt.Sprintf("%s (%d stories, %d weeks listed)", r.Week, r.WeekStories, len(r.ArchiveWeeks)))
	row("Written", fmt.Sprintf("%d files, %s to %s", len(r.Artifacts), humanize.Bytes(uint64(r.TotalBytes())), r.OutputDir))
	row("Took", took.Round(time.Millisecond).String())

	if len(r.Failures) == 0 {
		b.WriteString(okStyle.Render("all feeds fetched") + "\n")
	} else {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d feeds failed:", len(r.Failures))) + "\n")
		for _, f := range r.Failures {
			b.WriteString(fmt.Sprintf("  %s/%s: %s\n", f.Category, f.Name, f.LastError))
		}
	}

	fmt.Fprint(w, b.String())
}
