package internal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/Pass-The-Butter/willow/internal/organogram"
)

var (
	heading = color.New(color.FgCyan, color.Bold).SprintFunc()
	section = color.New(color.FgYellow).SprintFunc()
	good    = color.New(color.FgGreen).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
	bad     = color.New(color.FgRed).SprintFunc()
	dim     = color.New(color.FgHiBlack).SprintFunc()
)

// RenderContext writes a task context bundle for a human reader.
func RenderContext(w io.Writer, b *organogram.ContextBundle) {
	fmt.Fprintf(w, "\n%s\n", heading("=== "+b.TaskPath+" ==="))
	fmt.Fprintf(w, "Status: %s\n", statusColor(b.Summary.Status))
	if desc := b.Task.String("description"); desc != "" {
		fmt.Fprintf(w, "%s\n", desc)
	}

	fmt.Fprintf(w, "\n%s\n", section("Specification:"))
	renderProps(w, b.Specification)

	fmt.Fprintf(w, "\n%s\n", section("Acceptance criteria:"))
	renderProps(w, b.AcceptanceCriteria)

	fmt.Fprintf(w, "\n%s\n", section("Dependencies:"))
	if len(b.Dependencies) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("none"))
	}
	for _, dep := range b.Dependencies {
		fmt.Fprintf(w, "  %s %s\n", statusIcon(dep.Status()), dep.Name())
	}

	fmt.Fprintf(w, "\n%s\n", section("Recent diary entries:"))
	if len(b.DiaryEntries) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("none in window"))
	}
	for _, e := range b.DiaryEntries {
		when := e.String("timestamp")
		if at, ok := e.Time("timestamp"); ok {
			when = at.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %s [%s] %s: %s\n", dim(when), e.String("status"), e.String("agent"), e.String("notes"))
	}

	fmt.Fprintf(w, "\n%s\n", section("Unread messages:"))
	if len(b.Messages) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("none"))
	}
	for _, m := range b.Messages {
		fmt.Fprintf(w, "  %s %s → %s: %s\n", priorityIcon(m.String("priority")), m.String("from"), m.String("to"), m.String("subject"))
	}

	fmt.Fprintf(w, "\n%s\n", section("Open RFCs:"))
	if len(b.RFCs) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("none"))
	}
	for _, r := range b.RFCs {
		fmt.Fprintf(w, "  %s: %s [%s]\n", r.String("id"), r.String("title"), r.String("priority"))
	}

	fmt.Fprintln(w)
	if len(b.Summary.BlockedBy) > 0 {
		fmt.Fprintf(w, "%s blocked by: %s\n", bad("✗"), strings.Join(b.Summary.BlockedBy, ", "))
	} else {
		fmt.Fprintf(w, "%s no blocking dependencies\n", good("✓"))
	}
}

// RenderStatus writes the project overview for a human reader.
func RenderStatus(w io.Writer, r *organogram.StatusReport) {
	fmt.Fprintf(w, "\n%s\n", heading("=== Project Status ==="))

	fmt.Fprintf(w, "\n%s\n", section("Domains:"))
	if len(r.Domains) == 0 {
		fmt.Fprintf(w, "  %s\n", dim("no tasks in the organogram"))
	}
	for _, d := range r.Domains {
		icon := dim("○")
		switch {
		case d.Percent == 100:
			icon = good("●")
		case d.Percent > 0:
			icon = warn("◐")
		}
		fmt.Fprintf(w, "  %s %s: %d%% (%d/%d complete)\n", icon, d.Domain, d.Percent, d.Complete, d.Total)
		if d.InProgress > 0 {
			fmt.Fprintf(w, "      %d in progress\n", d.InProgress)
		}
		if d.NotStarted > 0 {
			fmt.Fprintf(w, "      %d not started\n", d.NotStarted)
		}
	}

	fmt.Fprintf(w, "\n%s\n", section("Unread messages:"))
	if len(r.Messages) == 0 {
		fmt.Fprintf(w, "  %s\n", good("✓ none"))
	}
	for _, m := range r.Messages {
		fmt.Fprintf(w, "  %s %s → %s: %s\n", priorityIcon(m.Priority), m.From, m.To, m.Subject)
	}

	fmt.Fprintf(w, "\n%s\n", section("Open RFCs:"))
	if len(r.RFCs) == 0 {
		fmt.Fprintf(w, "  %s\n", good("✓ none"))
	}
	for _, rfc := range r.RFCs {
		fmt.Fprintf(w, "  %s: %s [%s]\n", rfc.ID, rfc.Title, rfc.Priority)
	}

	fmt.Fprintf(w, "\n%s\n", section("Ready to start:"))
	if len(r.ReadyTasks) == 0 {
		fmt.Fprintf(w, "  %s\n", warn("all available tasks are blocked or in progress"))
	}
	for _, path := range r.ReadyTasks {
		fmt.Fprintf(w, "  %s %s\n", good("✓"), path)
	}
	fmt.Fprintln(w)
}

func renderProps(w io.Writer, p organogram.Properties) {
	if p == nil {
		fmt.Fprintf(w, "  %s\n", dim("none"))
		return
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, p.String(k))
	}
}

func statusIcon(status string) string {
	switch status {
	case organogram.StatusComplete:
		return good("●")
	case organogram.StatusInProgress:
		return warn("◐")
	default:
		return dim("○")
	}
}

func statusColor(status string) string {
	switch status {
	case organogram.StatusComplete:
		return good(status)
	case organogram.StatusInProgress:
		return warn(status)
	default:
		return dim(status)
	}
}

func priorityIcon(priority string) string {
	if strings.EqualFold(priority, "high") {
		return bad("!")
	}
	return warn("•")
}
