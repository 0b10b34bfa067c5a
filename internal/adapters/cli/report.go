package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/starlane-supply/internal/application/supply/commands"
	"github.com/andrescamacho/starlane-supply/internal/application/supply/queries"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// ReportFormatter renders supply results as plain text
type ReportFormatter struct{}

// NewReportFormatter creates a new ReportFormatter
func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{}
}

// FormatSnapshot renders every empire in a snapshot
func (f *ReportFormatter) FormatSnapshot(snap *supply.Snapshot) string {
	var b strings.Builder

	title := fmt.Sprintf("Supply snapshot - turn %d", snap.Turn)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")

	if len(snap.Empires) == 0 {
		b.WriteString("\nNo empire has a supply source.\n")
		return b.String()
	}

	for _, e := range snap.Empires {
		b.WriteString(fmt.Sprintf("\nEmpire %d\n", e.EmpireID))
		f.row(&b, "Fleet-supplyable systems", joinInts(e.FleetSupplyable))
		f.row(&b, "Conducting traversals", joinTraversals(e.Traversals))
		f.row(&b, "Obstructed traversals", joinTraversals(e.ObstructedTraversals))
		f.row(&b, "Resource groups", joinGroups(e.ResourceGroups))

		if len(e.Ranges) == 0 {
			continue
		}
		b.WriteString("  Ranges:\n")
		for _, r := range e.Ranges {
			b.WriteString(fmt.Sprintf("    %-8d range %5.2f  jumps %d\n", r.SystemID, r.Range, r.Jumps))
		}
	}

	return b.String()
}

// FormatUpdate renders the per-empire counts of an update
func (f *ReportFormatter) FormatUpdate(resp *commands.UpdateSupplyResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Supply updated for turn %d in %s\n", resp.Turn, resp.Duration.Round(time.Microsecond)))
	if len(resp.Empires) == 0 {
		b.WriteString("No empire has a supply source.\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%-8s %10s %11s %11s %7s %8s\n",
		"EMPIRE", "SUPPLYABLE", "TRAVERSALS", "OBSTRUCTED", "GROUPS", "LARGEST"))
	for _, s := range resp.Empires {
		b.WriteString(fmt.Sprintf("%-8d %10d %11d %11d %7d %8d\n",
			s.EmpireID, s.SupplyableSystems, s.Traversals, s.ObstructedTraversals, s.ResourceGroups, s.LargestGroup))
	}
	return b.String()
}

// FormatCheck renders the answer to a fleet supply check
func (f *ReportFormatter) FormatCheck(resp *queries.CheckFleetSupplyResponse) string {
	var b strings.Builder

	verdict := "cannot"
	if resp.Supplyable {
		verdict = "can"
	}
	b.WriteString(fmt.Sprintf("Empire %d %s resupply fleets at system %d (turn %d)\n",
		resp.EmpireID, verdict, resp.SystemID, resp.Turn))

	if resp.Reached {
		f.row(&b, "Supply range", fmt.Sprintf("%.2f after %d jumps", resp.Range, resp.Jumps))
	} else {
		f.row(&b, "Supply range", "not reached")
	}
	if resp.Group != nil {
		f.row(&b, "Resource group", joinGroups([][]int{resp.Group}))
	}
	return b.String()
}

func (f *ReportFormatter) row(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("  %-26s%s\n", label+":", value))
}

func joinInts(ids []int) string {
	if len(ids) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}

func joinTraversals(ts []supply.Traversal) string {
	if len(ts) == 0 {
		return "(none)"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmt.Sprintf("%d->%d", t.From, t.To)
	}
	return strings.Join(parts, ", ")
}

func joinGroups(groups [][]int) string {
	if len(groups) == 0 {
		return "(none)"
	}
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprint(g)
	}
	return strings.Join(parts, " ")
}
