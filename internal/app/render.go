package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/ledger/internal/core/domain"
	"go.trai.ch/ledger/internal/core/ports"
	"go.trai.ch/ledger/internal/ui/style"
	"go.trai.ch/zerr"
)

// render prints, per variant, the execution order and the final files of each artifact type.
func (a *App) render(plans []VariantPlan, store ports.ReportStore) error {
	p := style.For(a.out)
	var b strings.Builder
	for i, plan := range plans {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Title.Render("variant "+plan.Variant) + "\n")

		b.WriteString("  tasks:\n")
		for n, path := range plan.Order {
			fmt.Fprintf(&b, "    %d. %s\n", n+1, path)
		}

		b.WriteString("  artifacts:\n")
		for _, t := range plan.Holder.Types() {
			final := plan.Holder.GetFinalArtifactFiles(t)
			writeFileSet(&b, p, "    ", t, final)
		}

		state := p.OK.Render(style.Check + " updated")
		if !plan.ReportChanged {
			state = p.Cached.Render(style.Tilde + " unchanged")
		}
		fmt.Fprintf(&b, "  report: %s (%s)\n", filepath.Join(store.Dir(), plan.Variant+".json"), state)
	}
	return a.write(b.String())
}

// renderReport prints every artifact type's history, oldest output first. When statuses
// is non-nil each file is followed by its state on disk.
func (a *App) renderReport(report domain.Report, statuses map[string]domain.OutputStatus) error {
	p := style.For(a.out)
	var b strings.Builder
	for _, t := range report.Types() {
		fmt.Fprintf(&b, "%s (%s, %s)\n", p.Title.Render(t.Name), t.Category, t.Kind)
		for i, entry := range report[t] {
			builtBy := "-"
			if len(entry.BuiltBy) > 0 {
				builtBy = strings.Join(entry.BuiltBy, ", ")
			}
			fmt.Fprintf(&b, "  #%d built by %s\n", i+1, builtBy)
			for _, f := range entry.Files {
				fmt.Fprintf(&b, "      %s%s\n", p.Muted.Render(f), fileState(p, statuses, f))
			}
		}
	}
	return a.write(b.String())
}

func fileState(p style.Palette, statuses map[string]domain.OutputStatus, file string) string {
	if statuses == nil {
		return ""
	}
	s := statuses[file]
	switch {
	case !s.Exists:
		return " " + p.Error.Render(style.Cross+" missing")
	case s.IsDir:
		return " " + p.OK.Render(fmt.Sprintf("%s %s (%d files)", style.Check, s.Digest, s.Files))
	default:
		return " " + p.OK.Render(style.Check+" "+s.Digest)
	}
}

func writeFileSet(b *strings.Builder, p style.Palette, indent string, t domain.ArtifactType, set domain.FileSet) {
	deps := set.BuildDependencies()
	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.String()
	}
	fmt.Fprintf(b, "%s%s <- [%s]\n", indent, t.Name, strings.Join(names, ", "))
	for f := range set.All() {
		fmt.Fprintf(b, "%s    %s\n", indent, p.Muted.Render(f))
	}
}

func (a *App) write(s string) error {
	if _, err := io.WriteString(a.out, s); err != nil {
		return zerr.Wrap(err, "failed to write output")
	}
	return nil
}
