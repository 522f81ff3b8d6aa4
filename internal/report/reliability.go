package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/m0n0x41d/quint-audit/assurance"
)

// Reliability renders the R_eff report: summary, evidence breakdown, trust
// calculus analysis and risk factors.
func Reliability(r *assurance.AssuranceReport, generated time.Time) string {
	var sb strings.Builder

	sb.WriteString("# R_eff Calculation Report\n\n")
	sb.WriteString(fmt.Sprintf("**Hypothesis:** %s\n", r.Title))
	sb.WriteString(fmt.Sprintf("**ID:** %s\n", r.HolonID))
	sb.WriteString(fmt.Sprintf("**Layer:** %s\n", r.Layer))
	sb.WriteString(fmt.Sprintf("**Kind:** %s\n", r.Kind))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n\n", generated.Format(time.RFC3339)))

	sb.WriteString("## Effective Reliability (R_eff)\n\n")
	sb.WriteString(fmt.Sprintf("**R_eff = %s**\n\n", score(r.FinalScore)))
	sb.WriteString(fmt.Sprintf("- Self Score (R_self): %s\n", score(r.SelfScore)))
	sb.WriteString(fmt.Sprintf("- Weakest Link: %s\n\n", weakestLink(r.WeakestLink)))

	sb.WriteString("## Evidence Breakdown\n\n")
	if len(r.Evidence) == 0 {
		sb.WriteString("No evidence recorded.\n\n")
	} else {
		w := newTable("#", "Evidence", "Type", "Test Type", "Verdict", "Score")
		for i, e := range r.Evidence {
			w.AppendRow(table.Row{i + 1, e.Title, e.Type, e.TestType(), string(e.Verdict()), score(e.Score)})
		}
		alignRight(w, 1, 6)
		sb.WriteString(w.RenderMarkdown())
		sb.WriteString("\n\n")
	}

	sb.WriteString("## Trust Calculus Analysis\n\n")
	minEvidence := r.SelfScore
	if r.WeakestLink != nil {
		minEvidence = r.WeakestLink.Score
	}
	sb.WriteString("Weakest Link Principle (WLNK):\n")
	sb.WriteString(fmt.Sprintf("R_eff = min(R_self, evidence_scores) = min(%s, %s)\n\n",
		score(r.SelfScore), score(minEvidence)))
	sb.WriteString(fmt.Sprintf("**Result:** %s\n", score(r.FinalScore)))
	sb.WriteString(fmt.Sprintf("**Bias Assessment:** %s\n\n", r.Bias))

	sb.WriteString("## Risk Factors\n\n")
	for _, f := range r.Factors {
		sb.WriteString(fmt.Sprintf("- [%s] **%s:** %s\n", f.Level, f.Label, f.Message))
	}
	for _, w := range r.Warnings {
		sb.WriteString(fmt.Sprintf("- [WARN] %s\n", w))
	}

	return sb.String()
}

func weakestLink(w *assurance.WeakestLink) string {
	if w == nil {
		return "none (no evidence)"
	}
	return fmt.Sprintf("%s `%s` (score: %s)", w.Title, w.ID, score(w.Score))
}
