package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/m0n0x41d/quint-audit/assurance"
)

// Candidate is one hypothesis compared in a decision record.
type Candidate struct {
	ID            string
	Title         string
	Layer         string
	Reliability   float64
	EvidenceCount int
}

// DecisionRecord is the input of a Design Rationale Record.
type DecisionRecord struct {
	ID           string
	Title        string
	Date         time.Time
	Winner       Candidate
	Rejected     []Candidate
	Context      string
	Decision     string
	Rationale    string
	Consequences string
	Validity     string
	// WinnerReport is the assessment of the winner at decision time.
	WinnerReport *assurance.AssuranceReport
}

// DecisionBody renders the DRR markdown body.
func DecisionBody(d DecisionRecord) string {
	var sb strings.Builder

	sb.WriteString("# Design Rationale Record (DRR)\n\n")
	sb.WriteString(fmt.Sprintf("**Decision ID:** `%s`\n", d.ID))
	sb.WriteString(fmt.Sprintf("**Title:** %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", d.Date.Format("2006-01-02")))
	sb.WriteString("**Status:** DECIDED\n")
	sb.WriteString(fmt.Sprintf("**Winner:** `%s` (R_eff: %s)\n\n", d.Winner.ID, score(d.Winner.Reliability)))

	section(&sb, "Context", d.Context)
	section(&sb, "Decision", d.Decision)
	section(&sb, "Rationale", d.Rationale)
	section(&sb, "Consequences", d.Consequences)

	sb.WriteString("## Audit Trail\n\n")
	sb.WriteString(fmt.Sprintf("- Hypothesis `%s` proposed\n", d.Winner.ID))
	sb.WriteString(fmt.Sprintf("- Evidence items recorded: %d\n", d.Winner.EvidenceCount))
	if d.WinnerReport != nil {
		sb.WriteString(fmt.Sprintf("- Layer at decision: %s\n", d.WinnerReport.Layer))
		sb.WriteString(fmt.Sprintf("- R_eff = %s, weakest link: %s\n", score(d.WinnerReport.FinalScore), weakestLink(d.WinnerReport.WeakestLink)))
		sb.WriteString(fmt.Sprintf("- Bias assessment: %s\n", d.WinnerReport.Bias))
	}
	sb.WriteString("- Decision recorded, winner promoted to L3\n\n")

	sb.WriteString("## Comparison\n\n")
	w := newTable("Hypothesis", "Layer", "R_eff", "Evidence", "Outcome")
	w.AppendRow(table.Row{"**" + d.Winner.ID + "**", d.Winner.Layer, "**" + score(d.Winner.Reliability) + "**", d.Winner.EvidenceCount, "SELECTED"})
	for _, r := range d.Rejected {
		w.AppendRow(table.Row{r.ID, r.Layer, score(r.Reliability), r.EvidenceCount, "Rejected"})
	}
	alignRight(w, 3, 4)
	sb.WriteString(w.RenderMarkdown())
	sb.WriteString("\n\n")

	sb.WriteString("## Relations\n\n")
	sb.WriteString(fmt.Sprintf("- **Selects:** `%s` (%s)\n", d.Winner.ID, d.Winner.Title))
	if len(d.Rejected) == 0 {
		sb.WriteString("- **Rejects:** none\n\n")
	} else {
		sb.WriteString("- **Rejects:**\n")
		for _, r := range d.Rejected {
			sb.WriteString(fmt.Sprintf("  - `%s` (%s)\n", r.ID, r.Title))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Validity\n\n")
	if strings.TrimSpace(d.Validity) != "" {
		sb.WriteString(d.Validity + "\n")
	} else {
		sb.WriteString("Revisit when new evidence lowers the R_eff of the selected hypothesis or a rejected alternative gains stronger evidence.\n")
	}

	return sb.String()
}

func section(sb *strings.Builder, heading, body string) {
	sb.WriteString(fmt.Sprintf("## %s\n\n", heading))
	if strings.TrimSpace(body) == "" {
		sb.WriteString("_Not provided._\n\n")
		return
	}
	sb.WriteString(strings.TrimRight(body, "\n") + "\n\n")
}
