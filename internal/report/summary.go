package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/db"
)

// TransitionSummary describes one verify or test operation.
type TransitionSummary struct {
	Kind          string // "Verification" or "Test"
	HypothesisID  string
	Title         string
	EvidenceID    string
	Verdict       string
	TestType      string
	PreviousLayer string
	NewLayer      string
	Status        string
	Warnings      []string
}

func Transition(s TransitionSummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[OK] %s recorded for: %s\n", s.Kind, s.HypothesisID))
	sb.WriteString(fmt.Sprintf("  Title: %s\n", s.Title))
	if s.TestType != "" {
		sb.WriteString(fmt.Sprintf("  Test Type: %s\n", s.TestType))
	}
	sb.WriteString(fmt.Sprintf("  Verdict: %s\n", s.Verdict))
	sb.WriteString(fmt.Sprintf("  Previous Layer: %s\n", s.PreviousLayer))
	sb.WriteString(fmt.Sprintf("  New Layer: %s (%s)\n", s.NewLayer, s.Status))
	sb.WriteString(fmt.Sprintf("  %s ID: %s\n", s.Kind, s.EvidenceID))
	writeWarnings(&sb, s.Warnings)
	return sb.String()
}

func Proposal(h db.Holon) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Hypothesis created: %s\n", h.ID))
	sb.WriteString(fmt.Sprintf("  Title: %s\n", h.Title))
	sb.WriteString(fmt.Sprintf("  Kind: %s\n", h.Kind))
	if h.Scope != "" {
		sb.WriteString(fmt.Sprintf("  Scope: %s\n", h.Scope))
	}
	sb.WriteString(fmt.Sprintf("  Layer: %s\n", h.Layer))
	return sb.String()
}

type AuditSummary struct {
	HypothesisID string
	Title        string
	AuditID      string
	Layer        string
	Risks        string
	Warnings     []string
}

func Audit(s AuditSummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[OK] Audit recorded for: %s\n", s.HypothesisID))
	sb.WriteString(fmt.Sprintf("  Title: %s\n", s.Title))
	sb.WriteString(fmt.Sprintf("  Layer: %s\n", s.Layer))
	sb.WriteString(fmt.Sprintf("  Audit ID: %s\n", s.AuditID))
	sb.WriteString(fmt.Sprintf("  Risks: %s\n", s.Risks))
	writeWarnings(&sb, s.Warnings)
	return sb.String()
}

type DecisionSummary struct {
	DecisionID string
	Title      string
	Winner     Candidate
	Rejected   []string
	Skipped    []string
	Path       string
}

func Decision(s DecisionSummary) string {
	var sb strings.Builder
	sb.WriteString("DECISION RECORDED\n")
	sb.WriteString(fmt.Sprintf("  Decision ID: %s\n", s.DecisionID))
	sb.WriteString(fmt.Sprintf("  Title: %s\n", s.Title))
	sb.WriteString(fmt.Sprintf("  Winner: %s (%s), R_eff %s, now L3\n", s.Winner.ID, s.Winner.Title, score(s.Winner.Reliability)))
	if len(s.Rejected) > 0 {
		sb.WriteString(fmt.Sprintf("  Rejected: %s\n", strings.Join(s.Rejected, ", ")))
	}
	if len(s.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("  Skipped: %s\n", strings.Join(s.Skipped, ", ")))
	}
	sb.WriteString(fmt.Sprintf("  DRR: %s\n", s.Path))
	return sb.String()
}

func writeWarnings(sb *strings.Builder, warnings []string) {
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("  Warning: %s\n", w))
	}
}

// Holon renders one holon with its evidence, relations and audit history.
func Holon(h db.Holon, evidence []assurance.ScoredEvidence, relations []db.Relation, history []db.AuditLog) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", h.Title))
	sb.WriteString(fmt.Sprintf("- ID: %s\n", h.ID))
	sb.WriteString(fmt.Sprintf("- Type: %s\n", h.Type))
	if h.Kind != "" {
		sb.WriteString(fmt.Sprintf("- Kind: %s\n", h.Kind))
	}
	sb.WriteString(fmt.Sprintf("- Layer: %s\n", h.Layer))
	sb.WriteString(fmt.Sprintf("- Context: %s\n", h.ContextID))
	if h.Scope != "" {
		sb.WriteString(fmt.Sprintf("- Scope: %s\n", h.Scope))
	}
	sb.WriteString(fmt.Sprintf("- Created: %s\n", h.CreatedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- Updated: %s\n\n", h.UpdatedAt.Format(time.RFC3339)))

	sb.WriteString("## Content\n\n")
	sb.WriteString(strings.TrimRight(h.Content, "\n") + "\n")

	if len(evidence) > 0 {
		sb.WriteString("\n## Evidence\n\n")
		w := newTable("ID", "Type", "Verdict", "Score", "Created")
		for _, e := range evidence {
			w.AppendRow(table.Row{e.ID, e.Type, string(e.Verdict()), score(e.Score), e.CreatedAt.Format(time.RFC3339)})
		}
		alignRight(w, 4)
		sb.WriteString(w.RenderMarkdown() + "\n")
	}

	if len(relations) > 0 {
		sb.WriteString("\n## Relations\n\n")
		for _, r := range relations {
			sb.WriteString(fmt.Sprintf("- %s --%s--> %s (CL:%d)\n", r.SourceID, r.RelationType, r.TargetID, r.CongruenceLevel))
		}
	}

	if len(history) > 0 {
		sb.WriteString("\n## History\n\n")
		w := newTable("Time", "Tool", "Actor", "Result", "Details")
		for _, a := range history {
			w.AppendRow(table.Row{a.Timestamp.Format(time.RFC3339), a.ToolName, a.Actor, a.Result, a.Details})
		}
		sb.WriteString(w.RenderMarkdown() + "\n")
	}

	return sb.String()
}

// Status renders the layer counts and the list of hypotheses as terminal
// tables.
func Status(counts []db.CountHolonsByLayerRow, hypotheses []db.Holon) string {
	var sb strings.Builder

	byLayer := make(map[string]int64, len(counts))
	var total int64
	for _, c := range counts {
		byLayer[c.Layer] = c.Count
		total += c.Count
	}

	w := newTable("Layer", "Hypotheses")
	w.SetStyle(table.StyleLight)
	for _, layer := range []string{"L0", "L1", "L2", "L3", "invalid"} {
		w.AppendRow(table.Row{layer, byLayer[layer]})
	}
	w.AppendFooter(table.Row{"Total", total})
	sb.WriteString(w.Render() + "\n")

	if len(hypotheses) == 0 {
		sb.WriteString("\nNo hypotheses recorded.\n")
		return sb.String()
	}

	sb.WriteString("\n")
	h := newTable("ID", "Title", "Kind", "Layer")
	h.SetStyle(table.StyleLight)
	for _, hyp := range hypotheses {
		h.AppendRow(table.Row{hyp.ID, hyp.Title, hyp.Kind, hyp.Layer})
	}
	sb.WriteString(h.Render() + "\n")
	return sb.String()
}
