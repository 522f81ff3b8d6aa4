package report

import (
	"fmt"
	"strings"

	"github.com/m0n0x41d/quint-audit/assurance"
)

const rule = "================================================================================"

// AuditTree renders a hypothesis and its evidence as an ASCII tree.
func AuditTree(r *assurance.AssuranceReport) string {
	var sb strings.Builder

	sb.WriteString(rule + "\n")
	sb.WriteString(fmt.Sprintf("AUDIT TREE: %s\n", r.Title))
	sb.WriteString(rule + "\n\n")

	sb.WriteString(fmt.Sprintf("[R:%s] %s (%s, %s)\n", score(r.FinalScore), r.Title, r.Layer, r.Kind))

	for i, e := range r.Evidence {
		last := i == len(r.Evidence)-1
		branch, stem := "|--", "|"
		if last {
			branch, stem = "`--", " "
		}
		sb.WriteString("|\n")
		sb.WriteString(fmt.Sprintf("%s [R:%s] (%s) %s\n", branch, score(e.Score), e.Type, e.Title))
		sb.WriteString(fmt.Sprintf("%s    |-- Verdict: %s\n", stem, e.Verdict()))
		sb.WriteString(fmt.Sprintf("%s    |-- Type: %s\n", stem, e.TestType()))
		sb.WriteString(fmt.Sprintf("%s    `-- Congruence: CL:%d\n", stem, e.Congruence))
	}

	sb.WriteString("\n" + rule + "\n")
	if r.WeakestLink != nil {
		sb.WriteString(fmt.Sprintf("Weakest Link: %s (%s), R_eff = %s\n", r.WeakestLink.Title, score(r.WeakestLink.Score), score(r.FinalScore)))
	} else {
		sb.WriteString(fmt.Sprintf("No evidence: R_eff = R_self = %s\n", score(r.FinalScore)))
	}
	sb.WriteString(rule + "\n")

	return sb.String()
}
