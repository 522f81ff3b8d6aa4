package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/db"
)

var generated = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleReport() *assurance.AssuranceReport {
	calc := assurance.New(nil, assurance.DefaultOptions())
	h := db.Holon{ID: "cache-1a2b3c4d", Title: "Cache layer", Kind: "system", Layer: "L2"}
	evidence := []db.Holon{
		{ID: "test-a", Type: "test", Title: "Empirical Test of Cache layer", Content: `{"verdict":"PASS","test_type":"internal"}`},
		{ID: "test-b", Type: "test", Title: "External benchmark", Content: `{"verdict":"PASS","test_type":"external"}`},
		{ID: "verify-c", Type: "verification", Title: "Verification of Cache layer", Content: "Verdict: PASS\n\nok"},
	}
	return calc.Assess(h, evidence)
}

func TestReliability(t *testing.T) {
	out := Reliability(sampleReport(), generated)

	for _, want := range []string{
		"# R_eff Calculation Report",
		"**R_eff = 0.75**",
		"Self Score (R_self): 0.95",
		"Weakest Link: External benchmark `test-b` (score: 0.75)",
		"## Evidence Breakdown",
		"External benchmark",
		"## Trust Calculus Analysis",
		"min(0.95, 0.75)",
		"**Bias Assessment:** Low",
		"## Risk Factors",
		"[WARN] **Medium Reliability:**",
		"[WARN] **Weakest Link:** External benchmark has low score (0.75)",
		"2025-03-01T12:00:00Z",
	} {
		assert.Contains(t, out, want)
	}

	sections := []string{"## Effective Reliability", "## Evidence Breakdown", "## Trust Calculus Analysis", "## Risk Factors"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestReliability_NoEvidence(t *testing.T) {
	r := assurance.New(nil, assurance.DefaultOptions()).Assess(db.Holon{ID: "h", Title: "H", Kind: "system", Layer: "L0"}, nil)
	out := Reliability(r, generated)

	assert.Contains(t, out, "**R_eff = 0.95**")
	assert.Contains(t, out, "Weakest Link: none (no evidence)")
	assert.Contains(t, out, "No evidence recorded.")
	assert.Contains(t, out, "Medium (Limited evidence)")
	assert.Contains(t, out, "[WARN] holon h is at layer L0, not L2")
}

func TestAuditTree(t *testing.T) {
	out := AuditTree(sampleReport())

	assert.Contains(t, out, "AUDIT TREE: Cache layer")
	assert.Contains(t, out, "[R:0.75] Cache layer (L2, system)")
	assert.Contains(t, out, "|-- [R:0.95] (test) Empirical Test of Cache layer")
	assert.Contains(t, out, "|-- [R:0.75] (test) External benchmark")
	assert.Contains(t, out, "`-- [R:0.90] (verification) Verification of Cache layer")
	assert.Contains(t, out, "Congruence: CL:2")
	assert.Contains(t, out, "|-- Type: verification")
	assert.Contains(t, out, "Weakest Link: External benchmark (0.75), R_eff = 0.75")
}

func TestDecisionBody(t *testing.T) {
	d := DecisionRecord{
		ID:           "dec-0badcafe",
		Title:        "Adopt cache",
		Date:         generated,
		Winner:       Candidate{ID: "h1", Title: "Cache layer", Layer: "L2", Reliability: 0.75, EvidenceCount: 3},
		Rejected:     []Candidate{{ID: "h2", Title: "No cache", Layer: "L1", Reliability: 0.95}},
		Context:      "Latency is too high",
		Decision:     "Use a read-through cache",
		Rationale:    "Best evidence",
		Consequences: "Invalidation work",
		WinnerReport: sampleReport(),
	}
	out := DecisionBody(d)

	sections := []string{"## Context", "## Decision", "## Rationale", "## Consequences", "## Audit Trail", "## Comparison", "## Relations", "## Validity"}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}

	assert.Contains(t, out, "**Decision ID:** `dec-0badcafe`")
	assert.Contains(t, out, "**Date:** 2025-03-01")
	assert.Contains(t, out, "**Winner:** `h1` (R_eff: 0.75)")
	assert.Contains(t, out, "SELECTED")
	assert.Contains(t, out, "Rejected")
	assert.Contains(t, out, "- **Selects:** `h1` (Cache layer)")
	assert.Contains(t, out, "  - `h2` (No cache)")
	assert.Contains(t, out, "Latency is too high")
}

func TestDecisionBody_EmptySections(t *testing.T) {
	out := DecisionBody(DecisionRecord{ID: "dec-1", Title: "T", Winner: Candidate{ID: "h1"}})
	assert.Contains(t, out, "_Not provided._")
	assert.Contains(t, out, "- **Rejects:** none")
	assert.Contains(t, out, "Revisit when new evidence")
}

func TestTransition(t *testing.T) {
	out := Transition(TransitionSummary{
		Kind:          "Test",
		HypothesisID:  "h1",
		Title:         "Cache layer",
		EvidenceID:    "test-h1-0badcafe",
		Verdict:       "PASS",
		TestType:      "internal",
		PreviousLayer: "L1",
		NewLayer:      "L2",
		Status:        "promoted",
		Warnings:      []string{"something odd"},
	})

	assert.Contains(t, out, "[OK] Test recorded for: h1")
	assert.Contains(t, out, "Test Type: internal")
	assert.Contains(t, out, "Previous Layer: L1")
	assert.Contains(t, out, "New Layer: L2 (promoted)")
	assert.Contains(t, out, "Test ID: test-h1-0badcafe")
	assert.Contains(t, out, "Warning: something odd")
}

func TestStatus(t *testing.T) {
	out := Status(
		[]db.CountHolonsByLayerRow{{Layer: "L0", Count: 2}, {Layer: "L3", Count: 1}},
		[]db.Holon{{ID: "h1", Title: "Cache layer", Kind: "system", Layer: "L3"}},
	)
	assert.Contains(t, out, "Cache layer")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, strings.ToLower(out), "total")

	assert.Contains(t, Status(nil, nil), "No hypotheses recorded.")
}

func TestHolon(t *testing.T) {
	r := sampleReport()
	out := Holon(
		db.Holon{ID: "h1", Type: "hypothesis", Kind: "system", Layer: "L2", Title: "Cache layer", Content: "Add a cache", ContextID: "default"},
		r.Evidence,
		[]db.Relation{{SourceID: "dec-1", TargetID: "h1", RelationType: "selects", CongruenceLevel: 3}},
		[]db.AuditLog{{ToolName: "quint_test", Actor: "Inductor", Result: "SUCCESS", Details: "L1 -> L2"}},
	)
	assert.Contains(t, out, "# Cache layer")
	assert.Contains(t, out, "Add a cache")
	assert.Contains(t, out, "## Evidence")
	assert.Contains(t, out, "dec-1 --selects--> h1 (CL:3)")
	assert.Contains(t, out, "Inductor")
}
