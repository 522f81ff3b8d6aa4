package assurance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m0n0x41d/quint-audit/db"
)

// Bias is the qualitative bias assessment of a hypothesis.
type Bias string

const (
	BiasLow             Bias = "Low"
	BiasLimitedEvidence Bias = "Medium (Limited evidence)"
)

// Options are the constants of the reliability calculus.
type Options struct {
	SelfReliability       float64
	BiasEvidenceThreshold int
	HighReliability       float64
	MediumReliability     float64
	WeakLinkThreshold     float64
}

func DefaultOptions() Options {
	return Options{
		SelfReliability:       0.95,
		BiasEvidenceThreshold: 2,
		HighReliability:       0.90,
		MediumReliability:     0.75,
		WeakLinkThreshold:     0.80,
	}
}

// Score is the reliability contribution of one piece of evidence.
func Score(c Content) float64 {
	switch e := c.(type) {
	case StructuredEvidence:
		switch e.Verdict {
		case VerdictPass:
			if e.TestType == TestInternal {
				return 0.95
			}
			return 0.75
		case VerdictFail:
			return 0.30
		default:
			return 0.50
		}
	case FreeTextEvidence:
		pass := e.Verdict == VerdictPass
		if e.Verdict == "" {
			pass = strings.Contains(e.Text, "PASS")
		}
		if pass {
			return 0.90
		}
		return 0.60
	}
	return 0.50
}

// Congruence is the congruence level shown next to a score: 2 for evidence
// that passed outside the system's own context, 3 otherwise.
func Congruence(c Content) int {
	if e, ok := c.(StructuredEvidence); ok && e.Verdict == VerdictPass && e.TestType != TestInternal {
		return 2
	}
	return 3
}

// ScoredEvidence is an evidence holon with its decoded content and score.
type ScoredEvidence struct {
	ID         string
	Type       string
	Title      string
	Layer      string
	CreatedAt  time.Time
	Content    Content
	Score      float64
	Congruence int
}

// Verdict returns the verdict for display. Free text without a recorded
// verdict reports UNKNOWN.
func (e ScoredEvidence) Verdict() Verdict {
	switch c := e.Content.(type) {
	case StructuredEvidence:
		return c.Verdict
	case FreeTextEvidence:
		if c.Verdict != "" {
			return c.Verdict
		}
	}
	return VerdictUnknown
}

// TestType returns the test type for display; free text reports as
// verification.
func (e ScoredEvidence) TestType() string {
	if se, ok := e.Content.(StructuredEvidence); ok {
		return string(se.TestType)
	}
	return TypeVerification
}

// ScoreHolon decodes and scores one evidence holon.
func ScoreHolon(h db.Holon) ScoredEvidence {
	c := DecodeContent(h.Type, h.Content)
	return ScoredEvidence{
		ID:         h.ID,
		Type:       h.Type,
		Title:      h.Title,
		Layer:      h.Layer,
		CreatedAt:  h.CreatedAt,
		Content:    c,
		Score:      Score(c),
		Congruence: Congruence(c),
	}
}

// WeakestLink identifies the evidence that bounds R_eff.
type WeakestLink struct {
	ID    string
	Title string
	Score float64
}

// Aggregate applies the weakest-link rule: R_eff = min(self, min(scores)).
// evidence must be in creation order; the earliest item holding the minimum
// is the weakest link. With no evidence R_eff is self and there is no
// weakest link.
func Aggregate(self float64, evidence []ScoredEvidence) (float64, *WeakestLink) {
	if len(evidence) == 0 {
		return self, nil
	}

	weakest := evidence[0]
	for _, e := range evidence[1:] {
		if e.Score < weakest.Score {
			weakest = e
		}
	}

	rEff := self
	if weakest.Score < rEff {
		rEff = weakest.Score
	}
	return rEff, &WeakestLink{ID: weakest.ID, Title: weakest.Title, Score: weakest.Score}
}

// AssuranceReport is the outcome of CalculateReliability.
type AssuranceReport struct {
	HolonID     string
	Title       string
	Layer       string
	Kind        string
	FinalScore  float64
	SelfScore   float64
	WeakestLink *WeakestLink
	Evidence    []ScoredEvidence
	Bias        Bias
	Factors     []Factor
	Warnings    []string
}

// FactorLevel grades one risk factor.
type FactorLevel string

const (
	FactorOK   FactorLevel = "OK"
	FactorWarn FactorLevel = "WARN"
	FactorFail FactorLevel = "FAIL"
)

type Factor struct {
	Level   FactorLevel
	Label   string
	Message string
}

func (f Factor) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Level, f.Label, f.Message)
}

// EvidenceSource is what the calculator reads from the store.
type EvidenceSource interface {
	GetHolon(ctx context.Context, id string) (db.Holon, error)
	GetEvidence(ctx context.Context, hypothesisID string) ([]db.Holon, error)
}

type Calculator struct {
	Store EvidenceSource
	Opts  Options
}

func New(store EvidenceSource, opts Options) *Calculator {
	return &Calculator{Store: store, Opts: opts}
}

// CalculateReliability loads holonID and its evidence and assesses it.
// A missing holon is reported as not found.
func (c *Calculator) CalculateReliability(ctx context.Context, holonID string) (*AssuranceReport, error) {
	h, err := c.Store.GetHolon(ctx, holonID)
	if err != nil {
		return nil, err
	}

	evidence, err := c.Store.GetEvidence(ctx, holonID)
	if err != nil {
		return nil, err
	}

	return c.Assess(h, evidence), nil
}

// Assess computes the report for h from evidence already loaded in
// creation order.
func (c *Calculator) Assess(h db.Holon, evidence []db.Holon) *AssuranceReport {
	report := &AssuranceReport{
		HolonID:   h.ID,
		Title:     h.Title,
		Layer:     h.Layer,
		Kind:      h.Kind,
		SelfScore: c.Opts.SelfReliability,
	}

	for _, e := range evidence {
		report.Evidence = append(report.Evidence, ScoreHolon(e))
	}

	report.FinalScore, report.WeakestLink = Aggregate(c.Opts.SelfReliability, report.Evidence)

	report.Bias = BiasLow
	if h.Kind == "system" && len(report.Evidence) < c.Opts.BiasEvidenceThreshold {
		report.Bias = BiasLimitedEvidence
	}

	if h.Layer != "L2" {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("holon %s is at layer %s, not L2", h.ID, h.Layer))
	}

	report.Factors = c.riskFactors(report)
	return report
}

func (c *Calculator) riskFactors(r *AssuranceReport) []Factor {
	var factors []Factor
	switch {
	case r.FinalScore >= c.Opts.HighReliability:
		factors = append(factors, Factor{FactorOK, "High Reliability", "Strong evidence base"})
	case r.FinalScore >= c.Opts.MediumReliability:
		factors = append(factors, Factor{FactorWarn, "Medium Reliability", "Moderate evidence, consider additional validation"})
	default:
		factors = append(factors, Factor{FactorFail, "Low Reliability", "Weak evidence base, high risk"})
	}

	if r.WeakestLink != nil && r.WeakestLink.Score < c.Opts.WeakLinkThreshold {
		factors = append(factors, Factor{FactorWarn, "Weakest Link",
			fmt.Sprintf("%s has low score (%.2f)", r.WeakestLink.Title, r.WeakestLink.Score)})
	}
	return factors
}
