package fpf

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/db"
	"github.com/m0n0x41d/quint-audit/errors"
	"github.com/m0n0x41d/quint-audit/internal/report"
)

var slugifyRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

const (
	holonTypeHypothesis = "hypothesis"
	holonTypeDecision   = "decision"

	defaultContext = "default"

	relationSelects = "selects"
	relationRejects = "rejects"

	// decisionCongruence is the congruence level of decision relations.
	decisionCongruence = 3
)

// Tools runs quint operations against one store. Every mutating operation
// validates, reads and writes inside a single transaction.
type Tools struct {
	RootDir      string
	DB           *db.Store
	DecisionsDir string
	Assurance    assurance.Options
	Log          *zap.SugaredLogger

	// Now and NewSuffix are replaced in tests for stable ids and dates.
	Now       func() time.Time
	NewSuffix func() string
}

type Option func(*Tools)

func WithAssurance(opts assurance.Options) Option {
	return func(t *Tools) { t.Assurance = opts }
}

func WithDecisionsDir(dir string) Option {
	return func(t *Tools) { t.DecisionsDir = dir }
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(t *Tools) { t.Log = log }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tools) { t.Now = now }
}

// WithIDSource sets the generator of the 8 character id suffixes.
func WithIDSource(next func() string) Option {
	return func(t *Tools) { t.NewSuffix = next }
}

func NewTools(rootDir string, database *db.Store, opts ...Option) *Tools {
	t := &Tools{
		RootDir:      rootDir,
		DB:           database,
		DecisionsDir: filepath.Join(rootDir, ".quint", "decisions"),
		Assurance:    assurance.DefaultOptions(),
		Log:          zap.NewNop().Sugar(),
		Now:          time.Now,
		NewSuffix:    func() string { return uuid.New().String()[:8] },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tools) GetFPFDir() string {
	return filepath.Join(t.RootDir, ".quint")
}

func (t *Tools) now() time.Time {
	return t.Now().UTC()
}

// AuditLog records an audit entry. The actor is derived from the tool name
// using GetRoleForTool. Read-only tools are not logged. A failed insert is
// logged and otherwise ignored.
func (t *Tools) AuditLog(ctx context.Context, toolName, operation, targetID, result string, input interface{}, details string) {
	if !IsMutating(toolName) {
		return
	}

	var inputHash string
	if input != nil {
		data, err := json.Marshal(input)
		if err == nil {
			hash := sha256.Sum256(data)
			inputHash = hex.EncodeToString(hash[:8])
		}
	}

	entry := db.AuditLog{
		ID:        uuid.New().String(),
		Timestamp: t.now(),
		ToolName:  toolName,
		Operation: operation,
		Actor:     string(GetRoleForTool(toolName)),
		TargetID:  targetID,
		InputHash: inputHash,
		Result:    result,
		Details:   details,
		ContextID: defaultContext,
	}
	if err := t.DB.InsertAuditLog(ctx, entry); err != nil {
		t.Log.Warnw("Failed to insert audit log", "tool", toolName, "target", targetID, "error", err)
	}
}

func (t *Tools) auditResult(ctx context.Context, toolName, operation, targetID string, input interface{}, err error, details string) {
	if err != nil {
		t.AuditLog(ctx, toolName, operation, targetID, "ERROR", input, err.Error())
		return
	}
	t.AuditLog(ctx, toolName, operation, targetID, "SUCCESS", input, details)
}

func (t *Tools) Slugify(title string) string {
	slug := slugifyRegex.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// InitProject creates the .quint directory layout. The database schema is
// created when the store is opened.
func (t *Tools) InitProject(ctx context.Context) error {
	dirs := []string{
		t.GetFPFDir(),
		t.DecisionsDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			err = errors.Wrapf(err, "create %s", d)
			t.AuditLog(ctx, "quint_init", "init_project", "", "ERROR", nil, err.Error())
			return err
		}
	}

	t.Log.Infow("Project initialized", "root", t.RootDir)
	t.AuditLog(ctx, "quint_init", "init_project", "", "SUCCESS", nil, t.GetFPFDir())
	return nil
}

// requireHypothesis fetches id and checks it is a hypothesis. Any other
// holon type is reported as a missing hypothesis.
func requireHypothesis(ctx context.Context, s db.Session, id string) (db.Holon, error) {
	h, err := s.GetHolon(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return db.Holon{}, errors.WithHint(err, "List hypotheses with `quint status`")
		}
		return db.Holon{}, err
	}
	if h.Type != holonTypeHypothesis {
		return db.Holon{}, errors.WithHint(
			errors.Wrapf(errors.ErrNotFound, "hypothesis %q (holon is a %s)", id, h.Type),
			"List hypotheses with `quint status`")
	}
	return h, nil
}

type ProposeInput struct {
	Title   string
	Content string
	Scope   string
	Kind    string
}

// ProposeHypothesis stores a new hypothesis at L0.
func (t *Tools) ProposeHypothesis(ctx context.Context, in ProposeInput) (db.Holon, error) {
	in.Kind = strings.ToLower(strings.TrimSpace(in.Kind))
	if err := t.CheckPreconditions("quint_propose", map[string]string{
		"title": in.Title,
		"kind":  in.Kind,
	}); err != nil {
		return db.Holon{}, err
	}

	slug := t.Slugify(in.Title)
	if slug == "" {
		slug = holonTypeHypothesis
	}
	now := t.now()
	h := db.Holon{
		ID:        slug + "-" + t.NewSuffix(),
		Type:      holonTypeHypothesis,
		Kind:      in.Kind,
		Layer:     string(LayerL0),
		Title:     in.Title,
		Content:   in.Content,
		ContextID: defaultContext,
		Scope:     in.Scope,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := t.DB.CreateHolon(ctx, h)
	t.auditResult(ctx, "quint_propose", "propose_hypothesis", h.ID,
		map[string]string{"title": in.Title, "kind": in.Kind, "scope": in.Scope}, err, "L0")
	if err != nil {
		return db.Holon{}, err
	}

	t.Log.Infow("Hypothesis proposed", "id", h.ID, "kind", h.Kind)
	return h, nil
}

// TransitionResult is the outcome of a verify or test operation.
type TransitionResult struct {
	Hypothesis db.Holon
	Evidence   db.Holon
	Transition Transition
	TestType   assurance.TestType
}

func (r *TransitionResult) Summary() report.TransitionSummary {
	s := report.TransitionSummary{
		Kind:          "Verification",
		HypothesisID:  r.Hypothesis.ID,
		Title:         r.Hypothesis.Title,
		EvidenceID:    r.Evidence.ID,
		Verdict:       string(r.Transition.Verdict),
		PreviousLayer: string(r.Transition.From),
		NewLayer:      string(r.Transition.To),
		Status:        r.Transition.Status,
	}
	if r.Transition.Action == ActionTest {
		s.Kind = "Test"
		s.TestType = string(r.TestType)
	}
	if r.Transition.Warning != "" {
		s.Warnings = append(s.Warnings, r.Transition.Warning)
	}
	return s
}

// evidenceBuilder fills in the evidence holon once the hypothesis and the
// transition are known.
type evidenceBuilder func(hyp db.Holon, tr Transition, now time.Time) (db.Holon, error)

// recordTransition applies action to the hypothesis and appends the
// evidence built by build, all in one transaction.
func (t *Tools) recordTransition(ctx context.Context, id string, action Action, verdict assurance.Verdict, build evidenceBuilder) (*TransitionResult, error) {
	var res TransitionResult

	err := t.DB.WithTx(ctx, func(tx *db.Tx) error {
		hyp, err := requireHypothesis(ctx, tx, id)
		if err != nil {
			return err
		}

		tr, err := Next(Layer(hyp.Layer), action, verdict)
		if err != nil {
			return err
		}

		now := t.now()
		evidence, err := build(hyp, tr, now)
		if err != nil {
			return err
		}

		if err := tx.UpdateHolonLayer(ctx, hyp.ID, string(tr.To), now); err != nil {
			return err
		}
		if err := tx.CreateHolon(ctx, evidence); err != nil {
			return err
		}

		hyp.Layer = string(tr.To)
		hyp.UpdatedAt = now
		res = TransitionResult{Hypothesis: hyp, Evidence: evidence, Transition: tr}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Transition.Warning != "" {
		t.Log.Warnw(res.Transition.Warning, "id", id, "action", action)
	}
	t.Log.Infow("Hypothesis transition recorded",
		"id", id,
		"action", action,
		"verdict", verdict,
		"from", res.Transition.From,
		"to", res.Transition.To)
	return &res, nil
}

// VerifyHypothesis records a logical verification of an L0 hypothesis.
func (t *Tools) VerifyHypothesis(ctx context.Context, hypothesisID, checks, verdict string) (*TransitionResult, error) {
	input := map[string]string{"hypothesis_id": hypothesisID, "verdict": verdict}
	if err := t.CheckPreconditions("quint_verify", input); err != nil {
		t.auditResult(ctx, "quint_verify", "verify_hypothesis", hypothesisID, input, err, "")
		return nil, err
	}
	v, _ := assurance.ParseVerdict(verdict)

	res, err := t.recordTransition(ctx, hypothesisID, ActionVerify, v,
		func(hyp db.Holon, tr Transition, now time.Time) (db.Holon, error) {
			return db.Holon{
				ID:        fmt.Sprintf("verify-%s-%s", hyp.ID, t.NewSuffix()),
				Type:      assurance.TypeVerification,
				Kind:      "episteme",
				Layer:     string(tr.To),
				Title:     "Verification of " + hyp.Title,
				Content:   assurance.EncodeVerification(v, checks),
				ContextID: hyp.ID,
				Scope:     "Logical verification checks",
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		})

	details := ""
	if res != nil {
		details = fmt.Sprintf("%s -> %s", res.Transition.From, res.Transition.To)
	}
	t.auditResult(ctx, "quint_verify", "verify_hypothesis", hypothesisID, input, err, details)
	return res, err
}

// TestHypothesis records an empirical test of an L1 or L2 hypothesis.
func (t *Tools) TestHypothesis(ctx context.Context, hypothesisID, testType, result, verdict string) (*TransitionResult, error) {
	input := map[string]string{"hypothesis_id": hypothesisID, "test_type": testType, "verdict": verdict}
	if err := t.CheckPreconditions("quint_test", input); err != nil {
		t.auditResult(ctx, "quint_test", "test_hypothesis", hypothesisID, input, err, "")
		return nil, err
	}
	v, _ := assurance.ParseVerdict(verdict)
	tt, _ := assurance.ParseTestType(testType)

	res, err := t.recordTransition(ctx, hypothesisID, ActionTest, v,
		func(hyp db.Holon, tr Transition, now time.Time) (db.Holon, error) {
			content, err := assurance.EncodeTest(v, tt, result, now)
			if err != nil {
				return db.Holon{}, err
			}
			return db.Holon{
				ID:        fmt.Sprintf("test-%s-%s", hyp.ID, t.NewSuffix()),
				Type:      assurance.TypeTest,
				Kind:      "episteme",
				Layer:     string(tr.To),
				Title:     "Empirical Test of " + hyp.Title,
				Content:   content,
				ContextID: hyp.ID,
				Scope:     fmt.Sprintf("%s validation test", tt),
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		})

	details := ""
	if res != nil {
		res.TestType = tt
		details = fmt.Sprintf("%s -> %s", res.Transition.From, res.Transition.To)
	}
	t.auditResult(ctx, "quint_test", "test_hypothesis", hypothesisID, input, err, details)
	return res, err
}

// AuditResult is the outcome of an audit operation.
type AuditResult struct {
	Hypothesis db.Holon
	Audit      db.Holon
	Risks      string
	Warning    string
}

func (r *AuditResult) Summary() report.AuditSummary {
	s := report.AuditSummary{
		HypothesisID: r.Hypothesis.ID,
		Title:        r.Hypothesis.Title,
		AuditID:      r.Audit.ID,
		Layer:        r.Hypothesis.Layer,
		Risks:        r.Risks,
	}
	if r.Warning != "" {
		s.Warnings = []string{r.Warning}
	}
	return s
}

// AuditHypothesis records a risk and bias audit. The hypothesis layer is
// never changed; auditing anything but L2 only produces a warning.
func (t *Tools) AuditHypothesis(ctx context.Context, hypothesisID, risks string) (*AuditResult, error) {
	input := map[string]string{"hypothesis_id": hypothesisID, "risks": risks}
	if err := t.CheckPreconditions("quint_audit", input); err != nil {
		t.auditResult(ctx, "quint_audit", "audit_hypothesis", hypothesisID, input, err, "")
		return nil, err
	}

	var res AuditResult
	err := t.DB.WithTx(ctx, func(tx *db.Tx) error {
		hyp, err := requireHypothesis(ctx, tx, hypothesisID)
		if err != nil {
			return err
		}

		now := t.now()
		content, err := assurance.EncodeAudit(risks, hyp.Layer, now)
		if err != nil {
			return err
		}
		audit := db.Holon{
			ID:        fmt.Sprintf("audit-%s-%s", hyp.ID, t.NewSuffix()),
			Type:      assurance.TypeAudit,
			Kind:      "episteme",
			Layer:     hyp.Layer,
			Title:     "Audit of " + hyp.Title,
			Content:   content,
			ContextID: hyp.ID,
			Scope:     "Risk assessment and bias check",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.CreateHolon(ctx, audit); err != nil {
			return err
		}

		res = AuditResult{Hypothesis: hyp, Audit: audit, Risks: risks}
		if hyp.Layer != string(LayerL2) {
			res.Warning = fmt.Sprintf("hypothesis is at layer %s; audits are meant for L2 hypotheses", hyp.Layer)
		}
		return nil
	})

	t.auditResult(ctx, "quint_audit", "audit_hypothesis", hypothesisID, input, err, res.Warning)
	if err != nil {
		return nil, err
	}
	if res.Warning != "" {
		t.Log.Warnw(res.Warning, "id", hypothesisID)
	}
	t.Log.Infow("Audit recorded", "id", hypothesisID, "audit", res.Audit.ID)
	return &res, nil
}

type DecisionInput struct {
	Title        string
	WinnerID     string
	RejectedIDs  []string
	Context      string
	Decision     string
	Rationale    string
	Consequences string
	Validity     string
	Scope        string
}

// DecisionResult is the outcome of FinalizeDecision.
type DecisionResult struct {
	Decision  db.Holon
	Winner    db.Holon
	Rejected  []db.Holon
	Skipped   []string
	Relations []db.Relation
	Record    report.DecisionRecord
	Path      string
}

func (r *DecisionResult) Summary() report.DecisionSummary {
	s := report.DecisionSummary{
		DecisionID: r.Decision.ID,
		Title:      r.Decision.Title,
		Winner:     r.Record.Winner,
		Skipped:    r.Skipped,
		Path:       r.Path,
	}
	for _, h := range r.Rejected {
		s.Rejected = append(s.Rejected, h.ID)
	}
	return s
}

// rejectedCandidates drops empty ids, duplicates and the winner. The
// non-empty ids that were dropped are returned as skipped.
func rejectedCandidates(winnerID string, ids []string) (keep, skipped []string) {
	seen := map[string]bool{winnerID: true}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if seen[id] {
			skipped = append(skipped, id)
			continue
		}
		seen[id] = true
		keep = append(keep, id)
	}
	return keep, skipped
}

func candidate(r *assurance.AssuranceReport) report.Candidate {
	return report.Candidate{
		ID:            r.HolonID,
		Title:         r.Title,
		Layer:         r.Layer,
		Reliability:   r.FinalScore,
		EvidenceCount: len(r.Evidence),
	}
}

// FinalizeDecision records the decision holon and its relations and
// promotes the winner to L3 in one transaction, then writes the DRR file.
func (t *Tools) FinalizeDecision(ctx context.Context, in DecisionInput) (*DecisionResult, error) {
	input := map[string]string{"winner_id": in.WinnerID, "title": in.Title}
	if err := t.CheckPreconditions("quint_decide", input); err != nil {
		t.auditResult(ctx, "quint_decide", "finalize_decision", in.WinnerID, input, err, "")
		return nil, err
	}

	rejectedIDs, skipped := rejectedCandidates(in.WinnerID, in.RejectedIDs)
	for _, id := range skipped {
		t.Log.Warnw("Skipping rejected id", "id", id, "winner", in.WinnerID)
	}

	var res DecisionResult
	err := t.DB.WithTx(ctx, func(tx *db.Tx) error {
		winner, err := requireHypothesis(ctx, tx, in.WinnerID)
		if err != nil {
			return err
		}
		tr, err := Next(Layer(winner.Layer), ActionDecide, "")
		if err != nil {
			return err
		}

		var rejected []db.Holon
		for _, id := range rejectedIDs {
			h, err := requireHypothesis(ctx, tx, id)
			if err != nil {
				return err
			}
			rejected = append(rejected, h)
		}

		calc := assurance.New(tx, t.Assurance)
		winnerReport, err := calc.CalculateReliability(ctx, winner.ID)
		if err != nil {
			return err
		}
		var rejectedCands []report.Candidate
		for _, h := range rejected {
			r, err := calc.CalculateReliability(ctx, h.ID)
			if err != nil {
				return err
			}
			rejectedCands = append(rejectedCands, candidate(r))
		}

		now := t.now()
		record := report.DecisionRecord{
			ID:           "dec-" + t.NewSuffix(),
			Title:        in.Title,
			Date:         now,
			Winner:       candidate(winnerReport),
			Rejected:     rejectedCands,
			Context:      in.Context,
			Decision:     in.Decision,
			Rationale:    in.Rationale,
			Consequences: in.Consequences,
			Validity:     in.Validity,
			WinnerReport: winnerReport,
		}

		decision := db.Holon{
			ID:        record.ID,
			Type:      holonTypeDecision,
			Kind:      "episteme",
			Layer:     string(LayerL3),
			Title:     in.Title,
			Content:   report.DecisionBody(record),
			ContextID: defaultContext,
			Scope:     in.Scope,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.CreateHolon(ctx, decision); err != nil {
			return err
		}

		relations := []db.Relation{{
			SourceID:        decision.ID,
			TargetID:        winner.ID,
			RelationType:    relationSelects,
			CongruenceLevel: decisionCongruence,
			CreatedAt:       now,
		}}
		for _, h := range rejected {
			relations = append(relations, db.Relation{
				SourceID:        decision.ID,
				TargetID:        h.ID,
				RelationType:    relationRejects,
				CongruenceLevel: decisionCongruence,
				CreatedAt:       now,
			})
		}
		for _, r := range relations {
			if err := tx.CreateRelation(ctx, r); err != nil {
				return err
			}
		}

		if err := tx.UpdateHolonLayer(ctx, winner.ID, string(tr.To), now); err != nil {
			return err
		}
		winner.Layer = string(tr.To)
		winner.UpdatedAt = now

		res = DecisionResult{
			Decision:  decision,
			Winner:    winner,
			Rejected:  rejected,
			Skipped:   skipped,
			Relations: relations,
			Record:    record,
		}
		return nil
	})
	if err != nil {
		t.auditResult(ctx, "quint_decide", "finalize_decision", in.WinnerID, input, err, "")
		return nil, err
	}

	res.Path = t.decisionPath(res.Decision)
	t.auditResult(ctx, "quint_decide", "finalize_decision", in.WinnerID, input, nil,
		fmt.Sprintf("%s selects %s", res.Decision.ID, res.Winner.ID))

	fields := map[string]string{
		"id":     res.Decision.ID,
		"type":   holonTypeDecision,
		"title":  res.Decision.Title,
		"winner": res.Winner.ID,
		"date":   res.Record.Date.Format(time.RFC3339),
	}
	if err := WriteWithHash(res.Path, fields, res.Decision.Content); err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(err, "decision %s recorded but its DRR file was not written", res.Decision.ID),
			"The decision is stored; inspect it with `quint show %s`", res.Decision.ID)
	}

	t.Log.Infow("Decision finalized",
		"id", res.Decision.ID,
		"winner", res.Winner.ID,
		"rejected", len(res.Rejected),
		"path", res.Path)
	return &res, nil
}

func (t *Tools) decisionPath(d db.Holon) string {
	slug := t.Slugify(d.Title)
	if slug == "" {
		slug = holonTypeDecision
	}
	return filepath.Join(t.DecisionsDir, d.ID+"-"+slug+".md")
}

// CalculateR assesses the effective reliability of a holon.
func (t *Tools) CalculateR(ctx context.Context, holonID string) (*assurance.AssuranceReport, error) {
	if err := t.CheckPreconditions("quint_calculate_r", map[string]string{"holon_id": holonID}); err != nil {
		return nil, err
	}
	return assurance.New(t.DB, t.Assurance).CalculateReliability(ctx, holonID)
}

// VisualizeAudit renders the audit tree of a holon and its evidence.
func (t *Tools) VisualizeAudit(ctx context.Context, holonID string) (string, error) {
	if err := t.CheckPreconditions("quint_audit_tree", map[string]string{"holon_id": holonID}); err != nil {
		return "", err
	}
	r, err := assurance.New(t.DB, t.Assurance).CalculateReliability(ctx, holonID)
	if err != nil {
		return "", err
	}
	return report.AuditTree(r), nil
}

func (t *Tools) GetHolon(ctx context.Context, id string) (db.Holon, error) {
	return t.DB.GetHolon(ctx, id)
}

// HolonView is a holon with everything recorded about it.
type HolonView struct {
	Holon     db.Holon
	Evidence  []assurance.ScoredEvidence
	Relations []db.Relation
	History   []db.AuditLog

	// RecordPath is set for decisions whose DRR file exists. RecordIntact
	// reports whether its body still matches the stored hash.
	RecordPath   string
	RecordIntact bool
}

func (v *HolonView) Render() string {
	out := report.Holon(v.Holon, v.Evidence, v.Relations, v.History)
	if v.RecordPath != "" {
		state := "intact"
		if !v.RecordIntact {
			state = "MODIFIED since it was written"
		}
		out += fmt.Sprintf("\nDRR: %s (%s)\n", v.RecordPath, state)
	}
	return out
}

// ShowHolon loads a holon with its evidence, relations and audit history.
func (t *Tools) ShowHolon(ctx context.Context, id string) (*HolonView, error) {
	if err := t.CheckPreconditions("quint_show", map[string]string{"holon_id": id}); err != nil {
		return nil, err
	}

	h, err := t.DB.GetHolon(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &HolonView{Holon: h}

	if h.Type == holonTypeHypothesis {
		evidence, err := t.DB.GetEvidence(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, e := range evidence {
			view.Evidence = append(view.Evidence, assurance.ScoreHolon(e))
		}
	}

	from, err := t.DB.GetRelationsFrom(ctx, id)
	if err != nil {
		return nil, err
	}
	to, err := t.DB.GetRelationsTo(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Relations = append(from, to...)

	if view.History, err = t.DB.GetAuditLogByTarget(ctx, id); err != nil {
		return nil, err
	}

	if h.Type == holonTypeDecision {
		path := t.decisionPath(h)
		if _, body, intact, err := ReadWithHash(path); err == nil {
			view.RecordPath = path
			view.RecordIntact = intact && body == h.Content
		} else if !os.IsNotExist(errors.UnwrapAll(err)) {
			t.Log.Warnw("Failed to read decision record", "path", path, "error", err)
		}
	}
	return view, nil
}

// StatusView summarises the hypotheses in the store.
type StatusView struct {
	Counts     []db.CountHolonsByLayerRow
	Hypotheses []db.Holon
}

func (v *StatusView) Render() string {
	return report.Status(v.Counts, v.Hypotheses)
}

func (t *Tools) Status(ctx context.Context) (*StatusView, error) {
	counts, err := t.DB.CountHolonsByLayer(ctx)
	if err != nil {
		return nil, err
	}
	hyps, err := t.DB.ListHolonsByType(ctx, holonTypeHypothesis)
	if err != nil {
		return nil, err
	}
	return &StatusView{Counts: counts, Hypotheses: hyps}, nil
}
