package fpf

import (
	"fmt"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/errors"
)

// Layer is the epistemic stage of a hypothesis.
type Layer string

const (
	LayerL0      Layer = "L0"
	LayerL1      Layer = "L1"
	LayerL2      Layer = "L2"
	LayerL3      Layer = "L3"
	LayerInvalid Layer = "invalid"
)

// Action is what moves a hypothesis between layers.
type Action string

const (
	ActionVerify Action = "verify"
	ActionTest   Action = "test"
	ActionDecide Action = "decide"
)

// anyVerdict matches every verdict in a rule.
const anyVerdict assurance.Verdict = ""

// TransitionRule is one row of the layer table.
type TransitionRule struct {
	From    Layer
	Action  Action
	Verdict assurance.Verdict
	To      Layer
	Status  string
	// Warn marks a permitted action that leaves the layer unchanged and
	// should be reported to the caller.
	Warn bool
}

var transitionRules = []TransitionRule{
	{LayerL0, ActionVerify, assurance.VerdictPass, LayerL1, "substantiated", false},
	{LayerL0, ActionVerify, assurance.VerdictFail, LayerInvalid, "rejected", false},
	{LayerL0, ActionVerify, assurance.VerdictRefine, LayerL0, "needs_refinement", false},
	{LayerL1, ActionVerify, anyVerdict, LayerL1, "already_verified", true},
	{LayerL2, ActionVerify, anyVerdict, LayerL2, "already_verified", true},
	{LayerL3, ActionVerify, anyVerdict, LayerL3, "already_verified", true},
	{LayerInvalid, ActionVerify, anyVerdict, LayerInvalid, "already_verified", true},

	{LayerL1, ActionTest, assurance.VerdictPass, LayerL2, "promoted", false},
	{LayerL1, ActionTest, assurance.VerdictFail, LayerL1, "evidence_recorded", false},
	{LayerL1, ActionTest, assurance.VerdictRefine, LayerL1, "evidence_recorded", false},
	{LayerL2, ActionTest, anyVerdict, LayerL2, "refreshed", false},

	{LayerL1, ActionDecide, anyVerdict, LayerL3, "decided", false},
	{LayerL2, ActionDecide, anyVerdict, LayerL3, "decided", false},
}

// Transition is the outcome of applying an action to a layer.
type Transition struct {
	From    Layer
	To      Layer
	Action  Action
	Verdict assurance.Verdict
	Status  string
	Warning string
}

// Changed reports whether the layer moved.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Next applies action with verdict to a hypothesis at layer from. Verify and
// test need a PASS, FAIL or REFINE verdict; decide ignores it.
func Next(from Layer, action Action, verdict assurance.Verdict) (Transition, error) {
	tool, ok := actionTools[action]
	if !ok {
		return Transition{}, errors.Wrapf(errors.ErrInvalidArgument, "action %q", action)
	}

	if action == ActionDecide {
		verdict = anyVerdict
	} else {
		parsed, err := assurance.ParseVerdict(string(verdict))
		if err != nil {
			return Transition{}, err
		}
		verdict = parsed
	}

	for _, rule := range transitionRules {
		if rule.From != from || rule.Action != action {
			continue
		}
		if rule.Verdict != anyVerdict && rule.Verdict != verdict {
			continue
		}

		tr := Transition{
			From:    from,
			To:      rule.To,
			Action:  action,
			Verdict: verdict,
			Status:  rule.Status,
		}
		if rule.Warn {
			tr.Warning = fmt.Sprintf("hypothesis is already at layer %s; evidence recorded, layer unchanged", from)
		}
		return tr, nil
	}

	return Transition{}, illegalTransition(tool, from, action)
}

var actionTools = map[Action]string{
	ActionVerify: "quint_verify",
	ActionTest:   "quint_test",
	ActionDecide: "quint_decide",
}

func illegalTransition(tool string, from Layer, action Action) error {
	e := &PreconditionError{
		Tool: tool,
		Kind: errors.ErrIllegalTransition,
	}
	switch action {
	case ActionVerify:
		e.Condition = fmt.Sprintf("cannot verify a hypothesis at unknown layer %q", from)
		e.Suggestion = "Valid layers are L0, L1, L2, L3 and invalid"
	case ActionTest:
		e.Condition = fmt.Sprintf("cannot test a hypothesis at layer %s, tests need L1 or L2", from)
		e.Suggestion = "Complete logical verification first (verify with PASS moves L0 -> L1)"
		if from == LayerL3 || from == LayerInvalid {
			e.Suggestion = "Hypotheses that are decided or invalid cannot collect new test evidence"
		}
	case ActionDecide:
		e.Condition = fmt.Sprintf("cannot select a hypothesis at layer %s as winner, it must be L1 or L2", from)
		e.Suggestion = "Verify and test the hypothesis before deciding on it"
	}
	return e
}
