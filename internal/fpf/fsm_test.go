package fpf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/errors"
)

var (
	allLayers   = []Layer{LayerL0, LayerL1, LayerL2, LayerL3, LayerInvalid}
	allActions  = []Action{ActionVerify, ActionTest, ActionDecide}
	allVerdicts = []assurance.Verdict{
		assurance.VerdictPass,
		assurance.VerdictFail,
		assurance.VerdictRefine,
		assurance.VerdictUnknown,
		"",
		"maybe",
	}
)

// expectedTransition is the layer table written out longhand.
func expectedTransition(from Layer, action Action, verdict assurance.Verdict) (to Layer, status string, kind error) {
	if action != ActionDecide {
		switch verdict {
		case assurance.VerdictPass, assurance.VerdictFail, assurance.VerdictRefine:
		default:
			return "", "", errors.ErrInvalidArgument
		}
	}

	switch action {
	case ActionVerify:
		switch from {
		case LayerL0:
			switch verdict {
			case assurance.VerdictPass:
				return LayerL1, "substantiated", nil
			case assurance.VerdictFail:
				return LayerInvalid, "rejected", nil
			default:
				return LayerL0, "needs_refinement", nil
			}
		case LayerL1, LayerL2, LayerL3, LayerInvalid:
			return from, "already_verified", nil
		}
	case ActionTest:
		switch from {
		case LayerL1:
			if verdict == assurance.VerdictPass {
				return LayerL2, "promoted", nil
			}
			return LayerL1, "evidence_recorded", nil
		case LayerL2:
			return LayerL2, "refreshed", nil
		}
	case ActionDecide:
		if from == LayerL1 || from == LayerL2 {
			return LayerL3, "decided", nil
		}
	}
	return "", "", errors.ErrIllegalTransition
}

func TestNext_AllTriples(t *testing.T) {
	for _, from := range allLayers {
		for _, action := range allActions {
			for _, verdict := range allVerdicts {
				name := string(from) + "/" + string(action) + "/" + string(verdict)
				t.Run(name, func(t *testing.T) {
					wantTo, wantStatus, wantKind := expectedTransition(from, action, verdict)

					tr, err := Next(from, action, verdict)
					if wantKind != nil {
						require.Error(t, err)
						assert.True(t, errors.Is(err, wantKind), "got %v", err)
						assert.Equal(t, wantKind, errors.Kind(err))
						return
					}

					require.NoError(t, err)
					assert.Equal(t, from, tr.From)
					assert.Equal(t, wantTo, tr.To)
					assert.Equal(t, wantStatus, tr.Status)
					assert.Equal(t, action, tr.Action)
				})
			}
		}
	}
}

func TestNext_NormalisesVerdict(t *testing.T) {
	tr, err := Next(LayerL0, ActionVerify, "pass")
	require.NoError(t, err)
	assert.Equal(t, LayerL1, tr.To)
	assert.Equal(t, assurance.VerdictPass, tr.Verdict)

	tr, err = Next(LayerL1, ActionTest, " Fail ")
	require.NoError(t, err)
	assert.Equal(t, LayerL1, tr.To)
	assert.Equal(t, assurance.VerdictFail, tr.Verdict)
}

func TestNext_ReverifyWarns(t *testing.T) {
	for _, from := range []Layer{LayerL1, LayerL2, LayerL3, LayerInvalid} {
		tr, err := Next(from, ActionVerify, assurance.VerdictFail)
		require.NoError(t, err)
		assert.False(t, tr.Changed())
		assert.Contains(t, tr.Warning, string(from))
	}

	tr, err := Next(LayerL0, ActionVerify, assurance.VerdictRefine)
	require.NoError(t, err)
	assert.False(t, tr.Changed())
	assert.Empty(t, tr.Warning)
}

func TestNext_DecideIgnoresVerdict(t *testing.T) {
	tr, err := Next(LayerL2, ActionDecide, "anything")
	require.NoError(t, err)
	assert.Equal(t, LayerL3, tr.To)
	assert.Equal(t, assurance.Verdict(""), tr.Verdict)
}

func TestNext_UnknownLayer(t *testing.T) {
	_, err := Next(Layer("L9"), ActionVerify, assurance.VerdictPass)
	assert.True(t, errors.IsIllegalTransition(err))
	assert.Contains(t, err.Error(), "L9")
}

func TestNext_UnknownAction(t *testing.T) {
	_, err := Next(LayerL0, Action("promote"), assurance.VerdictPass)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNext_IllegalTransitionHints(t *testing.T) {
	_, err := Next(LayerL0, ActionTest, assurance.VerdictPass)
	require.Error(t, err)

	var pe *PreconditionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "quint_test", pe.Tool)
	assert.Contains(t, pe.Condition, "L0")
	assert.Contains(t, errors.FlattenHints(err), "verify")

	_, err = Next(LayerL3, ActionTest, assurance.VerdictPass)
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Suggestion, "decided or invalid")

	_, err = Next(LayerInvalid, ActionDecide, "")
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "quint_decide", pe.Tool)
	assert.True(t, errors.IsIllegalTransition(err))
}
