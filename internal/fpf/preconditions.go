package fpf

import (
	"fmt"
	"strings"

	"github.com/m0n0x41d/quint-audit/assurance"
	"github.com/m0n0x41d/quint-audit/errors"
)

// PreconditionError is a blocking condition detected before any write.
// Kind is the sentinel it classifies as.
type PreconditionError struct {
	Tool       string
	Condition  string
	Suggestion string
	Kind       error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("Precondition failed for %s: %s", e.Tool, e.Condition)
}

func (e *PreconditionError) Unwrap() error {
	return e.Kind
}

// ErrorHint exposes the suggestion through errors.GetAllHints.
func (e *PreconditionError) ErrorHint() string {
	return e.Suggestion
}

func invalidArg(tool, condition, suggestion string) error {
	return &PreconditionError{
		Tool:       tool,
		Condition:  condition,
		Suggestion: suggestion,
		Kind:       errors.ErrInvalidArgument,
	}
}

// CheckPreconditions validates the arguments of a tool call. Checks that
// need the store (existence, layer) run inside the operation's transaction.
func (t *Tools) CheckPreconditions(toolName string, args map[string]string) error {
	switch toolName {
	case "quint_propose":
		return checkProposePreconditions(args)
	case "quint_verify":
		return checkVerifyPreconditions(args)
	case "quint_test":
		return checkTestPreconditions(args)
	case "quint_audit":
		return checkAuditPreconditions(args)
	case "quint_decide":
		return checkDecidePreconditions(args)
	case "quint_calculate_r", "quint_audit_tree", "quint_show":
		return checkHolonIDPreconditions(toolName, args)
	default:
		return nil
	}
}

func checkProposePreconditions(args map[string]string) error {
	if strings.TrimSpace(args["title"]) == "" {
		return invalidArg("quint_propose", "title is required",
			"Provide a descriptive title for the hypothesis")
	}
	if args["kind"] != "system" && args["kind"] != "episteme" {
		return invalidArg("quint_propose",
			fmt.Sprintf("kind %q must be 'system' or 'episteme'", args["kind"]),
			"Use 'system' for technical hypotheses, 'episteme' for knowledge claims")
	}
	return nil
}

func checkVerifyPreconditions(args map[string]string) error {
	if args["hypothesis_id"] == "" {
		return invalidArg("quint_verify", "hypothesis_id is required",
			"Specify which hypothesis to verify")
	}
	return checkVerdict("quint_verify", args["verdict"])
}

func checkTestPreconditions(args map[string]string) error {
	if args["hypothesis_id"] == "" {
		return invalidArg("quint_test", "hypothesis_id is required",
			"Specify which hypothesis to test")
	}
	if _, err := assurance.ParseTestType(args["test_type"]); err != nil {
		return invalidArg("quint_test",
			fmt.Sprintf("test_type %q is not one of internal, external", args["test_type"]),
			"Use 'internal' for tests run against this system, 'external' for outside research")
	}
	return checkVerdict("quint_test", args["verdict"])
}

func checkVerdict(tool, verdict string) error {
	if _, err := assurance.ParseVerdict(verdict); err != nil {
		return invalidArg(tool,
			fmt.Sprintf("verdict %q is not one of PASS, FAIL, REFINE", verdict),
			"Specify the outcome as PASS, FAIL or REFINE")
	}
	return nil
}

func checkAuditPreconditions(args map[string]string) error {
	if args["hypothesis_id"] == "" {
		return invalidArg("quint_audit", "hypothesis_id is required",
			"Specify which hypothesis to audit")
	}
	if strings.TrimSpace(args["risks"]) == "" {
		return invalidArg("quint_audit", "risks are required",
			"Describe the risks and biases found during the audit")
	}
	return nil
}

func checkDecidePreconditions(args map[string]string) error {
	if args["winner_id"] == "" {
		return invalidArg("quint_decide", "winner_id is required",
			"Specify the winning hypothesis ID")
	}
	if strings.TrimSpace(args["title"]) == "" {
		return invalidArg("quint_decide", "title is required",
			"Provide a title for the decision record")
	}
	return nil
}

func checkHolonIDPreconditions(tool string, args map[string]string) error {
	if args["holon_id"] == "" {
		return invalidArg(tool, "holon_id is required",
			"Specify which holon to inspect")
	}
	return nil
}
