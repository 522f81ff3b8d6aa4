package assurance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m0n0x41d/quint-audit/errors"
)

type Verdict string

const (
	VerdictPass    Verdict = "PASS"
	VerdictFail    Verdict = "FAIL"
	VerdictRefine  Verdict = "REFINE"
	VerdictUnknown Verdict = "UNKNOWN"
)

// ParseVerdict accepts PASS, FAIL or REFINE in any case.
func ParseVerdict(s string) (Verdict, error) {
	v := Verdict(strings.ToUpper(strings.TrimSpace(s)))
	switch v {
	case VerdictPass, VerdictFail, VerdictRefine:
		return v, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrInvalidArgument, "verdict %q", s),
		"verdict must be one of PASS, FAIL, REFINE")
}

type TestType string

const (
	TestInternal TestType = "internal"
	TestExternal TestType = "external"
	TestUnknown  TestType = "unknown"
)

// ParseTestType accepts internal or external in any case.
func ParseTestType(s string) (TestType, error) {
	tt := TestType(strings.ToLower(strings.TrimSpace(s)))
	switch tt {
	case TestInternal, TestExternal:
		return tt, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(errors.ErrInvalidArgument, "test type %q", s),
		"test type must be one of internal, external")
}

// Holon types that carry evidence.
const (
	TypeVerification = "verification"
	TypeTest         = "test"
	TypeAudit        = "audit"
)

// IsEvidenceType reports whether holons of type typ are evidence.
func IsEvidenceType(typ string) bool {
	switch typ {
	case TypeVerification, TypeTest, TypeAudit:
		return true
	}
	return false
}

// Content is the payload of an evidence holon. It is either
// StructuredEvidence or FreeTextEvidence.
type Content interface {
	isContent()
}

// StructuredEvidence is the JSON payload of test and audit holons.
type StructuredEvidence struct {
	Verdict   Verdict
	TestType  TestType
	Detail    string
	Layer     string
	Timestamp time.Time
}

// FreeTextEvidence is any payload that is not structured, including
// verification checks. Verdict is set when the text opens with the header
// written by EncodeVerification; it is empty for legacy rows.
type FreeTextEvidence struct {
	Text    string
	Verdict Verdict
}

func (StructuredEvidence) isContent() {}
func (FreeTextEvidence) isContent()   {}

type testPayload struct {
	Verdict   string `json:"verdict"`
	TestType  string `json:"test_type"`
	Result    string `json:"result"`
	Timestamp string `json:"timestamp"`
}

type auditPayload struct {
	Verdict   string `json:"verdict"`
	TestType  string `json:"test_type"`
	Risks     string `json:"risks"`
	Layer     string `json:"layer"`
	Timestamp string `json:"timestamp"`
}

// EncodeTest renders the stored content of a test holon.
func EncodeTest(verdict Verdict, testType TestType, result string, at time.Time) (string, error) {
	data, err := json.MarshalIndent(testPayload{
		Verdict:   string(verdict),
		TestType:  string(testType),
		Result:    result,
		Timestamp: at.UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode test evidence")
	}
	return string(data), nil
}

// EncodeAudit renders the stored content of an audit holon. Audits carry no
// verdict, so they always score as UNKNOWN.
func EncodeAudit(risks, layer string, at time.Time) (string, error) {
	data, err := json.MarshalIndent(auditPayload{
		Verdict:   string(VerdictUnknown),
		TestType:  string(TestUnknown),
		Risks:     risks,
		Layer:     layer,
		Timestamp: at.UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode audit evidence")
	}
	return string(data), nil
}

const verdictHeader = "Verdict: "

// EncodeVerification renders the stored content of a verification holon.
func EncodeVerification(verdict Verdict, checks string) string {
	return fmt.Sprintf("%s%s\n\n%s", verdictHeader, verdict, checks)
}

// headerVerdict reads the verdict from the first line of verification
// content. It returns "" when the header is missing or malformed.
func headerVerdict(content string) Verdict {
	first, _, _ := strings.Cut(content, "\n")
	rest, ok := strings.CutPrefix(first, verdictHeader)
	if !ok {
		return ""
	}
	v, err := ParseVerdict(rest)
	if err != nil {
		return ""
	}
	return v
}

// DecodeContent picks the variant from the holon type. Test and audit rows
// that do not hold a JSON object fall back to free text. Verification rows
// carry the verdict from their header.
func DecodeContent(holonType, content string) Content {
	if holonType == TypeVerification {
		return FreeTextEvidence{Text: content, Verdict: headerVerdict(content)}
	}
	if holonType != TypeTest && holonType != TypeAudit {
		return FreeTextEvidence{Text: content}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil || raw == nil {
		return FreeTextEvidence{Text: content}
	}

	se := StructuredEvidence{
		Verdict:  VerdictUnknown,
		TestType: TestUnknown,
	}
	if v := stringField(raw, "verdict"); v != "" {
		se.Verdict = Verdict(strings.ToUpper(v))
	}
	if tt := stringField(raw, "test_type"); tt != "" {
		se.TestType = TestType(strings.ToLower(tt))
	}
	if holonType == TypeAudit {
		se.Detail = stringField(raw, "risks")
	} else {
		se.Detail = stringField(raw, "result")
	}
	se.Layer = stringField(raw, "layer")
	if ts, err := time.Parse(time.RFC3339, stringField(raw, "timestamp")); err == nil {
		se.Timestamp = ts
	}
	return se
}

// stringField returns the string value of key, or "" when it is absent or
// not a string.
func stringField(raw map[string]json.RawMessage, key string) string {
	msg, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return ""
	}
	return s
}
