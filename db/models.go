package db

import "time"

// Holon is one row of the holons table: a hypothesis, a piece of evidence
// or a decision.
type Holon struct {
	ID        string
	Type      string
	Kind      string
	Layer     string
	Title     string
	Content   string
	ContextID string
	Scope     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Relation is a directed edge from a decision to a hypothesis.
type Relation struct {
	SourceID        string
	TargetID        string
	RelationType    string
	CongruenceLevel int
	CreatedAt       time.Time
}

type AuditLog struct {
	ID        string
	Timestamp time.Time
	ToolName  string
	Operation string
	Actor     string
	TargetID  string
	InputHash string
	Result    string
	Details   string
	ContextID string
}

type CountHolonsByLayerRow struct {
	Layer string
	Count int64
}
