package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/m0n0x41d/quint-audit/errors"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every query can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the SQL of the store. It carries no state; the connection
// or transaction is passed to each call.
type Queries struct{}

func New() *Queries {
	return &Queries{}
}

const holonColumns = `id, type, kind, layer, title, content, context_id, scope, created_at, updated_at`

const createHolon = `INSERT INTO holons (` + holonColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateHolon(ctx context.Context, db DBTX, h Holon) error {
	_, err := db.ExecContext(ctx, createHolon,
		h.ID,
		h.Type,
		toNullString(h.Kind),
		h.Layer,
		h.Title,
		h.Content,
		h.ContextID,
		toNullString(h.Scope),
		h.CreatedAt.UTC(),
		h.UpdatedAt.UTC(),
	)
	return errors.StoreFailure(err, "insert holon "+h.ID)
}

const getHolon = `SELECT ` + holonColumns + ` FROM holons WHERE id = ?`

func (q *Queries) GetHolon(ctx context.Context, db DBTX, id string) (Holon, error) {
	h, err := scanHolon(db.QueryRowContext(ctx, getHolon, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Holon{}, errors.Wrapf(errors.ErrNotFound, "holon %q", id)
	}
	if err != nil {
		return Holon{}, errors.StoreFailure(err, "get holon "+id)
	}
	return h, nil
}

// Evidence is read in creation order; rowid breaks created_at ties.
const getEvidence = `SELECT ` + holonColumns + ` FROM holons
WHERE context_id = ? AND type IN ('verification', 'test', 'audit')
ORDER BY created_at ASC, rowid ASC`

func (q *Queries) GetEvidence(ctx context.Context, db DBTX, hypothesisID string) ([]Holon, error) {
	return q.listHolons(ctx, db, "get evidence for "+hypothesisID, getEvidence, hypothesisID)
}

const listHolonsByType = `SELECT ` + holonColumns + ` FROM holons
WHERE type = ?
ORDER BY created_at ASC, rowid ASC`

func (q *Queries) ListHolonsByType(ctx context.Context, db DBTX, typ string) ([]Holon, error) {
	return q.listHolons(ctx, db, "list "+typ+" holons", listHolonsByType, typ)
}

func (q *Queries) listHolons(ctx context.Context, db DBTX, op, query string, args ...interface{}) ([]Holon, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.StoreFailure(err, op)
	}
	defer rows.Close()

	var items []Holon
	for rows.Next() {
		h, err := scanHolon(rows)
		if err != nil {
			return nil, errors.StoreFailure(err, op)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFailure(err, op)
	}
	return items, nil
}

const updateHolonLayer = `UPDATE holons SET layer = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdateHolonLayer(ctx context.Context, db DBTX, id, layer string, updatedAt time.Time) error {
	res, err := db.ExecContext(ctx, updateHolonLayer, layer, updatedAt.UTC(), id)
	if err != nil {
		return errors.StoreFailure(err, "update layer of "+id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.StoreFailure(err, "update layer of "+id)
	}
	if n == 0 {
		return errors.Wrapf(errors.ErrNotFound, "holon %q", id)
	}
	return nil
}

const countHolonsByLayer = `SELECT layer, COUNT(*) FROM holons
WHERE type = 'hypothesis'
GROUP BY layer
ORDER BY layer`

func (q *Queries) CountHolonsByLayer(ctx context.Context, db DBTX) ([]CountHolonsByLayerRow, error) {
	rows, err := db.QueryContext(ctx, countHolonsByLayer)
	if err != nil {
		return nil, errors.StoreFailure(err, "count holons by layer")
	}
	defer rows.Close()

	var items []CountHolonsByLayerRow
	for rows.Next() {
		var i CountHolonsByLayerRow
		if err := rows.Scan(&i.Layer, &i.Count); err != nil {
			return nil, errors.StoreFailure(err, "count holons by layer")
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFailure(err, "count holons by layer")
	}
	return items, nil
}

const createRelation = `INSERT INTO relations (source_id, target_id, relation_type, congruence_level, created_at)
VALUES (?, ?, ?, ?, ?)`

func (q *Queries) CreateRelation(ctx context.Context, db DBTX, r Relation) error {
	_, err := db.ExecContext(ctx, createRelation,
		r.SourceID,
		r.TargetID,
		r.RelationType,
		r.CongruenceLevel,
		r.CreatedAt.UTC(),
	)
	return errors.StoreFailure(err, "insert relation "+r.SourceID+" "+r.RelationType+" "+r.TargetID)
}

const getRelationsFrom = `SELECT source_id, target_id, relation_type, congruence_level, created_at
FROM relations WHERE source_id = ?
ORDER BY rowid ASC`

func (q *Queries) GetRelationsFrom(ctx context.Context, db DBTX, sourceID string) ([]Relation, error) {
	return q.listRelations(ctx, db, "get relations from "+sourceID, getRelationsFrom, sourceID)
}

const getRelationsTo = `SELECT source_id, target_id, relation_type, congruence_level, created_at
FROM relations WHERE target_id = ?
ORDER BY rowid ASC`

func (q *Queries) GetRelationsTo(ctx context.Context, db DBTX, targetID string) ([]Relation, error) {
	return q.listRelations(ctx, db, "get relations to "+targetID, getRelationsTo, targetID)
}

func (q *Queries) listRelations(ctx context.Context, db DBTX, op, query string, arg string) ([]Relation, error) {
	rows, err := db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, errors.StoreFailure(err, op)
	}
	defer rows.Close()

	var items []Relation
	for rows.Next() {
		var (
			r  Relation
			cl sql.NullInt64
			at sql.NullTime
		)
		if err := rows.Scan(&r.SourceID, &r.TargetID, &r.RelationType, &cl, &at); err != nil {
			return nil, errors.StoreFailure(err, op)
		}
		r.CongruenceLevel = int(cl.Int64)
		r.CreatedAt = at.Time
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFailure(err, op)
	}
	return items, nil
}

const insertAuditLog = `INSERT INTO audit_log (id, timestamp, tool_name, operation, actor, target_id, input_hash, result, details, context_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) InsertAuditLog(ctx context.Context, db DBTX, a AuditLog) error {
	_, err := db.ExecContext(ctx, insertAuditLog,
		a.ID,
		a.Timestamp.UTC(),
		a.ToolName,
		a.Operation,
		a.Actor,
		toNullString(a.TargetID),
		toNullString(a.InputHash),
		a.Result,
		toNullString(a.Details),
		a.ContextID,
	)
	return errors.StoreFailure(err, "insert audit log")
}

const getAuditLogByTarget = `SELECT id, timestamp, tool_name, operation, actor, target_id, input_hash, result, details, context_id
FROM audit_log WHERE target_id = ?
ORDER BY timestamp ASC, rowid ASC`

func (q *Queries) GetAuditLogByTarget(ctx context.Context, db DBTX, targetID string) ([]AuditLog, error) {
	rows, err := db.QueryContext(ctx, getAuditLogByTarget, targetID)
	if err != nil {
		return nil, errors.StoreFailure(err, "get audit log for "+targetID)
	}
	defer rows.Close()

	var items []AuditLog
	for rows.Next() {
		var (
			a                          AuditLog
			ts                         sql.NullTime
			target, inputHash, details sql.NullString
		)
		if err := rows.Scan(&a.ID, &ts, &a.ToolName, &a.Operation, &a.Actor,
			&target, &inputHash, &a.Result, &details, &a.ContextID); err != nil {
			return nil, errors.StoreFailure(err, "get audit log for "+targetID)
		}
		a.Timestamp = ts.Time
		a.TargetID = target.String
		a.InputHash = inputHash.String
		a.Details = details.String
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StoreFailure(err, "get audit log for "+targetID)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHolon(row rowScanner) (Holon, error) {
	var (
		h                    Holon
		kind, scope          sql.NullString
		createdAt, updatedAt sql.NullTime
	)
	err := row.Scan(
		&h.ID,
		&h.Type,
		&kind,
		&h.Layer,
		&h.Title,
		&h.Content,
		&h.ContextID,
		&scope,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return Holon{}, err
	}
	h.Kind = kind.String
	h.Scope = scope.String
	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time
	return h, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
