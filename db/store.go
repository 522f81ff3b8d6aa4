package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/m0n0x41d/quint-audit/errors"
)

// Session is the set of record operations available both on the store and
// inside a transaction.
type Session interface {
	CreateHolon(ctx context.Context, h Holon) error
	GetHolon(ctx context.Context, id string) (Holon, error)
	GetEvidence(ctx context.Context, hypothesisID string) ([]Holon, error)
	UpdateHolonLayer(ctx context.Context, id, layer string, updatedAt time.Time) error
	CreateRelation(ctx context.Context, r Relation) error
	GetRelationsFrom(ctx context.Context, sourceID string) ([]Relation, error)
	GetRelationsTo(ctx context.Context, targetID string) ([]Relation, error)
}

// Store is the handle on the record store. It is opened once per
// invocation and passed explicitly to every operation.
type Store struct {
	conn *sql.DB
	q    *Queries
	log  *zap.SugaredLogger
}

// NewStore opens the database at dbPath and creates the schema.
func NewStore(ctx context.Context, dbPath string, logger *zap.SugaredLogger) (*Store, error) {
	conn, err := Open(dbPath, logger)
	if err != nil {
		return nil, err
	}

	if err := Bootstrap(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewStoreFromDB(conn, logger), nil
}

// NewStoreFromDB wraps an already opened connection. The schema is assumed
// to exist.
func NewStoreFromDB(conn *sql.DB, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{
		conn: conn,
		q:    New(),
		log:  logger,
	}
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// WithTx runs fn inside one transaction. The transaction commits only when
// fn returns nil; otherwise nothing fn wrote is kept.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.StoreFailure(err, "begin transaction")
	}
	defer sqlTx.Rollback() // no-op after commit

	if err := fn(&Tx{tx: sqlTx, q: s.q}); err != nil {
		s.log.Debugw("Transaction rolled back", "error", err)
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return errors.StoreFailure(err, "commit transaction")
	}
	return nil
}

func (s *Store) CreateHolon(ctx context.Context, h Holon) error {
	return s.q.CreateHolon(ctx, s.conn, h)
}

func (s *Store) GetHolon(ctx context.Context, id string) (Holon, error) {
	return s.q.GetHolon(ctx, s.conn, id)
}

func (s *Store) GetEvidence(ctx context.Context, hypothesisID string) ([]Holon, error) {
	return s.q.GetEvidence(ctx, s.conn, hypothesisID)
}

func (s *Store) ListHolonsByType(ctx context.Context, typ string) ([]Holon, error) {
	return s.q.ListHolonsByType(ctx, s.conn, typ)
}

func (s *Store) UpdateHolonLayer(ctx context.Context, id, layer string, updatedAt time.Time) error {
	return s.q.UpdateHolonLayer(ctx, s.conn, id, layer, updatedAt)
}

// CountHolonsByLayer returns hypothesis counts per layer.
func (s *Store) CountHolonsByLayer(ctx context.Context) ([]CountHolonsByLayerRow, error) {
	return s.q.CountHolonsByLayer(ctx, s.conn)
}

func (s *Store) CreateRelation(ctx context.Context, r Relation) error {
	return s.q.CreateRelation(ctx, s.conn, r)
}

func (s *Store) GetRelationsFrom(ctx context.Context, sourceID string) ([]Relation, error) {
	return s.q.GetRelationsFrom(ctx, s.conn, sourceID)
}

func (s *Store) GetRelationsTo(ctx context.Context, targetID string) ([]Relation, error) {
	return s.q.GetRelationsTo(ctx, s.conn, targetID)
}

func (s *Store) InsertAuditLog(ctx context.Context, a AuditLog) error {
	return s.q.InsertAuditLog(ctx, s.conn, a)
}

func (s *Store) GetAuditLogByTarget(ctx context.Context, targetID string) ([]AuditLog, error) {
	return s.q.GetAuditLogByTarget(ctx, s.conn, targetID)
}

// Tx is a store session bound to one open transaction.
type Tx struct {
	tx *sql.Tx
	q  *Queries
}

func (t *Tx) CreateHolon(ctx context.Context, h Holon) error {
	return t.q.CreateHolon(ctx, t.tx, h)
}

func (t *Tx) GetHolon(ctx context.Context, id string) (Holon, error) {
	return t.q.GetHolon(ctx, t.tx, id)
}

func (t *Tx) GetEvidence(ctx context.Context, hypothesisID string) ([]Holon, error) {
	return t.q.GetEvidence(ctx, t.tx, hypothesisID)
}

func (t *Tx) UpdateHolonLayer(ctx context.Context, id, layer string, updatedAt time.Time) error {
	return t.q.UpdateHolonLayer(ctx, t.tx, id, layer, updatedAt)
}

func (t *Tx) CreateRelation(ctx context.Context, r Relation) error {
	return t.q.CreateRelation(ctx, t.tx, r)
}

func (t *Tx) GetRelationsFrom(ctx context.Context, sourceID string) ([]Relation, error) {
	return t.q.GetRelationsFrom(ctx, t.tx, sourceID)
}

func (t *Tx) GetRelationsTo(ctx context.Context, targetID string) ([]Relation, error) {
	return t.q.GetRelationsTo(ctx, t.tx, targetID)
}

var (
	_ Session = (*Store)(nil)
	_ Session = (*Tx)(nil)
)
