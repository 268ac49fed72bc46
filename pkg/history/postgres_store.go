package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// PostgresStore keeps history in the qr_history table. Apply Migrations
// before use.
type PostgresStore struct {
	pool     *pgxpool.Pool
	maxItems int
}

// NewPostgresStore creates a store on pool.
func NewPostgresStore(pool *pgxpool.Pool, opts ...Option) *PostgresStore {
	o := newOptions(opts)
	return &PostgresStore{pool: pool, maxItems: o.maxItems}
}

const (
	lockHistorySQL  = `SELECT pg_advisory_xact_lock(hashtext('qr_history'))`
	insertRecordSQL = `INSERT INTO qr_history (id, kind, content_type, content, created_at, metadata, location)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	evictRecordsSQL = `DELETE FROM qr_history WHERE seq NOT IN (
	SELECT seq FROM qr_history ORDER BY seq DESC LIMIT $1
)`
	listRecordsSQL = `SELECT id, kind, content_type, content, created_at, metadata, location
FROM qr_history ORDER BY seq DESC`
	listRecordsLimitSQL = listRecordsSQL + ` LIMIT $1`
	deleteRecordSQL     = `DELETE FROM qr_history WHERE id = $1`
	clearRecordsSQL     = `DELETE FROM qr_history`
)

func (s *PostgresStore) Append(ctx context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	// Appends are serialized so concurrent evictions cannot overshoot the cap.
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, lockHistorySQL); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertRecordSQL,
			r.ID, string(r.Kind), string(r.ContentType), r.Content, r.Timestamp, r.Metadata, r.Location,
		); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, evictRecordsSQL, s.maxItems)
		return err
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.pool.Query(ctx, listRecordsLimitSQL, limit)
	} else {
		rows, err = s.pool.Query(ctx, listRecordsSQL)
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	out, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return out, nil
}

func scanRecord(row pgx.CollectableRow) (Record, error) {
	var (
		r           Record
		kind        string
		contentType string
		createdAt   time.Time
	)
	if err := row.Scan(&r.ID, &kind, &contentType, &r.Content, &createdAt, &r.Metadata, &r.Location); err != nil {
		return Record{}, err
	}
	r.Kind = Kind(kind)
	r.ContentType = qrcontent.ContentType(contentType)
	r.Timestamp = createdAt.UTC()
	return r, nil
}

func (s *PostgresStore) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, deleteRecordSQL, id)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, clearRecordsSQL); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
