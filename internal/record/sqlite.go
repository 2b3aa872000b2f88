package record

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteStore is a Store persisted in a local SQLite database. It backs the
// dev record-store server and the offline mode; fields live in a JSON column
// and predicates are pushed down with the json1 functions.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a store over an already-migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Query(ctx context.Context, kind string, p Predicate) ([]Record, error) {
	query := `SELECT id, fields FROM records WHERE kind = ?`
	args := []any{kind}

	switch p.Op {
	case OpEquals:
		query += ` AND json_extract(fields, '$.' || ?) = ?`
		args = append(args, p.Field, p.Value)
	case OpContains:
		query += ` AND EXISTS (
			SELECT 1 FROM json_each(records.fields, '$.' || ?) je WHERE je.value = ?)`
		args = append(args, p.Field, p.Value)
	case OpBetween:
		query += ` AND json_extract(fields, '$.' || ?) BETWEEN ? AND ?`
		args = append(args, p.Field, p.Lo, p.Hi)
	default:
		return nil, fmt.Errorf("%w: unknown predicate op %q", ErrRejected, p.Op)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s records: %v", ErrRejected, kind, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var id, fields string
		if err := rows.Scan(&id, &fields); err != nil {
			return nil, fmt.Errorf("%w: scanning %s record: %v", ErrRejected, kind, err)
		}
		r := Record{Kind: kind, ID: id}
		if err := json.Unmarshal([]byte(fields), &r.Fields); err != nil {
			return nil, fmt.Errorf("%w: decoding fields of %s/%s: %v", ErrRejected, kind, id, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s records: %v", ErrRejected, kind, err)
	}
	return out, nil
}

func (s *SQLiteStore) Save(ctx context.Context, r Record) (Record, error) {
	if r.Kind == "" || r.ID == "" {
		return Record{}, fmt.Errorf("%w: record kind and id are required", ErrRejected)
	}
	fields, err := json.Marshal(r.Fields)
	if err != nil {
		return Record{}, fmt.Errorf("%w: encoding fields: %v", ErrRejected, err)
	}

	query := `INSERT INTO records (kind, id, fields) VALUES (?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET fields = excluded.fields`
	if _, err := s.db.ExecContext(ctx, query, r.Kind, r.ID, string(fields)); err != nil {
		return Record{}, fmt.Errorf("%w: upserting %s/%s: %v", ErrRejected, r.Kind, r.ID, err)
	}
	return r.Clone(), nil
}

func (s *SQLiteStore) Delete(ctx context.Context, kind, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return fmt.Errorf("%w: deleting %s/%s: %v", ErrRejected, kind, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: deleting %s/%s: %v", ErrRejected, kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, kind, id)
	}
	return nil
}
