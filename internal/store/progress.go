package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type progressRepo struct {
	drv *entsql.Driver
}

func (r *progressRepo) RecordProgress(ctx context.Context, username, topic string, score int) error {
	query, args := builder().Insert("user_progress").
		Columns("username", "topic", "score").
		Values(username, topic, score).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return &StorageError{Op: "record progress", Err: err}
	}
	return nil
}

func (r *progressRepo) ListProgress(ctx context.Context, username string, limit int) ([]ProgressRecord, error) {
	sel := builder().Select("id", "username", "topic", "score", "created_at").
		From(entsql.Table("user_progress")).
		Where(entsql.EQ("username", username)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var (
			rec     ProgressRecord
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Username, &rec.Topic, &rec.Score, &created); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}
