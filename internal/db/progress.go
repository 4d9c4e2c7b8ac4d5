package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

const progressColumns = `id, user_id, title, description, status, completed_at, created_at, updated_at`

// ListProgress returns the progress items of a user, newest first.
func (db *DB) ListProgress(ctx context.Context, userID uuid.UUID) ([]types.ProgressItem, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+progressColumns+` FROM progress_items
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress items: %w", err)
	}
	defer rows.Close()

	items := []types.ProgressItem{}
	for rows.Next() {
		item, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list progress items: %w", err)
	}
	return items, nil
}

// CreateProgress inserts a pending progress item.
func (db *DB) CreateProgress(ctx context.Context, userID uuid.UUID, req *types.CreateProgressRequest) (*types.ProgressItem, error) {
	item, err := scanProgress(db.pool.QueryRow(ctx,
		`INSERT INTO progress_items (user_id, title, description, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+progressColumns,
		userID, req.Title, req.Description, types.StatusPending,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create progress item: %w", err)
	}
	return item, nil
}

// UpdateProgress applies the present fields of req to one of the user's items.
// completed_at keeps its first stamp while the item stays completed and is
// cleared for any other status. Returns nil, nil when the item is not the user's.
func (db *DB) UpdateProgress(ctx context.Context, userID, id uuid.UUID, req *types.UpdateProgressRequest) (*types.ProgressItem, error) {
	item, err := scanProgress(db.pool.QueryRow(ctx,
		`UPDATE progress_items SET
		   title = COALESCE($3, title),
		   description = COALESCE($4, description),
		   status = COALESCE($5, status),
		   completed_at = CASE
		     WHEN COALESCE($5, status) = 'completed' THEN COALESCE(completed_at, NOW())
		     ELSE NULL
		   END,
		   updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+progressColumns,
		id, userID, req.Title, req.Description, req.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update progress item: %w", err)
	}
	return item, nil
}

// DeleteProgress removes one of the user's items and reports whether it existed.
func (db *DB) DeleteProgress(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM progress_items WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete progress item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProgress(row rowScanner) (*types.ProgressItem, error) {
	var item types.ProgressItem
	err := row.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Status,
		&item.CompletedAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
