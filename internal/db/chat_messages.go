package db

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-coach/internal/types"
)

// RecentChatMessages returns the user's last limit messages, oldest first.
func (db *DB) RecentChatMessages(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT role, content FROM chat_messages
		 WHERE user_id = $1
		 ORDER BY created_at DESC, seq DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	messages := []types.ChatMessage{}
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, types.ChatMessage{Role: types.ChatRole(role), Content: content})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}

	slices.Reverse(messages)
	return messages, nil
}

// AppendChatMessages stores messages in order, in one transaction.
func (db *DB) AppendChatMessages(ctx context.Context, userID uuid.UUID, messages ...types.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}

	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		for _, m := range messages {
			_, err := tx.Exec(ctx,
				`INSERT INTO chat_messages (user_id, role, content) VALUES ($1, $2, $3)`,
				userID, string(m.Role), m.Content,
			)
			if err != nil {
				return fmt.Errorf("failed to append chat message: %w", err)
			}
		}
		return nil
	})
}
