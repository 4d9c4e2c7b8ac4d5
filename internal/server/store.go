package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

// DBClient is the account storage UserService depends on.
type DBClient interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email, name, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
}

// ProfileStore persists learner profiles.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	UpsertProfile(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*types.Profile, error)
}

// ProgressStore persists progress items. Every call is scoped to userID.
type ProgressStore interface {
	ListProgress(ctx context.Context, userID uuid.UUID) ([]types.ProgressItem, error)
	CreateProgress(ctx context.Context, userID uuid.UUID, req *types.CreateProgressRequest) (*types.ProgressItem, error)
	UpdateProgress(ctx context.Context, userID, id uuid.UUID, req *types.UpdateProgressRequest) (*types.ProgressItem, error)
	DeleteProgress(ctx context.Context, userID, id uuid.UUID) (bool, error)
}

// ChatStore persists chat transcripts.
type ChatStore interface {
	RecentChatMessages(ctx context.Context, userID uuid.UUID, limit int) ([]types.ChatMessage, error)
	AppendChatMessages(ctx context.Context, userID uuid.UUID, messages ...types.ChatMessage) error
}

// Store is everything the API persists. *db.DB implements it.
type Store interface {
	DBClient
	ProfileStore
	ProgressStore
	ChatStore
}

var _ Store = (*db.DB)(nil)
