package types

import (
	"time"

	"github.com/google/uuid"
)

// Progress item statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ProgressItem is one tracked learning goal.
type ProgressItem struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateProgressRequest adds a progress item; new items start as pending.
type CreateProgressRequest struct {
	Title       string  `json:"title" validate:"required,max=300"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

// UpdateProgressRequest changes the fields that are present.
// Setting status to completed stamps completedAt; any other status clears it.
type UpdateProgressRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=300"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
}

// Validate validates the CreateProgressRequest using the validator.
func (r *CreateProgressRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the UpdateProgressRequest using the validator.
func (r *UpdateProgressRequest) Validate() error {
	return validate.Struct(r)
}
