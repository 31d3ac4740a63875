package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a task. Transitions are unrestricted:
// any status may move to any other.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// ParseStatus validates a client-supplied status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusDone:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Task is a personally-owned work item. OwnerID is set exactly once, at
// creation, from the authenticated caller.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Filter narrows a listing. Status and Search compose with logical AND;
// Search is a case-insensitive substring match over title and description.
type Filter struct {
	Status *Status
	Search string
}

var ErrNotFound = errors.New("task not found")

// Repository is the persistence port for tasks. Every read/update/delete
// predicate includes both the record id and the owner's id; that
// conjunction is the sole access-control mechanism.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f Filter, limit, offset int) ([]Task, error)
	// UpdateStatusForOwner and DeleteForOwner report the affected-row
	// count (0 or 1) so callers can distinguish a missing record.
	UpdateStatusForOwner(ctx context.Context, ownerID, id uuid.UUID, status Status) (int64, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (int64, error)
}
