package task

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase exposes owner-scoped task operations to the transport layer,
// translating store-level absence into ErrNotFound.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (Task, error)
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (Task, error)
	List(ctx context.Context, ownerID uuid.UUID, f Filter, limit, offset int) ([]Task, error)
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) (Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrValidation("title is required")
	}
	t := Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Status:      StatusOpen,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// GetByID returns the task only if it exists and belongs to the caller.
// Absence covers both "does not exist" and "owned by someone else";
// callers cannot tell which.
func (s *service) GetByID(ctx context.Context, ownerID, id uuid.UUID) (Task, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, f Filter, limit, offset int) ([]Task, error) {
	return s.repo.ListByOwner(ctx, ownerID, f, limit, offset)
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, status Status) (Task, error) {
	t, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return Task{}, err
	}
	t.Status = status
	affected, err := s.repo.UpdateStatusForOwner(ctx, ownerID, id, status)
	if err != nil {
		return Task{}, err
	}
	if affected == 0 {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	affected, err := s.repo.DeleteForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
