package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}
