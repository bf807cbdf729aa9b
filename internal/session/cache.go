// Package session keeps an optional server-side copy of a client's
// SessionState, keyed by an opaque session id.
package session

import (
	"context"

	"github.com/google/uuid"

	"ticketdesk-backend/internal/types"
)

// Cache stores session states with a TTL. A miss is (nil, nil).
type Cache interface {
	Load(ctx context.Context, id string) (*types.SessionState, error)
	Save(ctx context.Context, id string, st types.SessionState) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
