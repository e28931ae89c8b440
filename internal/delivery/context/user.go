package context

import (
	"context"

	"github.com/google/uuid"
)

// KeyUserID is the key for storing the authenticated user ID in context.
const KeyUserID ContextKey = "user_id"

// WithUserID returns a new context carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, KeyUserID, userID)
}

// GetUserIDFromContext returns the authenticated user ID, or uuid.Nil when the request is anonymous.
func GetUserIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(KeyUserID).(uuid.UUID); ok {
		return id
	}

	return uuid.Nil
}
