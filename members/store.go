package members

import "context"

// Store persists member records. Implementations live under storage/.
type Store interface {
	// Get returns the record for the Telegram ID or ErrNotFound.
	Get(ctx context.Context, telegramID int64) (*Member, error)
	// Put inserts or replaces the record for its Telegram ID.
	Put(ctx context.Context, m *Member) error
	// Remove deletes a record. Removing an absent record is not an error.
	Remove(ctx context.Context, telegramID int64) error
	// IsApproved reports approval without loading the full record.
	IsApproved(ctx context.Context, telegramID int64) (bool, error)
	// ListPending returns records awaiting a decision, oldest first.
	ListPending(ctx context.Context) ([]*Member, error)
}
