package members

import (
	"errors"
	"time"
)

// Status describes where a member stands in the registration lifecycle.
type Status string

const (
	// StatusPending means the registration dialogue completed and the
	// record awaits a moderator decision.
	StatusPending Status = "pending"
	// StatusApproved means a moderator granted access to the budget app.
	StatusApproved Status = "approved"
)

var (
	// ErrNotFound is returned when no record exists for the Telegram ID.
	ErrNotFound = errors.New("members: not found")
	// ErrAlreadyRegistered is returned when a submission would overwrite
	// an existing pending or approved record.
	ErrAlreadyRegistered = errors.New("members: already registered")
	// ErrNotPending is returned when a moderator decision targets a record
	// that is not awaiting a decision. Duplicate decision taps land here.
	ErrNotPending = errors.New("members: not pending")
)

// Member is a single family member record keyed by Telegram ID.
type Member struct {
	TelegramID   int64      `db:"telegram_id"`
	FullName     string     `db:"full_name"`
	FamilyHead   string     `db:"family_head"`
	Phone        string     `db:"phone"`
	WhatsApp     string     `db:"whatsapp"`
	Status       Status     `db:"status"`
	RegisteredAt time.Time  `db:"registered_at"`
	ApprovedAt   *time.Time `db:"approved_at"`
}

// IsApproved reports whether the member may open the budget app.
func (m *Member) IsApproved() bool {
	return m != nil && m.Status == StatusApproved
}
