package members

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/waznabudget/masarifbot/core/logger"
)

// Access is the verdict of the access gate for a single update.
type Access int

const (
	// AccessUnregistered means no record exists for the requester.
	AccessUnregistered Access = iota
	// AccessPending means the requester registered and awaits a decision.
	AccessPending
	// AccessApproved means the requester may use the budget app.
	AccessApproved
)

// String returns the log-friendly name of the access verdict.
func (a Access) String() string {
	switch a {
	case AccessPending:
		return "pending"
	case AccessApproved:
		return "approved"
	default:
		return "unregistered"
	}
}

// Service owns the member lifecycle: submission, access gating and
// moderator decisions. All mutations for one Telegram ID are serialized.
type Service struct {
	store Store

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewService wraps a store with lifecycle rules.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		locks: make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing mutations for one Telegram ID.
func (s *Service) lockFor(telegramID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[telegramID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[telegramID] = l
	}
	return l
}

// Classify resolves the requester's access level. The verdict is read from
// the store on every call; it is never cached, so a decision made while the
// requester chats takes effect on their next update.
func (s *Service) Classify(ctx context.Context, telegramID int64) (Access, error) {
	m, err := s.store.Get(ctx, telegramID)
	if err != nil {
		if err == ErrNotFound {
			return AccessUnregistered, nil
		}
		return AccessUnregistered, fmt.Errorf("classify %d: %w", telegramID, err)
	}
	if m.Status == StatusApproved {
		return AccessApproved, nil
	}
	return AccessPending, nil
}

// Get returns the member record for the Telegram ID.
func (s *Service) Get(ctx context.Context, telegramID int64) (*Member, error) {
	return s.store.Get(ctx, telegramID)
}

// Pending returns the registrations awaiting a decision, oldest first.
func (s *Service) Pending(ctx context.Context) ([]*Member, error) {
	return s.store.ListPending(ctx)
}

// Submit stores a completed registration as pending. A requester with an
// existing record, pending or approved, gets ErrAlreadyRegistered and the
// stored record stays untouched.
func (s *Service) Submit(ctx context.Context, m *Member) error {
	l := s.lockFor(m.TelegramID)
	l.Lock()
	defer l.Unlock()

	if _, err := s.store.Get(ctx, m.TelegramID); err == nil {
		return ErrAlreadyRegistered
	} else if err != ErrNotFound {
		return fmt.Errorf("submit %d: %w", m.TelegramID, err)
	}

	m.Status = StatusPending
	if m.RegisteredAt.IsZero() {
		m.RegisteredAt = time.Now().UTC()
	}
	m.ApprovedAt = nil

	if err := s.store.Put(ctx, m); err != nil {
		return fmt.Errorf("submit %d: %w", m.TelegramID, err)
	}

	logger.LogEvent(ctx, logger.SVCMembers, slog.LevelInfo, "member.submitted",
		slog.Int64("member_id", m.TelegramID),
		slog.String("member_status", string(m.Status)),
	)
	return nil
}

// Approve grants access to a pending member and returns the updated record.
// A vanished record yields ErrNotFound; a record that is no longer pending,
// for example after a duplicate tap on the same decision button, yields
// ErrNotPending.
func (s *Service) Approve(ctx context.Context, telegramID int64) (*Member, error) {
	l := s.lockFor(telegramID)
	l.Lock()
	defer l.Unlock()

	m, err := s.store.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusPending {
		return nil, ErrNotPending
	}

	now := time.Now().UTC()
	m.Status = StatusApproved
	m.ApprovedAt = &now

	if err := s.store.Put(ctx, m); err != nil {
		return nil, fmt.Errorf("approve %d: %w", telegramID, err)
	}

	logger.LogEvent(ctx, logger.SVCApproval, slog.LevelInfo, "member.approved",
		slog.Int64("member_id", telegramID),
		slog.String("decision", "approve"),
	)
	return m, nil
}

// Reject removes a pending member's record so they can register again from
// scratch. A vanished record yields ErrNotFound; rejecting an approved member
// via a stale button yields ErrNotPending and leaves the record alone.
func (s *Service) Reject(ctx context.Context, telegramID int64) (*Member, error) {
	l := s.lockFor(telegramID)
	l.Lock()
	defer l.Unlock()

	m, err := s.store.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusPending {
		return nil, ErrNotPending
	}

	if err := s.store.Remove(ctx, telegramID); err != nil {
		return nil, fmt.Errorf("reject %d: %w", telegramID, err)
	}

	logger.LogEvent(ctx, logger.SVCApproval, slog.LevelInfo, "member.rejected",
		slog.Int64("member_id", telegramID),
		slog.String("decision", "reject"),
	)
	return m, nil
}
