// Package memory implements the member store in process memory.
// It backs tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/waznabudget/masarifbot/members"
)

// MemberStore keeps member records in a map guarded by a RWMutex.
type MemberStore struct {
	mu      sync.RWMutex
	records map[int64]members.Member
}

// NewMemberStore returns an empty in-memory store.
func NewMemberStore() *MemberStore {
	return &MemberStore{records: make(map[int64]members.Member)}
}

// Get returns a copy of the stored record or members.ErrNotFound.
func (s *MemberStore) Get(_ context.Context, telegramID int64) (*members.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.records[telegramID]
	if !ok {
		return nil, members.ErrNotFound
	}
	out := m
	return &out, nil
}

// Put stores a copy of the record keyed by its Telegram ID.
func (s *MemberStore) Put(_ context.Context, m *members.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[m.TelegramID] = *m
	return nil
}

// Remove deletes the record. A missing record is not an error.
func (s *MemberStore) Remove(_ context.Context, telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, telegramID)
	return nil
}

// ListPending returns copies of pending records, oldest submission first.
func (s *MemberStore) ListPending(_ context.Context) ([]*members.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*members.Member
	for _, m := range s.records {
		if m.Status == members.StatusPending {
			out := m
			list = append(list, &out)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].RegisteredAt.Before(list[j].RegisteredAt)
	})
	return list, nil
}

// IsApproved reports whether an approved record exists for the ID.
func (s *MemberStore) IsApproved(_ context.Context, telegramID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.records[telegramID]
	return ok && m.Status == members.StatusApproved, nil
}
