// Package postgres implements the member store on PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/waznabudget/masarifbot/members"
)

// MemberStore persists member records in the members table.
type MemberStore struct {
	db *sqlx.DB
}

// NewMemberStore binds the store to an open connection pool.
func NewMemberStore(db *sqlx.DB) *MemberStore {
	return &MemberStore{db: db}
}

// Get loads one member record by Telegram ID.
func (s *MemberStore) Get(ctx context.Context, telegramID int64) (*members.Member, error) {
	const q = `
		SELECT telegram_id, full_name, family_head, phone, whatsapp,
		       status, registered_at, approved_at
		FROM members
		WHERE telegram_id = $1`

	var m members.Member
	if err := s.db.GetContext(ctx, &m, q, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, members.ErrNotFound
		}
		return nil, fmt.Errorf("postgres: get member %d: %w", telegramID, err)
	}
	return &m, nil
}

// Put inserts or replaces the record keyed by Telegram ID.
func (s *MemberStore) Put(ctx context.Context, m *members.Member) error {
	const q = `
		INSERT INTO members (telegram_id, full_name, family_head, phone,
		                     whatsapp, status, registered_at, approved_at)
		VALUES (:telegram_id, :full_name, :family_head, :phone,
		        :whatsapp, :status, :registered_at, :approved_at)
		ON CONFLICT (telegram_id) DO UPDATE SET
			full_name     = EXCLUDED.full_name,
			family_head   = EXCLUDED.family_head,
			phone         = EXCLUDED.phone,
			whatsapp      = EXCLUDED.whatsapp,
			status        = EXCLUDED.status,
			registered_at = EXCLUDED.registered_at,
			approved_at   = EXCLUDED.approved_at`

	if _, err := s.db.NamedExecContext(ctx, q, m); err != nil {
		return fmt.Errorf("postgres: put member %d: %w", m.TelegramID, err)
	}
	return nil
}

// Remove deletes the record. A missing row is not an error.
func (s *MemberStore) Remove(ctx context.Context, telegramID int64) error {
	const q = `DELETE FROM members WHERE telegram_id = $1`
	if _, err := s.db.ExecContext(ctx, q, telegramID); err != nil {
		return fmt.Errorf("postgres: remove member %d: %w", telegramID, err)
	}
	return nil
}

// ListPending returns all pending records in submission order.
func (s *MemberStore) ListPending(ctx context.Context) ([]*members.Member, error) {
	const q = `
		SELECT telegram_id, full_name, family_head, phone, whatsapp,
		       status, registered_at, approved_at
		FROM members
		WHERE status = 'pending'
		ORDER BY registered_at`

	var list []*members.Member
	if err := s.db.SelectContext(ctx, &list, q); err != nil {
		return nil, fmt.Errorf("postgres: list pending: %w", err)
	}
	return list, nil
}

// IsApproved checks approval with a single indexed lookup.
func (s *MemberStore) IsApproved(ctx context.Context, telegramID int64) (bool, error) {
	const q = `SELECT status = 'approved' FROM members WHERE telegram_id = $1`

	var approved bool
	if err := s.db.GetContext(ctx, &approved, q, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("postgres: check member %d: %w", telegramID, err)
	}
	return approved, nil
}
