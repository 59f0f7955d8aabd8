package members_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waznabudget/masarifbot/members"
	"github.com/waznabudget/masarifbot/storage/memory"
)

func newMember(id int64) *members.Member {
	return &members.Member{
		TelegramID: id,
		FullName:   "أحمد محمد العلي",
		FamilyHead: "محمد العلي",
		Phone:      "0501234567",
		WhatsApp:   "0501234567",
	}
}

func TestSubmitAndClassify(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())

	access, err := svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessUnregistered, access)

	require.NoError(t, svc.Submit(ctx, newMember(100)))

	access, err = svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessPending, access)

	m, err := svc.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.StatusPending, m.Status)
	assert.False(t, m.RegisteredAt.IsZero())
	assert.Nil(t, m.ApprovedAt)
}

func TestSubmitDuplicateKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())

	first := newMember(100)
	require.NoError(t, svc.Submit(ctx, first))

	second := newMember(100)
	second.FullName = "اسم آخر تماماً"
	err := svc.Submit(ctx, second)
	require.ErrorIs(t, err, members.ErrAlreadyRegistered)

	stored, err := svc.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, first.FullName, stored.FullName)
}

func TestApproveGrantsAccess(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	m, err := svc.Approve(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.StatusApproved, m.Status)
	require.NotNil(t, m.ApprovedAt)
	assert.False(t, m.ApprovedAt.Before(m.RegisteredAt))

	access, err := svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessApproved, access)
}

func TestApproveReplay(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	_, err := svc.Approve(ctx, 100)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, 100)
	assert.ErrorIs(t, err, members.ErrNotPending)

	// the approval must survive the duplicate tap
	access, err := svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessApproved, access)
}

func TestApproveMissing(t *testing.T) {
	svc := members.NewService(memory.NewMemberStore())
	_, err := svc.Approve(context.Background(), 404)
	assert.ErrorIs(t, err, members.ErrNotFound)
}

func TestRejectAllowsReRegistration(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	_, err := svc.Reject(ctx, 100)
	require.NoError(t, err)

	access, err := svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessUnregistered, access)

	// a rejected member starts over from scratch
	require.NoError(t, svc.Submit(ctx, newMember(100)))
}

func TestRejectReplay(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	_, err := svc.Reject(ctx, 100)
	require.NoError(t, err)

	_, err = svc.Reject(ctx, 100)
	assert.ErrorIs(t, err, members.ErrNotFound)
}

func TestRejectApprovedMember(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	_, err := svc.Approve(ctx, 100)
	require.NoError(t, err)

	// a stale reject button must not delete an approved member
	_, err = svc.Reject(ctx, 100)
	assert.ErrorIs(t, err, members.ErrNotPending)

	access, err := svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessApproved, access)
}

func TestConcurrentSubmitSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())

	const goroutines = 16
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Submit(ctx, newMember(100))
		}()
	}
	wg.Wait()
	close(errs)

	var ok, dup int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case err == members.ErrAlreadyRegistered:
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, goroutines-1, dup)
}

func TestConcurrentDecisionsSingleWinner(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	const goroutines = 8
	var wg sync.WaitGroup
	wins := make(chan string, goroutines*2)

	for i := 0; i < goroutines; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.Approve(ctx, 100); err == nil {
				wins <- "approve"
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.Reject(ctx, 100); err == nil {
				wins <- "reject"
			}
		}()
	}
	wg.Wait()
	close(wins)

	var total int
	for range wins {
		total++
	}
	assert.Equal(t, 1, total, "exactly one decision may take effect")
}

func TestClassifyReflectsDecisionImmediately(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())
	require.NoError(t, svc.Submit(ctx, newMember(100)))

	access, err := svc.Classify(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, members.AccessPending, access)

	_, err = svc.Approve(ctx, 100)
	require.NoError(t, err)

	// no caching: the very next classification sees the new status
	access, err = svc.Classify(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, members.AccessApproved, access)
}

func TestPendingListsUndecidedOldestFirst(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())

	older := newMember(100)
	older.RegisteredAt = time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := newMember(200)
	newer.RegisteredAt = time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	approvedSoon := newMember(300)

	require.NoError(t, svc.Submit(ctx, newer))
	require.NoError(t, svc.Submit(ctx, older))
	require.NoError(t, svc.Submit(ctx, approvedSoon))
	_, err := svc.Approve(ctx, 300)
	require.NoError(t, err)

	pending, err := svc.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, int64(100), pending[0].TelegramID)
	assert.Equal(t, int64(200), pending[1].TelegramID)
}

func TestRegisteredAtPreserved(t *testing.T) {
	ctx := context.Background()
	svc := members.NewService(memory.NewMemberStore())

	m := newMember(100)
	m.RegisteredAt = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Submit(ctx, m))

	stored, err := svc.Get(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, m.RegisteredAt, stored.RegisteredAt)
}
