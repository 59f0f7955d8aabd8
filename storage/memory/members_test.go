package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waznabudget/masarifbot/members"
	"github.com/waznabudget/masarifbot/storage/memory"
)

func TestGetMissing(t *testing.T) {
	store := memory.NewMemberStore()
	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, members.ErrNotFound)
}

func TestPutGetRemove(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMemberStore()

	m := &members.Member{
		TelegramID: 1,
		FullName:   "سارة خالد",
		Status:     members.StatusPending,
	}
	require.NoError(t, store.Put(ctx, m))

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, m.FullName, got.FullName)

	// Get returns a copy; mutating it must not affect the store
	got.FullName = "مُعدّل"
	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "سارة خالد", again.FullName)

	require.NoError(t, store.Remove(ctx, 1))
	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, members.ErrNotFound)

	// removing an absent record is fine
	require.NoError(t, store.Remove(ctx, 1))
}

func TestIsApproved(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMemberStore()

	ok, err := store.IsApproved(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, &members.Member{TelegramID: 1, Status: members.StatusPending}))
	ok, err = store.IsApproved(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, &members.Member{TelegramID: 1, Status: members.StatusApproved}))
	ok, err = store.IsApproved(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
