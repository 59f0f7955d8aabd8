package dialogue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waznabudget/masarifbot/core/telegram/state"
	"github.com/waznabudget/masarifbot/dialogue"
	"github.com/waznabudget/masarifbot/members"
)

const userID int64 = 42

func newEngine() (*dialogue.Engine, state.Manager) {
	mgr := state.NewMemoryManager()
	return dialogue.NewEngine(mgr), mgr
}

func TestFullFlow(t *testing.T) {
	eng, _ := newEngine()

	res := eng.Start(userID)
	assert.Equal(t, dialogue.PromptFullName, res.Prompt)
	assert.True(t, eng.Active(userID))

	res, err := eng.Handle(userID, "أحمد محمد العلي")
	require.NoError(t, err)
	assert.Equal(t, dialogue.PromptFamilyHead, res.Prompt)

	res, err = eng.Handle(userID, "محمد العلي")
	require.NoError(t, err)
	assert.Equal(t, dialogue.PromptPhone, res.Prompt)

	res, err = eng.Handle(userID, "0501234567")
	require.NoError(t, err)
	assert.Equal(t, dialogue.PromptWhatsapp, res.Prompt)

	res, err = eng.Handle(userID, "0559876543")
	require.NoError(t, err)
	require.True(t, res.Done)
	require.NotNil(t, res.Member)

	m := res.Member
	assert.Equal(t, userID, m.TelegramID)
	assert.Equal(t, "أحمد محمد العلي", m.FullName)
	assert.Equal(t, "محمد العلي", m.FamilyHead)
	assert.Equal(t, "0501234567", m.Phone)
	assert.Equal(t, "0559876543", m.WhatsApp)
	assert.Equal(t, members.StatusPending, m.Status)
	assert.False(t, m.RegisteredAt.IsZero())

	assert.False(t, eng.Active(userID), "completed dialogue must release the session")
}

func TestWhatsappSameAsPhone(t *testing.T) {
	for _, sentinel := range []string{"نفس الرقم", "نفس رقم الهاتف", "Same as phone", "  same  "} {
		eng, _ := newEngine()
		eng.Start(userID)

		_, err := eng.Handle(userID, "أحمد محمد")
		require.NoError(t, err)
		_, err = eng.Handle(userID, "محمد العلي")
		require.NoError(t, err)
		_, err = eng.Handle(userID, "0501234567")
		require.NoError(t, err)

		res, err := eng.Handle(userID, sentinel)
		require.NoError(t, err)
		require.True(t, res.Done, "sentinel %q", sentinel)
		assert.Equal(t, "0501234567", res.Member.WhatsApp)
	}
}

func TestInvalidInputRePromptsWithoutAdvancing(t *testing.T) {
	eng, mgr := newEngine()
	eng.Start(userID)

	res, err := eng.Handle(userID, "اب")
	require.NoError(t, err)
	assert.Equal(t, dialogue.RejectFullName, res.Prompt)
	assert.Equal(t, dialogue.StateAwaitingFullName, mgr.GetState(userID))

	// valid input still accepted after the re-prompt
	res, err = eng.Handle(userID, "أحمد محمد")
	require.NoError(t, err)
	assert.Equal(t, dialogue.PromptFamilyHead, res.Prompt)
}

func TestInvalidPhoneRePrompts(t *testing.T) {
	eng, mgr := newEngine()
	eng.Start(userID)

	_, err := eng.Handle(userID, "أحمد محمد")
	require.NoError(t, err)
	_, err = eng.Handle(userID, "محمد العلي")
	require.NoError(t, err)

	res, err := eng.Handle(userID, "12345")
	require.NoError(t, err)
	assert.Equal(t, dialogue.RejectPhone, res.Prompt)
	assert.Equal(t, dialogue.StateAwaitingPhone, mgr.GetState(userID))
}

func TestPhoneAcceptsSeparators(t *testing.T) {
	eng, _ := newEngine()
	eng.Start(userID)

	_, err := eng.Handle(userID, "أحمد محمد")
	require.NoError(t, err)
	_, err = eng.Handle(userID, "محمد العلي")
	require.NoError(t, err)

	// separators do not count toward the length but are kept in the value
	res, err := eng.Handle(userID, "050-123-4567")
	require.NoError(t, err)
	assert.Equal(t, dialogue.PromptWhatsapp, res.Prompt)

	res, err = eng.Handle(userID, "نفس الرقم")
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "050-123-4567", res.Member.Phone)
}

func TestCancelClearsSession(t *testing.T) {
	eng, mgr := newEngine()
	eng.Start(userID)

	_, err := eng.Handle(userID, "أحمد محمد")
	require.NoError(t, err)

	res, ok := eng.Cancel(userID)
	require.True(t, ok)
	assert.True(t, res.Cancelled)
	assert.Equal(t, dialogue.PromptCancelled, res.Prompt)
	assert.False(t, eng.Active(userID))
	assert.Equal(t, state.StateIdle, mgr.GetState(userID))

	_, ok = eng.Cancel(userID)
	assert.False(t, ok, "nothing left to cancel")
}

func TestHandleWithoutDialogue(t *testing.T) {
	eng, _ := newEngine()
	_, err := eng.Handle(userID, "مرحبا")
	assert.ErrorIs(t, err, dialogue.ErrNoDialogue)
}

func TestStartDiscardsStaleAnswers(t *testing.T) {
	eng, _ := newEngine()
	eng.Start(userID)

	_, err := eng.Handle(userID, "اسم قديم")
	require.NoError(t, err)

	// restarting returns to the first step with a clean slate
	res := eng.Start(userID)
	assert.Equal(t, dialogue.PromptFullName, res.Prompt)

	_, err = eng.Handle(userID, "أحمد محمد")
	require.NoError(t, err)
	_, err = eng.Handle(userID, "محمد العلي")
	require.NoError(t, err)
	_, err = eng.Handle(userID, "0501234567")
	require.NoError(t, err)
	res, err = eng.Handle(userID, "نفس الرقم")
	require.NoError(t, err)
	require.True(t, res.Done)
	assert.Equal(t, "أحمد محمد", res.Member.FullName)
}
