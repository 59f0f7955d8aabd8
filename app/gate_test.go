package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/waznabudget/masarifbot/core/telegram/state"
	"github.com/waznabudget/masarifbot/dialogue"
	"github.com/waznabudget/masarifbot/members"
	"github.com/waznabudget/masarifbot/storage/memory"
)

// botContext fakes the part of tele.Context the app handlers use, recording
// outgoing traffic so tests can assert on it.
type botContext struct {
	tele.Context
	sender   *tele.User
	text     string
	callback *tele.Callback
	sent     []string
	edited   []string
	responds []string
	store    map[string]interface{}
}

func newBotContext(userID int64, text string) *botContext {
	return &botContext{
		sender: &tele.User{ID: userID},
		text:   text,
		store:  make(map[string]interface{}),
	}
}

func (c *botContext) Update() tele.Update      { return tele.Update{ID: 1, Callback: c.callback} }
func (c *botContext) Sender() *tele.User       { return c.sender }
func (c *botContext) Chat() *tele.Chat         { return &tele.Chat{ID: c.sender.ID} }
func (c *botContext) Text() string             { return c.text }
func (c *botContext) Callback() *tele.Callback { return c.callback }

func (c *botContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func (c *botContext) Edit(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		c.edited = append(c.edited, s)
	}
	return nil
}

func (c *botContext) Respond(resp ...*tele.CallbackResponse) error {
	text := ""
	if len(resp) > 0 && resp[0] != nil {
		text = resp[0].Text
	}
	c.responds = append(c.responds, text)
	return nil
}

func (c *botContext) Get(key string) interface{} { return c.store[key] }

func (c *botContext) Set(key string, val interface{}) { c.store[key] = val }

func newTestApp(store members.Store) *App {
	states := state.NewMemoryManager()
	cfg := &BotConfig{}
	cfg.Telegram.AdminID = 99
	cfg.WebApp.URL = "https://budget.example.com"
	return &App{
		cfg:     cfg,
		service: members.NewService(store),
		states:  states,
		engine:  dialogue.NewEngine(states),
	}
}

func TestStartUnregisteredOffersOptIn(t *testing.T) {
	a := newTestApp(memory.NewMemberStore())
	c := newBotContext(7, "/start")

	require.NoError(t, a.handleStart(c))

	assert.False(t, a.engine.Active(7), "dialogue must not open without explicit opt-in")
	require.Len(t, c.sent, 1)
	assert.Contains(t, c.sent[0], "التسجيل")
}

func TestRegisterButtonOpensDialogue(t *testing.T) {
	a := newTestApp(memory.NewMemberStore())
	c := newBotContext(7, "")
	c.callback = &tele.Callback{Data: "\f" + cbRegisterStart}

	require.NoError(t, a.handleRegisterStart(c))

	assert.True(t, a.engine.Active(7))
	require.Len(t, c.edited, 1)
	assert.Equal(t, dialogue.PromptFullName, c.edited[0])
	assert.Len(t, c.responds, 1)
}

func TestRegisterButtonWhilePending(t *testing.T) {
	a := newTestApp(memory.NewMemberStore())
	m := newTestMember()
	m.TelegramID = 7
	require.NoError(t, a.service.Submit(context.Background(), m))

	c := newBotContext(7, "")
	c.callback = &tele.Callback{Data: "\f" + cbRegisterStart}

	require.NoError(t, a.handleRegisterStart(c))

	assert.False(t, a.engine.Active(7))
	assert.Empty(t, c.edited)
	require.Len(t, c.responds, 1)
	assert.Contains(t, c.responds[0], "قيد المراجعة")
}

func TestCancelButtonAnswersOnce(t *testing.T) {
	a := newTestApp(memory.NewMemberStore())
	a.engine.Start(7)

	c := newBotContext(7, "")
	c.callback = &tele.Callback{Data: "\f" + cbRegisterCancel}

	require.NoError(t, a.handleCancelButton(c))

	assert.False(t, a.engine.Active(7))
	require.Len(t, c.edited, 1)
	assert.Equal(t, dialogue.PromptCancelled, c.edited[0])
	assert.Len(t, c.responds, 1)
}

// flakyStore serves reads but fails every write.
type flakyStore struct {
	member *members.Member
	err    error
}

func (s *flakyStore) Get(_ context.Context, id int64) (*members.Member, error) {
	if s.member == nil || s.member.TelegramID != id {
		return nil, members.ErrNotFound
	}
	out := *s.member
	return &out, nil
}

func (s *flakyStore) Put(context.Context, *members.Member) error { return s.err }

func (s *flakyStore) Remove(context.Context, int64) error { return s.err }

func (s *flakyStore) IsApproved(context.Context, int64) (bool, error) { return false, nil }

func (s *flakyStore) ListPending(context.Context) ([]*members.Member, error) {
	return nil, nil
}

func TestDecisionStoreFailureNotifiesModerator(t *testing.T) {
	store := &flakyStore{member: newTestMember(), err: errors.New("connection reset")}
	a := newTestApp(store)

	c := newBotContext(99, "")
	c.callback = &tele.Callback{Data: "\f" + cbApprove + "|42"}

	err := a.handleDecision(c)
	require.Error(t, err)
	require.Len(t, c.responds, 1)
	assert.Contains(t, c.responds[0], "تعذر حفظ القرار")
}

func TestDecisionRefusedForNonModerator(t *testing.T) {
	a := newTestApp(memory.NewMemberStore())

	c := newBotContext(7, "")
	c.callback = &tele.Callback{Data: "\f" + cbApprove + "|42"}

	require.NoError(t, a.handleDecision(c))
	require.Len(t, c.responds, 1)
	assert.Contains(t, c.responds[0], "غير مصرح")
}
