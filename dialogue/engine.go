// Package dialogue drives the registration conversation as a finite state
// machine. The engine is pure with respect to Telegram: it consumes text and
// produces prompts, so tests exercise it without a bot.
package dialogue

import (
	"errors"
	"time"

	"github.com/waznabudget/masarifbot/core/telegram/state"
	"github.com/waznabudget/masarifbot/members"
)

// Dialogue states. One registration step each, traversed in order.
const (
	StateAwaitingFullName   state.State = "register:full_name"
	StateAwaitingFamilyHead state.State = "register:family_head"
	StateAwaitingPhone      state.State = "register:phone"
	StateAwaitingWhatsapp   state.State = "register:whatsapp"
)

// Temp-data keys for answers collected so far.
const (
	tempFullName   = "register.full_name"
	tempFamilyHead = "register.family_head"
	tempPhone      = "register.phone"
)

// ErrNoDialogue is returned when Handle is called for a user without an
// active registration conversation.
var ErrNoDialogue = errors.New("dialogue: no active dialogue")

// Result is the engine's reaction to one user input.
type Result struct {
	// Prompt is the text to send back to the user.
	Prompt string
	// Done is set when the final step was answered; Member carries the
	// assembled record, not yet persisted.
	Done   bool
	Member *members.Member
	// Cancelled is set when the conversation was abandoned by the user.
	Cancelled bool
}

// Engine advances registration dialogues over a session state manager.
type Engine struct {
	states state.Manager
}

// NewEngine binds the dialogue script to a session manager.
func NewEngine(states state.Manager) *Engine {
	return &Engine{states: states}
}

// Active reports whether the user has a registration dialogue in progress.
func (e *Engine) Active(userID int64) bool {
	switch e.states.GetState(userID) {
	case StateAwaitingFullName, StateAwaitingFamilyHead, StateAwaitingPhone, StateAwaitingWhatsapp:
		return true
	}
	return false
}

// Start opens a fresh dialogue at the first step. Any leftovers from an
// earlier abandoned conversation are discarded.
func (e *Engine) Start(userID int64) Result {
	e.states.Clear(userID)
	e.states.SetState(userID, StateAwaitingFullName)
	return Result{Prompt: PromptFullName}
}

// Cancel abandons the dialogue and clears collected answers. It reports
// false when there was nothing to cancel.
func (e *Engine) Cancel(userID int64) (Result, bool) {
	if !e.Active(userID) {
		return Result{}, false
	}
	e.states.Clear(userID)
	return Result{Prompt: PromptCancelled, Cancelled: true}, true
}

// Handle feeds one text input into the dialogue. Invalid input re-prompts
// the current step and leaves state and collected answers untouched.
func (e *Engine) Handle(userID int64, text string) (Result, error) {
	switch e.states.GetState(userID) {
	case StateAwaitingFullName:
		return e.handleFullName(userID, text), nil
	case StateAwaitingFamilyHead:
		return e.handleFamilyHead(userID, text), nil
	case StateAwaitingPhone:
		return e.handlePhone(userID, text), nil
	case StateAwaitingWhatsapp:
		return e.handleWhatsapp(userID, text), nil
	}
	return Result{}, ErrNoDialogue
}

func (e *Engine) handleFullName(userID int64, text string) Result {
	name, ok := nameLike(text)
	if !ok {
		return Result{Prompt: RejectFullName}
	}
	e.states.SetTemp(userID, tempFullName, name)
	e.states.SetState(userID, StateAwaitingFamilyHead)
	return Result{Prompt: PromptFamilyHead}
}

func (e *Engine) handleFamilyHead(userID int64, text string) Result {
	name, ok := nameLike(text)
	if !ok {
		return Result{Prompt: RejectFamilyHead}
	}
	e.states.SetTemp(userID, tempFamilyHead, name)
	e.states.SetState(userID, StateAwaitingPhone)
	return Result{Prompt: PromptPhone}
}

func (e *Engine) handlePhone(userID int64, text string) Result {
	phone, ok := phoneLike(text)
	if !ok {
		return Result{Prompt: RejectPhone}
	}
	e.states.SetTemp(userID, tempPhone, phone)
	e.states.SetState(userID, StateAwaitingWhatsapp)
	return Result{Prompt: PromptWhatsapp}
}

func (e *Engine) handleWhatsapp(userID int64, text string) Result {
	var whatsapp string
	if sameAsPhone(text) {
		whatsapp, _ = e.states.GetTempString(userID, tempPhone)
	} else {
		var ok bool
		whatsapp, ok = phoneLike(text)
		if !ok {
			return Result{Prompt: RejectWhatsapp}
		}
	}

	fullName, _ := e.states.GetTempString(userID, tempFullName)
	familyHead, _ := e.states.GetTempString(userID, tempFamilyHead)
	phone, _ := e.states.GetTempString(userID, tempPhone)
	e.states.Clear(userID)

	return Result{
		Done: true,
		Member: &members.Member{
			TelegramID:   userID,
			FullName:     fullName,
			FamilyHead:   familyHead,
			Phone:        phone,
			WhatsApp:     whatsapp,
			Status:       members.StatusPending,
			RegisteredAt: time.Now().UTC(),
		},
	}
}
