package app

import (
	"errors"
	"strings"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/waznabudget/masarifbot/core/logger"
	tghelpers "github.com/waznabudget/masarifbot/core/telegram/helpers"
	"github.com/waznabudget/masarifbot/core/telegram/keyboard"
	"github.com/waznabudget/masarifbot/dialogue"
	"github.com/waznabudget/masarifbot/members"
)

// handleStart welcomes approved members, reminds pending ones, and invites
// everyone else to register. The dialogue itself only opens from the invite
// button, never from /start directly.
func (a *App) handleStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	access, err := a.service.Classify(ctx, userID)
	if err != nil {
		return err
	}

	switch access {
	case members.AccessApproved:
		var first string
		if s := c.Sender(); s != nil {
			first = s.FirstName
		}
		return tghelpers.SendMD(c, msgWelcome(first), keyboard.WebAppInline("📊 إدارة الميزانية", a.cfg.WebApp.URL))
	case members.AccessPending:
		return tghelpers.SendMD(c, msgPendingNotice)
	default:
		return tghelpers.SendMD(c, msgRegisterInvite, registerMarkup())
	}
}

// registerMarkup carries the explicit opt-in button attached to every
// registration invite.
func registerMarkup() *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "📝 تسجيل", Unique: cbRegisterStart},
	})
}

// handleRegisterStart opens the registration dialogue when the invited user
// taps the register button. Registration never starts without this explicit
// opt-in. Access is re-checked at tap time because the invite message may
// outlive the user's status.
func (a *App) handleRegisterStart(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	access, err := a.service.Classify(ctx, userID)
	if err != nil {
		return err
	}
	switch access {
	case members.AccessApproved:
		return c.Respond(&tele.CallbackResponse{Text: "أنت عضو معتمد بالفعل"})
	case members.AccessPending:
		return c.Respond(&tele.CallbackResponse{Text: "طلبك قيد المراجعة"})
	}

	res := a.engine.Start(userID)
	if err := tghelpers.EditMD(c, res.Prompt, keyboard.SingleCancelMarkup(cbRegisterCancel)); err != nil {
		return err
	}
	return c.Respond()
}

// handleBudget is gated: only approved members get the web app button.
func (a *App) handleBudget(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	access, err := a.service.Classify(ctx, c.Sender().ID)
	if err != nil {
		return err
	}

	switch access {
	case members.AccessApproved:
		return tghelpers.SendMD(c, msgBudget, keyboard.WebAppInline("📊 فتح النظام", a.cfg.WebApp.URL))
	case members.AccessPending:
		return tghelpers.SendMD(c, msgPendingNotice)
	default:
		return tghelpers.SendMD(c, msgRegisterInvite, registerMarkup())
	}
}

func (a *App) handleHelp(c tele.Context) error {
	return tghelpers.SendMD(c, msgHelp)
}

func (a *App) handleCancel(c tele.Context) error {
	res, ok := a.engine.Cancel(c.Sender().ID)
	if !ok {
		return tghelpers.SendMD(c, msgNoDialogue)
	}
	return tghelpers.SendMD(c, res.Prompt)
}

// handleCancelButton aborts the dialogue from the inline cancel button,
// replacing the prompt that carried it.
func (a *App) handleCancelButton(c tele.Context) error {
	res, ok := a.engine.Cancel(c.Sender().ID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "لا يوجد تسجيل جارٍ"})
	}
	if err := tghelpers.EditMD(c, res.Prompt); err != nil {
		return err
	}
	return c.Respond()
}

// cancelWords abort the dialogue when typed instead of an answer.
var cancelWords = []string{"/cancel", "إلغاء", "الغاء", "cancel"}

func isCancelText(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, w := range cancelWords {
		if text == w {
			return true
		}
	}
	return false
}

// handleDialogueText receives every text update from a user with an active
// registration dialogue and advances it one step.
func (a *App) handleDialogueText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	text := c.Text()

	if isCancelText(text) {
		return a.handleCancel(c)
	}

	res, err := a.engine.Handle(userID, text)
	if err != nil {
		if errors.Is(err, dialogue.ErrNoDialogue) {
			return tghelpers.SendMD(c, msgUnknownText)
		}
		return err
	}
	if !res.Done {
		return tghelpers.SendMD(c, res.Prompt, keyboard.SingleCancelMarkup(cbRegisterCancel))
	}

	if err := a.service.Submit(ctx, res.Member); err != nil {
		if errors.Is(err, members.ErrAlreadyRegistered) {
			return tghelpers.SendMD(c, msgAlreadyRegistered)
		}
		_ = tghelpers.SendMD(c, msgSubmitError)
		return err
	}

	if err := a.notifyModerator(c, res.Member); err != nil {
		logger.Warn(ctx, "service.approval", "moderator.notify.fail",
			slog.Int64("member_id", res.Member.TelegramID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}

	return tghelpers.SendMD(c, msgSubmitted)
}

// handleUnknownText answers free text outside any dialogue.
func (a *App) handleUnknownText(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	access, err := a.service.Classify(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	if access == members.AccessUnregistered {
		return tghelpers.SendMD(c, msgRegisterInvite, registerMarkup())
	}
	return tghelpers.SendMD(c, msgUnknownText)
}
