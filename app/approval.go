package app

import (
	"errors"
	"strconv"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/waznabudget/masarifbot/core/logger"
	"github.com/waznabudget/masarifbot/core/telegram/callbacks"
	tghelpers "github.com/waznabudget/masarifbot/core/telegram/helpers"
	"github.com/waznabudget/masarifbot/core/telegram/keyboard"
	"github.com/waznabudget/masarifbot/core/telegram/middleware"
	"github.com/waznabudget/masarifbot/members"
)

// decision is the decoded payload of a moderator decision button. It is
// parsed once at the callback boundary; everything downstream works with
// typed fields.
type decision struct {
	approve     bool
	requesterID int64
}

func parseDecision(c tele.Context) (decision, bool) {
	requesterID, ok := callbacks.PayloadInt64(c)
	if !ok {
		return decision{}, false
	}
	return decision{
		approve:     callbacks.CallbackKey(c) == cbApprove,
		requesterID: requesterID,
	}, true
}

func decisionMarkup(requesterID int64) *tele.ReplyMarkup {
	payload := strconv.FormatInt(requesterID, 10)
	return keyboard.InlineButtonsRows([]keyboard.InlineBtn{
		{Text: "✅ موافقة", Unique: cbApprove, Data: payload},
		{Text: "❌ رفض", Unique: cbReject, Data: payload},
	})
}

// notifyModerator sends the pending member's review card with decision
// buttons to the configured moderator.
func (a *App) notifyModerator(c tele.Context, m *members.Member) error {
	admin := tele.ChatID(a.cfg.Telegram.AdminID)
	return tghelpers.SendMDTo(c.Bot(), admin, reviewCard(m), decisionMarkup(m.TelegramID))
}

// handlePending re-sends review cards for every undecided registration.
// It lets the moderator recover from lost or stale notification messages.
func (a *App) handlePending(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	pending, err := a.service.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return tghelpers.SendMD(c, msgNoPending)
	}
	for _, m := range pending {
		if err := tghelpers.SendMD(c, reviewCard(m), decisionMarkup(m.TelegramID)); err != nil {
			return err
		}
	}
	return nil
}

// handleDecision processes both approve and reject buttons. Stale or
// duplicate taps answer with a notice and clear the buttons instead of
// re-running the decision.
func (a *App) handleDecision(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	if !middleware.IsAdmin(middleware.AdminOptions{AdminID: a.cfg.Telegram.AdminID}, c) {
		return c.Respond(&tele.CallbackResponse{Text: "غير مصرح لك بهذا الإجراء"})
	}

	d, ok := parseDecision(c)
	if !ok {
		logger.Warn(ctx, "service.approval", "decision.payload.invalid")
		return c.Respond(&tele.CallbackResponse{Text: "بيانات غير صالحة"})
	}

	var (
		m   *members.Member
		err error
	)
	if d.approve {
		m, err = a.service.Approve(ctx, d.requesterID)
	} else {
		m, err = a.service.Reject(ctx, d.requesterID)
	}
	if err != nil {
		if errors.Is(err, members.ErrNotFound) || errors.Is(err, members.ErrNotPending) {
			_ = c.Respond(&tele.CallbackResponse{Text: "تمت معالجة هذا الطلب مسبقاً"})
			return a.clearDecisionButtons(c)
		}
		// Nothing was stored; tell the moderator the tap can be retried.
		_ = c.Respond(&tele.CallbackResponse{Text: "تعذر حفظ القرار، حاول مرة أخرى"})
		return err
	}

	verdict := "❌ تم رفض الطلب"
	if d.approve {
		verdict = "✅ تمت الموافقة"
	}
	if editErr := c.Edit(decidedCard(reviewCard(m), verdict, time.Now()), tele.ModeMarkdown); editErr != nil {
		logger.Warn(ctx, "service.approval", "decision.edit.fail",
			slog.Int64("member_id", d.requesterID),
			slog.String("err", logger.SanitizeLimit(editErr.Error(), 256)),
		)
	}

	if err := a.notifyRequester(c, d); err != nil {
		// The decision is already stored; surface the delivery failure to
		// the moderator instead of failing the handler.
		logger.Warn(ctx, "service.approval", "requester.notify.fail",
			slog.Int64("member_id", d.requesterID),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return c.Respond(&tele.CallbackResponse{Text: "تم حفظ القرار لكن تعذر إخطار العضو"})
	}

	return c.Respond(&tele.CallbackResponse{Text: "تم تنفيذ القرار"})
}

func (a *App) notifyRequester(c tele.Context, d decision) error {
	to := tele.ChatID(d.requesterID)
	if d.approve {
		markup := keyboard.WebAppInline("📊 فتح النظام", a.cfg.WebApp.URL)
		return tghelpers.SendMDTo(c.Bot(), to, msgApprovedNotify, markup)
	}
	return tghelpers.SendMDTo(c.Bot(), to, msgRejectedNotify)
}

// clearDecisionButtons removes stale buttons from an already decided card.
func (a *App) clearDecisionButtons(c tele.Context) error {
	if c.Message() == nil {
		return nil
	}
	_, err := c.Bot().EditReplyMarkup(c.Message(), nil)
	if err != nil && !errors.Is(err, tele.ErrTrueResult) {
		return err
	}
	return nil
}
