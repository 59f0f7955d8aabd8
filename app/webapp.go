package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/waznabudget/masarifbot/core/logger"
	"github.com/waznabudget/masarifbot/core/telegram/format"
	tghelpers "github.com/waznabudget/masarifbot/core/telegram/helpers"
	"github.com/waznabudget/masarifbot/members"
)

const valueUnset = "غير محدد"

// handleWebAppData echoes a budget summary for data submitted from the web
// app. Access is gated the same way as the commands that open the app.
func (a *App) handleWebAppData(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	access, err := a.service.Classify(ctx, c.Sender().ID)
	if err != nil {
		return err
	}
	switch access {
	case members.AccessPending:
		return tghelpers.SendMD(c, msgPendingNotice)
	case members.AccessUnregistered:
		return tghelpers.SendMD(c, msgRegisterInvite, registerMarkup())
	}

	msg := c.Message()
	if msg == nil || msg.WebAppData == nil {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(msg.WebAppData.Data), &data); err != nil {
		logger.Warn(ctx, "tg", "webapp.data.invalid",
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return tghelpers.SendText(c, msgWebAppError)
	}

	var first string
	if s := c.Sender(); s != nil {
		first = s.FirstName
	}

	logger.Info(ctx, "tg", "webapp.data.received",
		slog.Int64("user_id", c.Sender().ID),
	)
	return tghelpers.SendMD(c, budgetSummary(first, data))
}

func budgetSummary(firstName string, data map[string]any) string {
	income := fieldString(data, "monthly_income")
	expenses := fieldString(data, "monthly_expenses")
	surplus := fieldString(data, "net_surplus")
	emoji, status := surplusStatus(surplus)

	return fmt.Sprintf(`📊 *ملخص ميزانية %s*

💰 الدخل الشهري: %s
💳 المصاريف الشهرية: %s
%s صافي الفائض: %s

📌 الحالة: %s

⏰ الوقت: %s

✅ تم حفظ بياناتك!`,
		format.EscapeMarkdown(firstName),
		income, expenses, emoji, surplus, status,
		time.Now().Format("2006-01-02 15:04"),
	)
}

func fieldString(data map[string]any, key string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return valueUnset
	}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return valueUnset
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func surplusStatus(surplus string) (emoji, text string) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(surplus, ",", ""), 64)
	if err != nil {
		return "ℹ️", valueUnset
	}
	switch {
	case v > 0:
		return "✅", "وضع جيد - لديك فائض"
	case v == 0:
		return "⚖️", "وضع متوازن"
	default:
		return "⚠️", "انتبه - لديك عجز"
	}
}
