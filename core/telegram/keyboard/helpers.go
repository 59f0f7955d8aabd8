package keyboard

import tele "gopkg.in/telebot.v4"

// InlineBtn describes a convenience wrapper for inline button properties.
type InlineBtn struct {
	Text   string
	Unique string
	Data   string
}

const defaultCancelButtonText = "❌ إلغاء"

// InlineButtonsRows builds an inline keyboard from rows of InlineBtn.
func InlineButtonsRows(rows ...[]InlineBtn) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	inline := make([][]tele.InlineButton, len(rows))
	for i, row := range rows {
		r := make([]tele.InlineButton, len(row))
		for j, btn := range row {
			r[j] = *markup.Data(btn.Text, btn.Unique, btn.Data).Inline()
		}
		inline[i] = r
	}
	markup.InlineKeyboard = inline
	return markup
}

// WebAppInline builds an inline keyboard with a single button opening the
// given web app URL.
func WebAppInline(label, url string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	btn := markup.WebApp(label, &tele.WebApp{URL: url})
	markup.InlineKeyboard = [][]tele.InlineButton{{*btn.Inline()}}
	return markup
}

// SingleCancelMarkup creates an inline keyboard with a single cancel button.
// Optional arguments override payload (first value) and button label (second value).
func SingleCancelMarkup(action string, options ...string) *tele.ReplyMarkup {
	payload := "cancel"
	if len(options) > 0 && options[0] != "" {
		payload = options[0]
	}
	text := defaultCancelButtonText
	if len(options) > 1 && options[1] != "" {
		text = options[1]
	}
	markup := &tele.ReplyMarkup{}
	btn := markup.Data(text, action, payload)
	markup.InlineKeyboard = [][]tele.InlineButton{{*btn.Inline()}}
	return markup
}
