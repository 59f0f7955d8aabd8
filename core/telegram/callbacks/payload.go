package callbacks

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// ParseCallbackData splits raw telebot callback data into the registered
// unique key and its payload. Telebot prefixes data with "\f" and separates
// the unique from the payload with "|".
func ParseCallbackData(data string) (unique, payload string) {
	data = strings.TrimPrefix(data, "\f")
	if idx := strings.Index(data, "|"); idx >= 0 {
		return data[:idx], data[idx+1:]
	}
	return data, ""
}

// CallbackKey extracts the registered unique from a callback context.
func CallbackKey(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	unique, _ := ParseCallbackData(cb.Data)
	return unique
}

// CallbackPayload extracts the payload part from a callback context.
func CallbackPayload(c tele.Context) string {
	cb := c.Callback()
	if cb == nil {
		return ""
	}
	_, payload := ParseCallbackData(cb.Data)
	return payload
}

// PayloadInt64 parses the callback payload as a decimal int64.
// A missing or malformed payload yields ok=false.
func PayloadInt64(c tele.Context) (int64, bool) {
	payload := CallbackPayload(c)
	if payload == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
