package dialogue

import (
	"strings"
	"unicode/utf8"
)

// whatsappSentinels mark the "same as my phone number" shortcut on the
// final step, in the forms family members actually type.
var whatsappSentinels = []string{
	"نفس الرقم",
	"نفس رقم الهاتف",
	"same as phone",
	"same",
}

// nameLike trims the input and accepts it as a name when at least three
// runes remain. Returns the trimmed value.
func nameLike(text string) (string, bool) {
	name := strings.TrimSpace(text)
	if utf8.RuneCountInString(name) < 3 {
		return "", false
	}
	return name, true
}

// phoneLike trims the input and accepts it as a phone number when at least
// ten characters remain after removing spaces and hyphens. The trimmed
// original, separators included, is what gets stored.
func phoneLike(text string) (string, bool) {
	phone := strings.TrimSpace(text)
	digits := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if len(digits) < 10 {
		return "", false
	}
	return phone, true
}

func sameAsPhone(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, s := range whatsappSentinels {
		if text == s {
			return true
		}
	}
	return false
}
