package format

import "strings"

var mdV1Escaper = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"`", "\\`",
)

// EscapeMarkdown escapes Telegram Markdown (V1) special characters so that
// user-supplied text renders literally inside formatted messages.
func EscapeMarkdown(text string) string {
	return mdV1Escaper.Replace(text)
}
