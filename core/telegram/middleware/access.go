package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how moderator-only checks should behave.
type AdminOptions struct {
	AdminID  int64
	OnReject tele.HandlerFunc
}

// IsAdmin reports whether the update sender is the configured moderator.
func IsAdmin(opts AdminOptions, c tele.Context) bool {
	sender := c.Sender()
	return sender != nil && opts.AdminID != 0 && sender.ID == opts.AdminID
}

// AdminOnlyMiddleware ensures that only the moderator can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !IsAdmin(opts, c) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
