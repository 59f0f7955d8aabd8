package router

import (
	"time"

	tg "github.com/waznabudget/masarifbot/core/telegram"
	"github.com/waznabudget/masarifbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for an FSM manager.
type FSM interface {
	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}

// TextOptions controls routing of text updates. Admin carries the same
// moderator check CommandRoutes applies, so admin-only commands stay gated
// when they arrive as plain text instead of a slash command.
type TextOptions struct {
	UnknownText tele.HandlerFunc
	Admin       middleware.AdminOptions
}

// TextRoutes builds the handler for plain text routing. Text belonging to a
// user with a dialogue in progress goes to the FSM manager; everything else
// is matched against registered commands, then the unknown-text fallback.
func TextRoutes(fsmMgr FSM, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.ManagerHandler(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				h := cmd.Handler
				if cmd.AdminOnly {
					h = middleware.AdminOnlyMiddleware(opts.Admin)(h)
				}
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return h(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}

// WebAppRoute wraps a web app data handler with the shared middleware chain.
func WebAppRoute(h tele.HandlerFunc) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		return handleWithSummary(c, "web_app_data", start, "", "", func() error {
			return h(c)
		})
	}
	return tg.Route{
		Endpoint: tele.OnWebApp,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
