package router

import (
	"testing"

	tg "github.com/waznabudget/masarifbot/core/telegram"
	"github.com/waznabudget/masarifbot/core/telegram/commands"
	"github.com/waznabudget/masarifbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// routeContext fakes the slice of tele.Context the routing layer touches.
// Unimplemented methods panic through the embedded nil interface, which
// keeps the fake honest about what routing is allowed to call.
type routeContext struct {
	tele.Context
	update   tele.Update
	sender   *tele.User
	text     string
	callback *tele.Callback
	responds int
	store    map[string]interface{}
}

var fakeUpdateID = 1000

func newRouteContext(userID int64, text string) *routeContext {
	fakeUpdateID++
	return &routeContext{
		update: tele.Update{ID: fakeUpdateID},
		sender: &tele.User{ID: userID},
		text:   text,
		store:  make(map[string]interface{}),
	}
}

func (c *routeContext) Update() tele.Update      { return c.update }
func (c *routeContext) Sender() *tele.User       { return c.sender }
func (c *routeContext) Chat() *tele.Chat         { return &tele.Chat{ID: c.sender.ID} }
func (c *routeContext) Text() string             { return c.text }
func (c *routeContext) Callback() *tele.Callback { return c.callback }

func (c *routeContext) Respond(_ ...*tele.CallbackResponse) error {
	c.responds++
	return nil
}

func (c *routeContext) Get(key string) interface{} { return c.store[key] }

func (c *routeContext) Set(key string, val interface{}) { c.store[key] = val }

func TestTextRouteGatesAdminOnlyCommands(t *testing.T) {
	reg := tg.NewRegistry()
	invoked := false
	reg.RegisterCommand("/pending", commands.Command{
		Description: "list pending registrations",
		AdminOnly:   true,
		Handler: func(tele.Context) error {
			invoked = true
			return nil
		},
	})

	routes := TextRoutes(nil, reg, TextOptions{
		Admin: middleware.AdminOptions{AdminID: 99},
	})
	handler := routes[0].Handler

	if err := handler(newRouteContext(7, "pending")); err != nil {
		t.Fatalf("non-admin text lookup: %v", err)
	}
	if invoked {
		t.Fatal("admin-only handler ran for a non-admin sender")
	}

	if err := handler(newRouteContext(99, "pending")); err != nil {
		t.Fatalf("admin text lookup: %v", err)
	}
	if !invoked {
		t.Fatal("admin-only handler did not run for the moderator")
	}
}

func TestTextRouteRunsPlainCommandsForAnySender(t *testing.T) {
	reg := tg.NewRegistry()
	invoked := false
	reg.RegisterCommand("/help", commands.Command{
		Description: "show help",
		Handler: func(tele.Context) error {
			invoked = true
			return nil
		},
	})

	routes := TextRoutes(nil, reg, TextOptions{
		Admin: middleware.AdminOptions{AdminID: 99},
	})
	if err := routes[0].Handler(newRouteContext(7, "help")); err != nil {
		t.Fatalf("text lookup: %v", err)
	}
	if !invoked {
		t.Fatal("plain command handler did not run")
	}
}

func TestCallbackRouteAnswersOncePerQuery(t *testing.T) {
	reg := tg.NewRegistry()
	if err := reg.RegisterCallback("noop", func(c tele.Context) error {
		return c.Respond(&tele.CallbackResponse{Text: "done"})
	}); err != nil {
		t.Fatalf("register callback: %v", err)
	}

	route := CallbackRoute(reg, CallbackOptions{})
	c := newRouteContext(7, "")
	c.callback = &tele.Callback{Unique: "noop"}
	c.update.Callback = c.callback

	if err := route.Handler(c); err != nil {
		t.Fatalf("callback route: %v", err)
	}
	if c.responds != 1 {
		t.Fatalf("callback answered %d times, want exactly 1", c.responds)
	}
}

func TestCallbackRouteUnknownKeyStillAnswers(t *testing.T) {
	route := CallbackRoute(tg.NewRegistry(), CallbackOptions{})
	c := newRouteContext(7, "")
	c.callback = &tele.Callback{Unique: "missing"}
	c.update.Callback = c.callback

	if err := route.Handler(c); err != nil {
		t.Fatalf("callback route: %v", err)
	}
	if c.responds != 1 {
		t.Fatalf("unknown callback answered %d times, want exactly 1", c.responds)
	}
}
