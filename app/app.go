// Package app assembles the masarif bot: registration dialogue, access
// gating, moderator approvals, and the budget web app surface.
package app

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/waznabudget/masarifbot/core/config"
	corehealth "github.com/waznabudget/masarifbot/core/health"
	tg "github.com/waznabudget/masarifbot/core/telegram"
	"github.com/waznabudget/masarifbot/core/telegram/commands"
	"github.com/waznabudget/masarifbot/core/telegram/middleware"
	"github.com/waznabudget/masarifbot/core/telegram/router"
	tgsender "github.com/waznabudget/masarifbot/core/telegram/sender"
	"github.com/waznabudget/masarifbot/core/telegram/state"
	"github.com/waznabudget/masarifbot/dialogue"
	"github.com/waznabudget/masarifbot/members"
	"github.com/waznabudget/masarifbot/storage/postgres"
)

// Callback keys for moderator decision buttons and the registration
// opt-in and cancel buttons.
const (
	cbApprove        = "member_approve"
	cbReject         = "member_reject"
	cbRegisterStart  = "register_start"
	cbRegisterCancel = "register_cancel"
)

// App wires the member service and dialogue engine into the bot runtime.
type App struct {
	cfg     *BotConfig
	db      *sqlx.DB
	service *members.Service
	states  state.Manager
	engine  *dialogue.Engine
	reg     *tg.Registry
	health  *corehealth.Server
}

// New assembles the application on top of an open database connection.
func New(cfg *BotConfig, db *sqlx.DB) *App {
	states := state.NewMemoryManager()
	a := &App{
		cfg:     cfg,
		db:      db,
		service: members.NewService(postgres.NewMemberStore(db)),
		states:  states,
		engine:  dialogue.NewEngine(states),
		reg:     tg.NewRegistry(),
	}
	if cfg.Health.Enabled {
		a.health = corehealth.New(cfg.Health.Port)
	}
	a.registerCommands()
	a.registerCallbacks()
	a.registerDialogueStates()
	return a
}

// CoreConfig exposes the embedded core configuration for the cmd runner.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg.CoreConfig()
}

func (a *App) registerCommands() {
	a.reg.RegisterCommand("/start", commands.Command{
		Description: "بدء البوت والتسجيل",
		Handler:     a.handleStart,
	})
	a.reg.RegisterCommand("/budget", commands.Command{
		Description: "فتح نظام الميزانية",
		Handler:     a.handleBudget,
	})
	a.reg.RegisterCommand("/help", commands.Command{
		Description: "عرض المساعدة",
		Handler:     a.handleHelp,
	})
	a.reg.RegisterCommand("/cancel", commands.Command{
		Description: "إلغاء التسجيل الجاري",
		Hidden:      true,
		Handler:     a.handleCancel,
	})
	a.reg.RegisterCommand("/pending", commands.Command{
		Description: "عرض طلبات التسجيل المعلقة",
		AdminOnly:   true,
		Handler:     a.handlePending,
	})
}

func (a *App) registerCallbacks() {
	_ = a.reg.RegisterCallback(cbApprove, a.handleDecision)
	_ = a.reg.RegisterCallback(cbReject, a.handleDecision)
	_ = a.reg.RegisterCallback(cbRegisterStart, a.handleRegisterStart)
	_ = a.reg.RegisterCallback(cbRegisterCancel, a.handleCancelButton)
}

func (a *App) registerDialogueStates() {
	for _, st := range []state.State{
		dialogue.StateAwaitingFullName,
		dialogue.StateAwaitingFamilyHead,
		dialogue.StateAwaitingPhone,
		dialogue.StateAwaitingWhatsapp,
	} {
		state.RegisterHandler(st, a.handleDialogueText)
	}
}

// TelegramRunOptions builds the runtime wiring consumed by the cmd runner.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	cfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		AdminID: cfg.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.states, a.reg, router.TextOptions{
		UnknownText: a.handleUnknownText,
		Admin:       middleware.AdminOptions{AdminID: cfg.Telegram.AdminID},
	})...)
	routes = append(routes,
		router.CallbackRoute(a.reg, router.CallbackOptions{}),
		router.WebAppRoute(a.handleWebAppData),
	)

	middlewares := tg.DefaultMiddlewares(cfg, nil)

	opts := tg.RunOptions{
		Config:      cfg,
		Registry:    a.reg,
		Middlewares: middlewares,
		Routes:      routes,
		DispatcherOptions: tgsender.Options{
			QueueSize:    256,
			Workers:      4,
			MaxRetries:   2,
			RetryBackoff: 2 * time.Second,
		},
		OnStart: func(ctx context.Context, rt tg.Runtime) error {
			if a.health != nil {
				a.health.Start()
			}
			return nil
		},
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			var err error
			if a.health != nil {
				stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err = a.health.Stop(stopCtx)
			}
			if a.db != nil {
				if closeErr := a.db.Close(); err == nil {
					err = closeErr
				}
			}
			return err
		},
	}
	return opts, nil
}
