// Package state provides a lightweight FSM/session manager for Telegram
// conversations. It is domain-agnostic: states and per-state handlers are
// registered by the application.
package state
