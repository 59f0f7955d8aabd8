package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waznabudget/masarifbot/members"
)

func newTestMember() *members.Member {
	return &members.Member{
		TelegramID:   42,
		FullName:     "أحمد محمد العلي",
		FamilyHead:   "محمد العلي",
		Phone:        "0501234567",
		WhatsApp:     "0501234567",
		Status:       members.StatusPending,
		RegisteredAt: time.Date(2026, 2, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestDecidedCardAppendsVerdict(t *testing.T) {
	card := reviewCard(newTestMember())
	decided := decidedCard(card, "✅ تمت الموافقة", time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))
	assert.Contains(t, decided, card)
	assert.Contains(t, decided, "✅ تمت الموافقة")
	assert.Contains(t, decided, "2026-02-01 10:00")
}
