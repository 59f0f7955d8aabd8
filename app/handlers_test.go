package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCancelText(t *testing.T) {
	for _, in := range []string{"/cancel", "إلغاء", "الغاء", "Cancel", "  /cancel  "} {
		assert.True(t, isCancelText(in), "input %q", in)
	}
	for _, in := range []string{"أحمد", "0501234567", "", "/start"} {
		assert.False(t, isCancelText(in), "input %q", in)
	}
}

func TestSurplusStatus(t *testing.T) {
	emoji, text := surplusStatus("1,500")
	assert.Equal(t, "✅", emoji)
	assert.Equal(t, "وضع جيد - لديك فائض", text)

	emoji, text = surplusStatus("0")
	assert.Equal(t, "⚖️", emoji)
	assert.Equal(t, "وضع متوازن", text)

	emoji, text = surplusStatus("-200")
	assert.Equal(t, "⚠️", emoji)
	assert.Equal(t, "انتبه - لديك عجز", text)

	emoji, text = surplusStatus("غير محدد")
	assert.Equal(t, "ℹ️", emoji)
	assert.Equal(t, valueUnset, text)
}

func TestFieldString(t *testing.T) {
	data := map[string]any{
		"monthly_income":   "5000",
		"monthly_expenses": 3500.0,
		"empty":            "  ",
	}
	assert.Equal(t, "5000", fieldString(data, "monthly_income"))
	assert.Equal(t, "3500", fieldString(data, "monthly_expenses"))
	assert.Equal(t, valueUnset, fieldString(data, "empty"))
	assert.Equal(t, valueUnset, fieldString(data, "missing"))
}

func TestBudgetSummaryContainsFields(t *testing.T) {
	out := budgetSummary("أحمد", map[string]any{
		"monthly_income":   "8000",
		"monthly_expenses": "6500",
		"net_surplus":      "1500",
	})
	assert.Contains(t, out, "أحمد")
	assert.Contains(t, out, "8000")
	assert.Contains(t, out, "6500")
	assert.Contains(t, out, "1500")
	assert.Contains(t, out, "وضع جيد")
}

func TestReviewCardEscapesMemberInput(t *testing.T) {
	m := newTestMember()
	m.FullName = "أحمد *العلي*"
	card := reviewCard(m)
	assert.Contains(t, card, `أحمد \*العلي\*`)
	assert.Contains(t, card, "0501234567")
}
