package keyboard

import "testing"

func TestInlineButtonsRows(t *testing.T) {
	markup := InlineButtonsRows([]InlineBtn{
		{Text: "✅", Unique: "member_approve", Data: "42"},
		{Text: "❌", Unique: "member_reject", Data: "42"},
	})
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 2 {
		t.Fatalf("unexpected layout: %v", markup.InlineKeyboard)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Text != "✅" {
		t.Errorf("text = %q", btn.Text)
	}
	if btn.Unique != "member_approve" || btn.Data != "42" {
		t.Errorf("unique/data = %q/%q", btn.Unique, btn.Data)
	}
}

func TestWebAppInline(t *testing.T) {
	markup := WebAppInline("فتح النظام", "https://budget.example")
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("unexpected layout: %v", markup.InlineKeyboard)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Text != "فتح النظام" {
		t.Errorf("text = %q", btn.Text)
	}
	if btn.WebApp == nil || btn.WebApp.URL != "https://budget.example" {
		t.Errorf("web app = %+v", btn.WebApp)
	}
}

func TestSingleCancelMarkup(t *testing.T) {
	markup := SingleCancelMarkup("register_cancel")
	if len(markup.InlineKeyboard) != 1 || len(markup.InlineKeyboard[0]) != 1 {
		t.Fatalf("unexpected layout: %v", markup.InlineKeyboard)
	}
	btn := markup.InlineKeyboard[0][0]
	if btn.Unique != "register_cancel" || btn.Data != "cancel" {
		t.Errorf("unique/data = %q/%q", btn.Unique, btn.Data)
	}
	if btn.Text != defaultCancelButtonText {
		t.Errorf("text = %q", btn.Text)
	}
}
