package callbacks

import "testing"

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		in      string
		unique  string
		payload string
	}{
		{"\fmember_approve|12345", "member_approve", "12345"},
		{"member_reject|9", "member_reject", "9"},
		{"\fplain", "plain", ""},
		{"", "", ""},
		{"\fkey|a|b", "key", "a|b"},
	}
	for _, tc := range cases {
		unique, payload := ParseCallbackData(tc.in)
		if unique != tc.unique || payload != tc.payload {
			t.Errorf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)",
				tc.in, unique, payload, tc.unique, tc.payload)
		}
	}
}
