package middleware

import "testing"

func TestSafeRedirect(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"/profile", "/profile", true},
		{"/dashboard/reports?tab=1", "/dashboard/reports?tab=1", true},
		{"/", "/", true},
		{"", "", false},
		{"profile", "", false},
		{"//evil.example", "", false},
		{"/\\evil.example", "", false},
		{"https://evil.example/x", "", false},
		{"javascript:alert(1)", "", false},
	}

	for _, tc := range cases {
		got, ok := SafeRedirect(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("SafeRedirect(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}
