package pipeline

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusNone, StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
		parsed, err := ParseStatus(s.String())
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", s, err)
		}
		if parsed != s {
			t.Errorf("round-trip changed %q to %q", s, parsed)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"", "none", "Pending", "DONE"} {
		if _, err := ParseStatus(raw); err == nil {
			t.Errorf("ParseStatus(%q) accepted an unknown value", raw)
		}
	}
}

func TestTerminal(t *testing.T) {
	cases := map[Status]bool{
		StatusNone:       false,
		StatusPending:    false,
		StatusProcessing: false,
		StatusCompleted:  true,
		StatusFailed:     true,
	}
	for s, want := range cases {
		if got := s.Terminal(); got != want {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, want)
		}
	}
}

func TestMIMEForKey(t *testing.T) {
	cases := []struct {
		key    string
		native string
		want   string
	}{
		{"recordings/a.webm", "audio/mp4", "audio/webm"},
		{"recordings/a.MP3", "audio/webm", "audio/mpeg"},
		{"recordings/a.m4a", "audio/webm", "audio/mp4"},
		{"recordings/a.bin", "audio/webm", "audio/webm"},
		{"recordings/noext", "audio/ogg", "audio/ogg"},
	}
	for _, tc := range cases {
		if got := MIMEForKey(tc.key, tc.native); got != tc.want {
			t.Errorf("MIMEForKey(%q, %q) = %q, want %q", tc.key, tc.native, got, tc.want)
		}
	}
}
