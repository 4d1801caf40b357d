package main

import "testing"

func TestColorModeSet(t *testing.T) {
	cases := []struct {
		in   string
		want colorMode
	}{
		{"auto", colorAuto},
		{"", colorAuto},
		{"on", colorOn},
		{"ALWAYS", colorOn},
		{"off", colorOff},
		{"never", colorOff},
	}
	for _, tc := range cases {
		var m colorMode
		if err := m.Set(tc.in); err != nil {
			t.Errorf("Set(%q) failed: %v", tc.in, err)
			continue
		}
		if m != tc.want {
			t.Errorf("Set(%q) = %v, want %v", tc.in, m, tc.want)
		}
	}

	var m colorMode
	if err := m.Set("rainbow"); err == nil {
		t.Error("Set(rainbow) should fail")
	}
}

func TestReadUIMode(t *testing.T) {
	for _, in := range []string{"", "auto", "ON", " off "} {
		if _, err := readUIMode(in); err != nil {
			t.Errorf("readUIMode(%q) failed: %v", in, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("readUIMode(maybe) should fail")
	}
	if got, _ := readUIMode("on"); !got.wantTUI() {
		t.Error("forced-on mode must want the TUI")
	}
	if got, _ := readUIMode("off"); got.wantTUI() {
		t.Error("forced-off mode must not want the TUI")
	}
}
