package utils

import (
	"testing"
	"time"
)

func TestGenToken(t *testing.T) {
	a := GenToken(64)
	b := GenToken(64)
	if a == b {
		t.Fatalf("GenToken returned the same token twice: %s", a)
	}
	// 64 bytes in unpadded base64
	if len(a) != 86 {
		t.Errorf("len(GenToken(64)) = %d, want 86", len(a))
	}
}

func TestParseDate(t *testing.T) {
	valid := map[string]time.Time{
		"2024-01-10":   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		" 2024-02-29 ": time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	}
	invalid := []string{
		"",
		"2024/01/10",
		"2023-02-29",
		"10-01-2024",
	}

	for s, want := range valid {
		got, err := ParseDate(s)
		if err != nil || !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, %v, want %v, nil", s, got, err, want)
		}
	}
	for _, s := range invalid {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
	d := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2024-01-10" {
		t.Errorf("FormatDate(%v) = %q, want 2024-01-10", d, got)
	}
}
