package format

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateLabelKeepsLimit(t *testing.T) {
	long := strings.Repeat("x", 50)
	got := TruncateLabel(long, 40)
	if n := utf8.RuneCountInString(got); n != 40 {
		t.Fatalf("truncated label is %d runes, want 40", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated label missing ellipsis: %q", got)
	}

	if got := TruncateLabel("short", 40); got != "short" {
		t.Fatalf("short label changed: %q", got)
	}
	if got := TruncateLabel(long, 1); got != "…" {
		t.Fatalf("limit 1 = %q, want ellipsis only", got)
	}
	if got := TruncateLabel(long, 0); got != "" {
		t.Fatalf("limit 0 = %q, want empty", got)
	}
}

func TestUserMention(t *testing.T) {
	got := UserMention(7, "Jane <Doe>")
	if !strings.Contains(got, "tg://user?id=7") || !strings.Contains(got, "Jane &lt;Doe&gt;") {
		t.Fatalf("unexpected mention: %q", got)
	}
	if got := UserMention(0, " "); got != "Traveler" {
		t.Fatalf("anonymous mention = %q", got)
	}
}
