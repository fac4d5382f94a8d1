package codec

import (
	"testing"
	"time"
)

func TestParseScheduledFor(t *testing.T) {
	text := "```\norder_id: 20240101-001\nscheduled_for: 2024-06-15\n```"
	got, ok := ParseScheduledFor(text)
	if !ok {
		t.Fatal("expected date to parse")
	}
	want := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseScheduledForFirstMatchWins(t *testing.T) {
	text := "scheduled_for: 2024-01-02\nscheduled_for: 2024-03-04"
	got, ok := ParseScheduledFor(text)
	if !ok {
		t.Fatal("expected date to parse")
	}
	if got.Format("2006-01-02") != "2024-01-02" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseScheduledForAbsent(t *testing.T) {
	for _, text := range []string{
		"",
		"scheduled_for: null",
		"scheduled_for: tomorrow",
		"scheduled_for: 2024-13-40",
		"scheduled: 2024-06-15",
	} {
		if _, ok := ParseScheduledFor(text); ok {
			t.Fatalf("expected %q to yield no date", text)
		}
	}
}

func TestParseScheduledForToleratesSpacing(t *testing.T) {
	if _, ok := ParseScheduledFor("scheduled_for:2024-06-15"); !ok {
		t.Fatal("expected no-space form to parse")
	}
	if _, ok := ParseScheduledFor("scheduled_for:   2024-06-15"); !ok {
		t.Fatal("expected padded form to parse")
	}
}
