package clock

import (
	"testing"
	"time"
)

func TestSystemNowUTC(t *testing.T) {
	t.Parallel()

	clk := System{}

	before := time.Now().UTC().Add(-time.Second)
	got := clk.Now()
	after := time.Now().UTC().Add(time.Second)

	if got.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", got.Location())
	}
	if got.Before(before) || got.After(after) {
		t.Fatalf("expected %v to be between %v and %v", got, before, after)
	}
}

func TestFixedNow(t *testing.T) {
	t.Parallel()

	instant := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := Fixed{T: instant}

	if got := clk.Now(); !got.Equal(instant) {
		t.Fatalf("expected %v, got %v", instant, got)
	}
}
