package models

import (
	"testing"
	"time"
)

func TestBlogStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BlogStatus
		allowed  bool
	}{
		{StatusDraft, StatusPublished, true},
		{StatusPublished, StatusArchived, true},
		{StatusArchived, StatusPublished, true},
		{StatusDraft, StatusDraft, true},
		{StatusDraft, StatusArchived, false},
		{StatusPublished, StatusDraft, false},
		{StatusArchived, StatusDraft, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestBlogStatusIsValid(t *testing.T) {
	if !StatusDraft.IsValid() || !StatusPublished.IsValid() || !StatusArchived.IsValid() {
		t.Fatal("known status reported invalid")
	}
	if BlogStatus("deleted").IsValid() {
		t.Fatal("unknown status reported valid")
	}
}

func TestPinnedAt(t *testing.T) {
	now := time.Now()

	unpinned := &Blog{}
	if unpinned.PinnedAt(now) {
		t.Fatal("unpinned post counted as pinned")
	}

	noDeadline := &Blog{IsPinned: true}
	if !noDeadline.PinnedAt(now) {
		t.Fatal("pinned post without deadline not counted")
	}

	future := &Blog{IsPinned: true, PinDeadline: now.Add(time.Hour).Format(time.RFC3339)}
	if !future.PinnedAt(now) {
		t.Fatal("pin with future deadline not counted")
	}

	expired := &Blog{IsPinned: true, PinDeadline: now.Add(-time.Hour).Format(time.RFC3339)}
	if expired.PinnedAt(now) {
		t.Fatal("pin with expired deadline still counted")
	}

	garbage := &Blog{IsPinned: true, PinDeadline: "tomorrow"}
	if garbage.PinnedAt(now) {
		t.Fatal("unparseable deadline treated as active pin")
	}
}
