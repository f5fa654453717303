package models

import "time"

// BlogStatus is the lifecycle phase of a blog post.
type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
	StatusArchived  BlogStatus = "archived"
)

// Visibility controls whether a published post appears on the public site.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// blogTransitions is the allowed status transition table. Self-transitions
// are always permitted (a status-preserving update is not a transition).
var blogTransitions = map[BlogStatus][]BlogStatus{
	StatusDraft:     {StatusPublished},
	StatusPublished: {StatusArchived},
	StatusArchived:  {StatusPublished},
}

// IsValid reports whether s is a known status.
func (s BlogStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
func (s BlogStatus) CanTransitionTo(next BlogStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range blogTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether v is a known visibility.
func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Blog is a blog post. Content is markdown; Excerpt and ReadingTime are
// derived from it when not supplied.
type Blog struct {
	Base
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	Tags        []string   `json:"tags,omitempty"`
	Status      BlogStatus `json:"status"`
	Visibility  Visibility `json:"visibility"`
	Date        string     `json:"date"`
	IsPinned    bool       `json:"isPinned,omitempty"`
	PinPriority int        `json:"pinPriority,omitempty"`
	PinDeadline string     `json:"pinDeadline,omitempty"`
	ReadingTime int        `json:"readingTime,omitempty"`
}

// RecordSlug returns the post's slug.
func (b *Blog) RecordSlug() string { return b.Slug }

// SetRecordSlug assigns the slug.
func (b *Blog) SetRecordSlug(s string) { b.Slug = s }

// RecordTags returns the labels whose index sets the post belongs to.
func (b *Blog) RecordTags() []string { return b.Tags }

// PinnedAt reports whether the post counts as pinned at the given instant:
// the flag is set and any pin deadline is still in the future. An
// unparseable deadline is treated as expired.
func (b *Blog) PinnedAt(now time.Time) bool {
	if !b.IsPinned {
		return false
	}
	if b.PinDeadline == "" {
		return true
	}
	deadline, err := time.Parse(time.RFC3339, b.PinDeadline)
	if err != nil {
		return false
	}
	return deadline.After(now)
}
