// Package models defines the persisted record shapes for the folio site.
package models

// Base carries the system fields every stored record shares. Timestamps are
// UTC RFC 3339 strings with a fixed-width nanosecond fraction, so updatedAt
// strictly increases across rapid successive writes and string comparison
// orders them chronologically.
type Base struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// RecordID returns the record's immutable id.
func (b *Base) RecordID() string { return b.ID }

// SetRecordID assigns the generated id at creation time.
func (b *Base) SetRecordID(id string) { b.ID = id }

// Stamp sets both timestamps; called once at creation.
func (b *Base) Stamp(now string) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch refreshes updatedAt; called on every update.
func (b *Base) Touch(now string) { b.UpdatedAt = now }
