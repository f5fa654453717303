package models

// ReadingType categorises a reading list entry.
type ReadingType string

const (
	ReadingBook    ReadingType = "book"
	ReadingArticle ReadingType = "article"
	ReadingPaper   ReadingType = "paper"
	ReadingVideo   ReadingType = "video"
)

// IsValid reports whether t is a known reading type.
func (t ReadingType) IsValid() bool {
	switch t {
	case ReadingBook, ReadingArticle, ReadingPaper, ReadingVideo:
		return true
	}
	return false
}

// ReadingStatus tracks progress through a reading list entry.
type ReadingStatus string

const (
	ReadingQueued   ReadingStatus = "queued"
	ReadingActive   ReadingStatus = "reading"
	ReadingFinished ReadingStatus = "finished"
)

// IsValid reports whether s is a known reading status.
func (s ReadingStatus) IsValid() bool {
	switch s {
	case ReadingQueued, ReadingActive, ReadingFinished:
		return true
	}
	return false
}

// Reading is one entry on the reading list. Order establishes the display
// sequence; values need not be contiguous.
type Reading struct {
	Base
	Title  string        `json:"title"`
	Author string        `json:"author"`
	Slug   string        `json:"slug"`
	Type   ReadingType   `json:"type"`
	Status ReadingStatus `json:"status"`
	Rating int           `json:"rating,omitempty"`
	Notes  string        `json:"notes,omitempty"`
	URL    string        `json:"url,omitempty"`
	Order  int           `json:"order"`
}

// RecordSlug returns the entry's slug.
func (r *Reading) RecordSlug() string { return r.Slug }

// SetRecordSlug assigns the slug.
func (r *Reading) SetRecordSlug(s string) { r.Slug = s }

// RecordTags places the entry in its type set, enabling "all books" style
// reverse lookups.
func (r *Reading) RecordTags() []string {
	if r.Type == "" {
		return nil
	}
	return []string{string(r.Type)}
}
