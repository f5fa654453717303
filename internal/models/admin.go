package models

// AdminCategory groups admin dashboard sections. Ordering is global across
// categories; IsActive soft-disables a category without deleting it.
type AdminCategory struct {
	Base
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
	IsActive    bool   `json:"isActive"`
}

// RecordSlug returns the category's slug.
func (c *AdminCategory) RecordSlug() string { return c.Slug }

// SetRecordSlug assigns the slug.
func (c *AdminCategory) SetRecordSlug(s string) { c.Slug = s }

// RecordTags returns nil; categories have no set indexes.
func (c *AdminCategory) RecordTags() []string { return nil }

// AdminSection is one editable content block within a category. Ordering is
// scoped to the owning category. IsPinned defaults to false for records
// stored before the field existed.
type AdminSection struct {
	Base
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Body       string `json:"body,omitempty"`
	Order      int    `json:"order"`
	IsActive   bool   `json:"isActive"`
	IsPinned   bool   `json:"isPinned,omitempty"`
}

// RecordSlug returns ""; sections are addressed by id only.
func (s *AdminSection) RecordSlug() string { return "" }

// SetRecordSlug is a no-op for sections.
func (s *AdminSection) SetRecordSlug(string) {}

// RecordTags places the section in its category's member set, so listing a
// category's sections reads one set instead of scanning the primary hash.
func (s *AdminSection) RecordTags() []string {
	if s.CategoryID == "" {
		return nil
	}
	return []string{s.CategoryID}
}
