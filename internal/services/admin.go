package services

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/apperrors"
	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/models"
	"github.com/mquinn/folio/backend/internal/slug"
	"github.com/mquinn/folio/backend/internal/store"
)

// AdminService manages the dashboard's categories and the sections grouped
// under them.
type AdminService struct {
	categories *store.Store[models.AdminCategory, *models.AdminCategory]
	sections   *store.Store[models.AdminSection, *models.AdminSection]
}

// NewAdminService builds an AdminService over the given backend.
func NewAdminService(backend kv.Store) *AdminService {
	return &AdminService{
		categories: store.New[models.AdminCategory](backend, store.Definition{
			Name:         "category",
			PrimaryKey:   categoriesKey,
			SlugIndexKey: categorySlugs,
		}),
		sections: store.New[models.AdminSection](backend, store.Definition{
			Name:         "section",
			PrimaryKey:   sectionsKey,
			TagSetPrefix: sectionCatPref,
		}),
	}
}

// CreateCategoryInput is the payload for creating a category.
type CreateCategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// UpdateCategoryInput carries a partial update; nil fields are unchanged.
type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"isActive"`
}

// CreateSectionInput is the payload for creating a section. CategoryID must
// reference an existing category.
type CreateSectionInput struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	IsPinned   bool   `json:"isPinned"`
}

// UpdateSectionInput carries a partial update; nil fields are unchanged.
type UpdateSectionInput struct {
	CategoryID *string `json:"categoryId"`
	Title      *string `json:"title"`
	Body       *string `json:"body"`
	IsActive   *bool   `json:"isActive"`
	IsPinned   *bool   `json:"isPinned"`
}

// ---- Categories ----

// CreateCategory appends an active category at the end of the global order.
func (s *AdminService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.AdminCategory, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.New(apperrors.ErrInvalid, "name is required")
	}
	catSlug := in.Slug
	if catSlug == "" {
		catSlug = slug.Make(in.Name)
	}
	cat := &models.AdminCategory{
		Name:        strings.TrimSpace(in.Name),
		Slug:        catSlug,
		Description: in.Description,
		Icon:        in.Icon,
		Order:       s.nextCategoryOrder(ctx),
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory merges the partial input. Returns (nil, nil) when the id
// does not exist.
func (s *AdminService) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*models.AdminCategory, error) {
	cat := s.CategoryByID(ctx, id)
	if cat == nil {
		return nil, nil
	}

	slugDerived := false
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		nameChanged := *in.Name != cat.Name
		cat.Name = strings.TrimSpace(*in.Name)
		if in.Slug == nil && nameChanged {
			cat.Slug = slug.Make(cat.Name)
			slugDerived = true
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		cat.Slug = *in.Slug
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	if in.Icon != nil {
		cat.Icon = *in.Icon
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}

	if err := s.categories.Update(ctx, cat, slugDerived); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return cat, nil
}

// DeleteCategory removes the category and every section under it. False
// when the category does not exist.
func (s *AdminService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}
	for _, section := range s.sectionsIn(ctx, id) {
		if _, err := s.sections.Delete(ctx, section.ID); err != nil {
			zap.S().Errorw("orphan section cleanup failed",
				"categoryId", id, "sectionId", section.ID, "error", err)
		}
	}
	return true, nil
}

// CategoryByID returns the category, or nil when absent or the backend is
// down.
func (s *AdminService) CategoryByID(ctx context.Context, id string) *models.AdminCategory {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		zap.S().Errorw("category read failed", "id", id, "error", err)
		return nil
	}
	return cat
}

// CategoryBySlug returns the category, or nil when absent or the backend is
// down.
func (s *AdminService) CategoryBySlug(ctx context.Context, catSlug string) *models.AdminCategory {
	cat, err := s.categories.GetBySlug(ctx, catSlug)
	if err != nil {
		zap.S().Errorw("category read failed", "slug", catSlug, "error", err)
		return nil
	}
	return cat
}

// ListCategories returns active categories in display order.
func (s *AdminService) ListCategories(ctx context.Context) []*models.AdminCategory {
	var active []*models.AdminCategory
	for _, cat := range s.ListAllCategories(ctx) {
		if cat.IsActive {
			active = append(active, cat)
		}
	}
	return active
}

// ListAllCategories returns every category, inactive included, in display
// order. The admin UI uses this view.
func (s *AdminService) ListAllCategories(ctx context.Context) []*models.AdminCategory {
	cats, err := s.categories.List(ctx)
	if err != nil {
		zap.S().Errorw("category list failed", "error", err)
		return nil
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Order < cats[j].Order })
	return cats
}

// ReorderCategories rewrites global category order to match ids, one update
// per record. Unknown ids are skipped.
func (s *AdminService) ReorderCategories(ctx context.Context, ids []string) bool {
	ok := true
	for pos, id := range ids {
		cat := s.CategoryByID(ctx, id)
		if cat == nil {
			continue
		}
		cat.Order = pos + 1
		if err := s.categories.Update(ctx, cat, false); err != nil {
			zap.S().Errorw("category reorder step failed", "id", id, "error", err)
			ok = false
		}
	}
	return ok
}

// ---- Sections ----

// CreateSection appends an active section at the end of its category's
// order. The category must exist.
func (s *AdminService) CreateSection(ctx context.Context, in CreateSectionInput) (*models.AdminSection, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.New(apperrors.ErrInvalid, "title is required")
	}
	if s.CategoryByID(ctx, in.CategoryID) == nil {
		return nil, apperrors.Newf(apperrors.ErrInvalid, "category %q does not exist", in.CategoryID)
	}

	section := &models.AdminSection{
		CategoryID: in.CategoryID,
		Title:      strings.TrimSpace(in.Title),
		Body:       in.Body,
		Order:      s.nextSectionOrder(ctx, in.CategoryID),
		IsActive:   true,
		IsPinned:   in.IsPinned,
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection merges the partial input. Returns (nil, nil) when the id
// does not exist. Moving a section to another category re-indexes its
// membership set and places it at the end of the target category's order.
func (s *AdminService) UpdateSection(ctx context.Context, id string, in UpdateSectionInput) (*models.AdminSection, error) {
	section := s.SectionByID(ctx, id)
	if section == nil {
		return nil, nil
	}

	if in.CategoryID != nil && *in.CategoryID != section.CategoryID {
		if s.CategoryByID(ctx, *in.CategoryID) == nil {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "category %q does not exist", *in.CategoryID)
		}
		section.CategoryID = *in.CategoryID
		section.Order = s.nextSectionOrder(ctx, section.CategoryID)
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		section.Title = strings.TrimSpace(*in.Title)
	}
	if in.Body != nil {
		section.Body = *in.Body
	}
	if in.IsActive != nil {
		section.IsActive = *in.IsActive
	}
	if in.IsPinned != nil {
		section.IsPinned = *in.IsPinned
	}

	if err := s.sections.Update(ctx, section, false); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return section, nil
}

// DeleteSection removes the section. False when absent.
func (s *AdminService) DeleteSection(ctx context.Context, id string) (bool, error) {
	return s.sections.Delete(ctx, id)
}

// SectionByID returns the section, or nil when absent or the backend is
// down.
func (s *AdminService) SectionByID(ctx context.Context, id string) *models.AdminSection {
	section, err := s.sections.GetByID(ctx, id)
	if err != nil {
		zap.S().Errorw("section read failed", "id", id, "error", err)
		return nil
	}
	return section
}

// SectionsByCategory returns the category's active sections in display
// order.
func (s *AdminService) SectionsByCategory(ctx context.Context, categoryID string) []*models.AdminSection {
	var active []*models.AdminSection
	for _, section := range s.sectionsIn(ctx, categoryID) {
		if section.IsActive {
			active = append(active, section)
		}
	}
	return active
}

// ListAllSections returns every section, inactive included, grouped by
// category order then section order.
func (s *AdminService) ListAllSections(ctx context.Context) []*models.AdminSection {
	sections, err := s.sections.List(ctx)
	if err != nil {
		zap.S().Errorw("section list failed", "error", err)
		return nil
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].CategoryID != sections[j].CategoryID {
			return sections[i].CategoryID < sections[j].CategoryID
		}
		return sections[i].Order < sections[j].Order
	})
	return sections
}

// ReorderSections rewrites section order within one category to match ids.
// Sections outside the category are skipped.
func (s *AdminService) ReorderSections(ctx context.Context, categoryID string, ids []string) bool {
	ok := true
	for pos, id := range ids {
		section := s.SectionByID(ctx, id)
		if section == nil || section.CategoryID != categoryID {
			continue
		}
		section.Order = pos + 1
		if err := s.sections.Update(ctx, section, false); err != nil {
			zap.S().Errorw("section reorder step failed", "id", id, "error", err)
			ok = false
		}
	}
	return ok
}

// sectionsIn returns every section in the category (active or not) in
// display order, resolved through the category member set.
func (s *AdminService) sectionsIn(ctx context.Context, categoryID string) []*models.AdminSection {
	ids, err := s.sections.TagMembers(ctx, categoryID)
	if err != nil {
		zap.S().Errorw("section category lookup failed", "categoryId", categoryID, "error", err)
		return nil
	}
	sections := make([]*models.AdminSection, 0, len(ids))
	for _, id := range ids {
		if section := s.SectionByID(ctx, id); section != nil {
			sections = append(sections, section)
		}
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
	return sections
}

func (s *AdminService) nextCategoryOrder(ctx context.Context) int {
	max := 0
	for _, cat := range s.ListAllCategories(ctx) {
		if cat.Order > max {
			max = cat.Order
		}
	}
	return max + 1
}

func (s *AdminService) nextSectionOrder(ctx context.Context, categoryID string) int {
	max := 0
	for _, section := range s.sectionsIn(ctx, categoryID) {
		if section.Order > max {
			max = section.Order
		}
	}
	return max + 1
}
