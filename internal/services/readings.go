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

// ReadingService manages the reading list.
type ReadingService struct {
	store *store.Store[models.Reading, *models.Reading]
}

// NewReadingService builds a ReadingService over the given backend.
func NewReadingService(backend kv.Store) *ReadingService {
	return &ReadingService{
		store: store.New[models.Reading](backend, store.Definition{
			Name:         "reading",
			PrimaryKey:   readingsKey,
			SlugIndexKey: readingSlugsKey,
			TagSetPrefix: readingTypePref,
		}),
	}
}

// CreateReadingInput is the payload for adding a reading list entry.
// Type defaults to book, status to queued.
type CreateReadingInput struct {
	Title  string               `json:"title"`
	Author string               `json:"author"`
	Type   models.ReadingType   `json:"type"`
	Status models.ReadingStatus `json:"status"`
	Rating int                  `json:"rating"`
	Notes  string               `json:"notes"`
	URL    string               `json:"url"`
}

// UpdateReadingInput carries a partial update; nil fields are unchanged.
type UpdateReadingInput struct {
	Title  *string               `json:"title"`
	Author *string               `json:"author"`
	Type   *models.ReadingType   `json:"type"`
	Status *models.ReadingStatus `json:"status"`
	Rating *int                  `json:"rating"`
	Notes  *string               `json:"notes"`
	URL    *string               `json:"url"`
}

// CreateReading appends an entry to the end of the list. Reading titles
// repeat often, so slugs always carry a random suffix.
func (s *ReadingService) CreateReading(ctx context.Context, in CreateReadingInput) (*models.Reading, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.New(apperrors.ErrInvalid, "title is required")
	}
	if in.Type == "" {
		in.Type = models.ReadingBook
	}
	if !in.Type.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown reading type %q", in.Type)
	}
	if in.Status == "" {
		in.Status = models.ReadingQueued
	}
	if !in.Status.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown reading status %q", in.Status)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, apperrors.New(apperrors.ErrInvalid, "rating must be between 0 and 5")
	}

	entry := &models.Reading{
		Title:  strings.TrimSpace(in.Title),
		Author: strings.TrimSpace(in.Author),
		Slug:   slug.WithSuffix(in.Title),
		Type:   in.Type,
		Status: in.Status,
		Rating: in.Rating,
		Notes:  in.Notes,
		URL:    in.URL,
		Order:  s.nextOrder(ctx),
	}
	if err := s.store.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateReading merges the partial input. Returns (nil, nil) when the id
// does not exist. A title change regenerates the suffixed slug; order is
// never touched here (see Reorder).
func (s *ReadingService) UpdateReading(ctx context.Context, id string, in UpdateReadingInput) (*models.Reading, error) {
	entry := s.ReadingByID(ctx, id)
	if entry == nil {
		return nil, nil
	}

	slugDerived := false
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" && *in.Title != entry.Title {
		entry.Title = strings.TrimSpace(*in.Title)
		entry.Slug = slug.WithSuffix(entry.Title)
		slugDerived = true
	}
	if in.Author != nil {
		entry.Author = strings.TrimSpace(*in.Author)
	}
	if in.Type != nil {
		if !in.Type.IsValid() {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown reading type %q", *in.Type)
		}
		entry.Type = *in.Type
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown reading status %q", *in.Status)
		}
		entry.Status = *in.Status
	}
	if in.Rating != nil {
		if *in.Rating < 0 || *in.Rating > 5 {
			return nil, apperrors.New(apperrors.ErrInvalid, "rating must be between 0 and 5")
		}
		entry.Rating = *in.Rating
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}
	if in.URL != nil {
		entry.URL = *in.URL
	}

	if err := s.store.Update(ctx, entry, slugDerived); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

// DeleteReading removes the entry. False when absent.
func (s *ReadingService) DeleteReading(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

// ReadingByID returns the entry, or nil when absent or the backend is down.
func (s *ReadingService) ReadingByID(ctx context.Context, id string) *models.Reading {
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		zap.S().Errorw("reading read failed", "id", id, "error", err)
		return nil
	}
	return entry
}

// ReadingBySlug returns the entry, or nil when absent or the backend is down.
func (s *ReadingService) ReadingBySlug(ctx context.Context, readingSlug string) *models.Reading {
	entry, err := s.store.GetBySlug(ctx, readingSlug)
	if err != nil {
		zap.S().Errorw("reading read failed", "slug", readingSlug, "error", err)
		return nil
	}
	return entry
}

// ListReadings returns all entries in display order.
func (s *ReadingService) ListReadings(ctx context.Context) []*models.Reading {
	entries, err := s.store.List(ctx)
	if err != nil {
		zap.S().Errorw("reading list failed", "error", err)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Order < entries[j].Order })
	return entries
}

// ReadingsByType returns the entries in one type's member set, in display
// order.
func (s *ReadingService) ReadingsByType(ctx context.Context, readingType models.ReadingType) []*models.Reading {
	ids, err := s.store.TagMembers(ctx, string(readingType))
	if err != nil {
		zap.S().Errorw("reading type lookup failed", "type", readingType, "error", err)
		return nil
	}
	entries := make([]*models.Reading, 0, len(ids))
	for _, id := range ids {
		if entry := s.ReadingByID(ctx, id); entry != nil {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Order < entries[j].Order })
	return entries
}

// SearchReadings matches the query case-insensitively against title and
// author.
func (s *ReadingService) SearchReadings(ctx context.Context, query string) []*models.Reading {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.ListReadings(ctx)
	}
	var matches []*models.Reading
	for _, entry := range s.ListReadings(ctx) {
		if strings.Contains(strings.ToLower(entry.Title), query) ||
			strings.Contains(strings.ToLower(entry.Author), query) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Reorder rewrites each listed entry's order to its position in ids,
// one update per record. Unknown ids are skipped. Returns false if any
// update failed, leaving order values partially rewritten (reorder is not
// transactional by contract).
func (s *ReadingService) Reorder(ctx context.Context, ids []string) bool {
	ok := true
	for pos, id := range ids {
		entry := s.ReadingByID(ctx, id)
		if entry == nil {
			continue
		}
		entry.Order = pos + 1
		if err := s.store.Update(ctx, entry, false); err != nil {
			zap.S().Errorw("reading reorder step failed", "id", id, "error", err)
			ok = false
		}
	}
	return ok
}

func (s *ReadingService) nextOrder(ctx context.Context) int {
	max := 0
	for _, entry := range s.ListReadings(ctx) {
		if entry.Order > max {
			max = entry.Order
		}
	}
	return max + 1
}
