package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/apperrors"
	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/markdown"
	"github.com/mquinn/folio/backend/internal/models"
	"github.com/mquinn/folio/backend/internal/slug"
	"github.com/mquinn/folio/backend/internal/store"
)

const excerptLen = 160

// BlogService manages blog posts.
type BlogService struct {
	store *store.Store[models.Blog, *models.Blog]
}

// NewBlogService builds a BlogService over the given backend.
func NewBlogService(backend kv.Store) *BlogService {
	return &BlogService{
		store: store.New[models.Blog](backend, store.Definition{
			Name:         "blog",
			PrimaryKey:   blogsKey,
			SlugIndexKey: blogSlugsKey,
			TagSetPrefix: blogTagPrefix,
		}),
	}
}

// CreateBlogInput is the payload for creating a post. Slug is optional; when
// empty it is derived from the title. Status defaults to draft, visibility
// to public, date to the current time.
type CreateBlogInput struct {
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Content     string            `json:"content"`
	Excerpt     string            `json:"excerpt"`
	Tags        []string          `json:"tags"`
	Status      models.BlogStatus `json:"status"`
	Visibility  models.Visibility `json:"visibility"`
	Date        string            `json:"date"`
	IsPinned    bool              `json:"isPinned"`
	PinPriority int               `json:"pinPriority"`
	PinDeadline string            `json:"pinDeadline"`
}

// UpdateBlogInput carries a partial update; nil fields are left unchanged.
type UpdateBlogInput struct {
	Title       *string            `json:"title"`
	Slug        *string            `json:"slug"`
	Content     *string            `json:"content"`
	Excerpt     *string            `json:"excerpt"`
	Tags        *[]string          `json:"tags"`
	Status      *models.BlogStatus `json:"status"`
	Visibility  *models.Visibility `json:"visibility"`
	Date        *string            `json:"date"`
	IsPinned    *bool              `json:"isPinned"`
	PinPriority *int               `json:"pinPriority"`
	PinDeadline *string            `json:"pinDeadline"`
}

// CreateBlog validates the input and writes the post with its indexes.
func (s *BlogService) CreateBlog(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperrors.New(apperrors.ErrInvalid, "title is required")
	}
	if in.Status == "" {
		in.Status = models.StatusDraft
	}
	if !in.Status.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown status %q", in.Status)
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPublic
	}
	if !in.Visibility.IsValid() {
		return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown visibility %q", in.Visibility)
	}
	if in.Date == "" {
		in.Date = time.Now().UTC().Format(time.RFC3339)
	} else {
		date, err := normalizeDate(in.Date)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "date must be RFC 3339, got %q", in.Date)
		}
		in.Date = date
	}
	if in.PinDeadline != "" {
		deadline, err := normalizeDate(in.PinDeadline)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "pinDeadline must be RFC 3339, got %q", in.PinDeadline)
		}
		in.PinDeadline = deadline
	}

	postSlug := in.Slug
	if postSlug == "" {
		postSlug = slug.Make(in.Title)
	}
	excerpt := in.Excerpt
	if excerpt == "" {
		excerpt = markdown.Excerpt(in.Content, excerptLen)
	}

	post := &models.Blog{
		Title:       strings.TrimSpace(in.Title),
		Slug:        postSlug,
		Excerpt:     excerpt,
		Content:     in.Content,
		Tags:        normalizeTags(in.Tags),
		Status:      in.Status,
		Visibility:  in.Visibility,
		Date:        in.Date,
		IsPinned:    in.IsPinned,
		PinPriority: in.PinPriority,
		PinDeadline: in.PinDeadline,
		ReadingTime: markdown.ReadingTime(in.Content),
	}
	if err := s.store.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateBlog merges the partial input into the stored post. Returns
// (nil, nil) when the id does not exist. A title change without an explicit
// slug regenerates the slug; a collision on a regenerated slug keeps the
// old one.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, in UpdateBlogInput) (*models.Blog, error) {
	post := s.BlogByID(ctx, id)
	if post == nil {
		return nil, nil
	}

	slugDerived := false
	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		titleChanged := *in.Title != post.Title
		post.Title = strings.TrimSpace(*in.Title)
		if in.Slug == nil && titleChanged {
			post.Slug = slug.Make(post.Title)
			slugDerived = true
		}
	}
	if in.Slug != nil && *in.Slug != "" {
		post.Slug = *in.Slug
	}
	if in.Content != nil {
		post.Content = *in.Content
		post.ReadingTime = markdown.ReadingTime(post.Content)
		if in.Excerpt == nil {
			post.Excerpt = markdown.Excerpt(post.Content, excerptLen)
		}
	}
	if in.Excerpt != nil {
		post.Excerpt = *in.Excerpt
	}
	if in.Tags != nil {
		post.Tags = normalizeTags(*in.Tags)
	}
	if in.Status != nil && *in.Status != post.Status {
		if !in.Status.IsValid() {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown status %q", *in.Status)
		}
		if !post.Status.CanTransitionTo(*in.Status) {
			return nil, apperrors.Newf(apperrors.ErrInvalidTransition,
				"cannot move blog from %s to %s", post.Status, *in.Status)
		}
		post.Status = *in.Status
	}
	if in.Visibility != nil {
		if !in.Visibility.IsValid() {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "unknown visibility %q", *in.Visibility)
		}
		post.Visibility = *in.Visibility
	}
	if in.Date != nil {
		date, err := normalizeDate(*in.Date)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInvalid, "date must be RFC 3339, got %q", *in.Date)
		}
		post.Date = date
	}
	if in.IsPinned != nil {
		post.IsPinned = *in.IsPinned
	}
	if in.PinPriority != nil {
		post.PinPriority = *in.PinPriority
	}
	if in.PinDeadline != nil {
		if *in.PinDeadline == "" {
			post.PinDeadline = ""
		} else {
			deadline, err := normalizeDate(*in.PinDeadline)
			if err != nil {
				return nil, apperrors.Newf(apperrors.ErrInvalid, "pinDeadline must be RFC 3339, got %q", *in.PinDeadline)
			}
			post.PinDeadline = deadline
		}
	}

	if err := s.store.Update(ctx, post, slugDerived); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

// DeleteBlog removes the post and its index entries. False when absent.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) (bool, error) {
	return s.store.Delete(ctx, id)
}

// BlogByID returns the post, or nil when absent or the backend is down.
func (s *BlogService) BlogByID(ctx context.Context, id string) *models.Blog {
	post, err := s.store.GetByID(ctx, id)
	if err != nil {
		zap.S().Errorw("blog read failed", "id", id, "error", err)
		return nil
	}
	return post
}

// BlogBySlug returns the post, or nil when absent or the backend is down.
func (s *BlogService) BlogBySlug(ctx context.Context, blogSlug string) *models.Blog {
	post, err := s.store.GetBySlug(ctx, blogSlug)
	if err != nil {
		zap.S().Errorw("blog read failed", "slug", blogSlug, "error", err)
		return nil
	}
	return post
}

// ListBlogs returns every post, newest date first.
func (s *BlogService) ListBlogs(ctx context.Context) []*models.Blog {
	posts, err := s.store.List(ctx)
	if err != nil {
		zap.S().Errorw("blog list failed", "error", err)
		return nil
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts
}

// PublishedBlogs returns the public feed: published+public posts, with
// currently-pinned posts first (highest pin priority leading) and the rest
// by descending date.
func (s *BlogService) PublishedBlogs(ctx context.Context) []*models.Blog {
	now := time.Now()
	var pinned, rest []*models.Blog
	for _, post := range s.ListBlogs(ctx) {
		if post.Status != models.StatusPublished || post.Visibility != models.VisibilityPublic {
			continue
		}
		if post.PinnedAt(now) {
			pinned = append(pinned, post)
		} else {
			rest = append(rest, post)
		}
	}
	sort.SliceStable(pinned, func(i, j int) bool {
		return pinned[i].PinPriority > pinned[j].PinPriority
	})
	// rest is already date-descending from ListBlogs.
	return append(pinned, rest...)
}

// BlogsByTag returns posts carrying the tag, newest date first.
func (s *BlogService) BlogsByTag(ctx context.Context, tag string) []*models.Blog {
	ids, err := s.store.TagMembers(ctx, tag)
	if err != nil {
		zap.S().Errorw("blog tag lookup failed", "tag", tag, "error", err)
		return nil
	}
	posts := make([]*models.Blog, 0, len(ids))
	for _, id := range ids {
		if post := s.BlogByID(ctx, id); post != nil {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts
}

// SearchBlogs matches the query case-insensitively against title, excerpt,
// and tags.
func (s *BlogService) SearchBlogs(ctx context.Context, query string) []*models.Blog {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.ListBlogs(ctx)
	}
	var matches []*models.Blog
	for _, post := range s.ListBlogs(ctx) {
		if strings.Contains(strings.ToLower(post.Title), query) ||
			strings.Contains(strings.ToLower(post.Excerpt), query) ||
			tagsContain(post.Tags, query) {
			matches = append(matches, post)
		}
	}
	return matches
}

func tagsContain(tags []string, query string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// normalizeDate reissues an RFC 3339 timestamp in UTC. Stored dates then
// share one offset, so the string comparisons used for date-descending
// listings order them chronologically.
func normalizeDate(value string) (string, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}

// normalizeTags trims, lowercases, and deduplicates while keeping order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
