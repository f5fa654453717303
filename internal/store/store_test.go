package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/mquinn/folio/backend/internal/apperrors"
	"github.com/mquinn/folio/backend/internal/kv"
)

// testDoc is a minimal record exercising every engine feature.
type testDoc struct {
	ID        string   `json:"id"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
	Title     string   `json:"title"`
	Slug      string   `json:"slug"`
	Labels    []string `json:"labels,omitempty"`
}

func (d *testDoc) RecordID() string       { return d.ID }
func (d *testDoc) SetRecordID(id string)  { d.ID = id }
func (d *testDoc) RecordSlug() string     { return d.Slug }
func (d *testDoc) SetRecordSlug(s string) { d.Slug = s }
func (d *testDoc) RecordTags() []string   { return d.Labels }
func (d *testDoc) Stamp(now string)       { d.CreatedAt, d.UpdatedAt = now, now }
func (d *testDoc) Touch(now string)       { d.UpdatedAt = now }

const (
	testPrimary = "test:docs"
	testSlugs   = "test:docs:slugs"
	testLabels  = "test:docs:label:"
)

func setupStore(t *testing.T) (*Store[testDoc, *testDoc], *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s := New[testDoc](mem, Definition{
		Name:         "doc",
		PrimaryKey:   testPrimary,
		SlugIndexKey: testSlugs,
		TagSetPrefix: testLabels,
	})
	return s, mem
}

func TestCreateThenGetByID(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	doc := &testDoc{Title: "First", Slug: "first", Labels: []string{"go"}}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if doc.ID == "" || doc.CreatedAt == "" || doc.UpdatedAt == "" {
		t.Fatalf("system fields not stamped: %+v", doc)
	}

	got, err := s.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Title != "First" || got.Slug != "first" || got.ID != doc.ID {
		t.Fatalf("GetByID = %+v, want the created record", got)
	}
}

func TestGetByIDAbsent(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	got, err := s.GetByID(ctx, "doc_0_00000000")
	if err != nil || got != nil {
		t.Fatalf("GetByID(absent) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestGetBySlugRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	doc := &testDoc{Title: "First", Slug: "first"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.GetBySlug(ctx, "first")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got == nil || got.ID != doc.ID {
		t.Fatalf("GetBySlug = %+v, want record %s", got, doc.ID)
	}
}

func TestGetBySlugFallsBackOnIndexDrift(t *testing.T) {
	ctx := context.Background()
	s, mem := setupStore(t)

	doc := &testDoc{Title: "First", Slug: "first"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Simulate index drift: the slug entry vanishes but the record stays.
	if err := mem.HDel(ctx, testSlugs, "first"); err != nil {
		t.Fatalf("HDel failed: %v", err)
	}

	got, err := s.GetBySlug(ctx, "first")
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if got == nil || got.ID != doc.ID {
		t.Fatalf("scan fallback did not find the record, got %+v", got)
	}
}

func TestCreateDuplicateSlugRejected(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	if err := s.Create(ctx, &testDoc{Title: "First", Slug: "first"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := s.Create(ctx, &testDoc{Title: "Other", Slug: "first"})
	if !apperrors.Is(err, apperrors.ErrDuplicateSlug) {
		t.Fatalf("duplicate slug error = %v, want DUPLICATE_SLUG", err)
	}

	// The failed create must not have touched the store.
	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("store has %d records after rejected create, want 1", len(docs))
	}
}

func TestUpdateRewritesSlugIndex(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	doc := &testDoc{Title: "First", Slug: "first"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	before := doc.UpdatedAt

	doc.Title = "Renamed"
	doc.Slug = "renamed"
	if err := s.Update(ctx, doc, true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if doc.UpdatedAt <= before {
		t.Fatalf("updatedAt did not increase: %s -> %s", before, doc.UpdatedAt)
	}

	if got, _ := s.GetBySlug(ctx, "renamed"); got == nil {
		t.Fatal("new slug not resolvable")
	}
	if got, _ := s.GetBySlug(ctx, "first"); got != nil {
		t.Fatal("old slug still resolvable after update")
	}
}

func TestUpdateDerivedSlugCollisionKeepsOld(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	if err := s.Create(ctx, &testDoc{Title: "Taken", Slug: "taken"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	doc := &testDoc{Title: "Mine", Slug: "mine"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	doc.Slug = "taken"
	if err := s.Update(ctx, doc, true); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if doc.Slug != "mine" {
		t.Fatalf("derived slug collision: slug = %q, want fallback to %q", doc.Slug, "mine")
	}
}

func TestUpdateExplicitSlugCollisionRejected(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	if err := s.Create(ctx, &testDoc{Title: "Taken", Slug: "taken"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	doc := &testDoc{Title: "Mine", Slug: "mine"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	doc.Slug = "taken"
	err := s.Update(ctx, doc, false)
	if !apperrors.Is(err, apperrors.ErrDuplicateSlug) {
		t.Fatalf("explicit slug collision error = %v, want DUPLICATE_SLUG", err)
	}
}

func TestUpdateAbsentReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	err := s.Update(ctx, &testDoc{ID: "doc_0_00000000", Slug: "x"}, false)
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Update(absent) error = %v, want NOT_FOUND", err)
	}
}

func TestUpdateReconcilesLabelSets(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	doc := &testDoc{Title: "First", Slug: "first", Labels: []string{"go", "redis"}}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	doc.Labels = []string{"go", "testing"}
	if err := s.Update(ctx, doc, false); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if ids, _ := s.TagMembers(ctx, "redis"); len(ids) != 0 {
		t.Fatalf("removed label set still has members: %v", ids)
	}
	if ids, _ := s.TagMembers(ctx, "testing"); len(ids) != 1 || ids[0] != doc.ID {
		t.Fatalf("added label set = %v, want [%s]", ids, doc.ID)
	}
	if ids, _ := s.TagMembers(ctx, "go"); len(ids) != 1 {
		t.Fatalf("kept label set = %v, want one member", ids)
	}
}

func TestDeleteCleansEverything(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	doc := &testDoc{Title: "First", Slug: "first", Labels: []string{"go"}}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := s.Delete(ctx, doc.ID)
	if err != nil || !deleted {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", deleted, err)
	}

	if got, _ := s.GetByID(ctx, doc.ID); got != nil {
		t.Fatal("record still readable after delete")
	}
	if got, _ := s.GetBySlug(ctx, "first"); got != nil {
		t.Fatal("slug still resolvable after delete")
	}
	if ids, _ := s.TagMembers(ctx, "go"); len(ids) != 0 {
		t.Fatalf("label set still has members after delete: %v", ids)
	}

	deleted, err = s.Delete(ctx, doc.ID)
	if err != nil || deleted {
		t.Fatalf("second Delete = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestCorruptRecordSelfHeals(t *testing.T) {
	ctx := context.Background()
	s, mem := setupStore(t)

	doc := &testDoc{Title: "Good", Slug: "good"}
	if err := s.Create(ctx, doc); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Corrupt a second entry directly in the backend.
	if err := mem.HSet(ctx, testPrimary, map[string]string{"doc_1_deadbeef": "{not json"}); err != nil {
		t.Fatalf("HSet failed: %v", err)
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("List = %d records, want only the good one", len(docs))
	}

	// The corrupt field must be gone from the hash.
	if _, ok, _ := mem.HGet(ctx, testPrimary, "doc_1_deadbeef"); ok {
		t.Fatal("corrupt field survived self-healing")
	}

	// GetByID on a corrupt entry behaves the same way.
	_ = mem.HSet(ctx, testPrimary, map[string]string{"doc_2_deadbeef": "]["})
	if got, err := s.GetByID(ctx, "doc_2_deadbeef"); err != nil || got != nil {
		t.Fatalf("GetByID(corrupt) = (%v, %v), want (nil, nil)", got, err)
	}
}

func TestNowFixedWidthFraction(t *testing.T) {
	re := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{9}Z$`)
	prev := Now()
	if !re.MatchString(prev) {
		t.Fatalf("Now() = %q, want a 9-digit fraction and Z offset", prev)
	}
	for i := 0; i < 1000; i++ {
		cur := Now()
		if cur < prev {
			t.Fatalf("timestamps went backwards as strings: %s then %s", prev, cur)
		}
		prev = cur
	}
}

func TestStampLayoutOrdersLexicographically(t *testing.T) {
	// RFC3339Nano would render these as .1Z and .12Z, inverting the order.
	early := time.Date(2026, 1, 2, 3, 4, 5, 100000000, time.UTC)
	late := early.Add(20 * time.Millisecond)
	a, b := early.Format(stampLayout), late.Format(stampLayout)
	if a >= b {
		t.Fatalf("later instant compares smaller: %q >= %q", a, b)
	}
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	s, _ := setupStore(t)

	if n, _ := s.Count(ctx); n != 0 {
		t.Fatalf("Count(empty) = %d, want 0", n)
	}
	if err := s.Create(ctx, &testDoc{Title: "One", Slug: "one"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if n, _ := s.Count(ctx); n != 1 {
		t.Fatalf("Count = %d, want 1", n)
	}
}
