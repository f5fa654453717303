// Package store implements the slug/tag-indexed record store pattern shared
// by every entity type: one primary hash of id -> JSON record, an optional
// slug -> id reverse index, and optional per-label member sets.
package store

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/apperrors"
	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/recordid"
)

// Record is what the engine needs from a stored entity: identity, the
// indexed slug, the labels whose member sets it belongs to, and timestamp
// stamping.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	RecordSlug() string
	SetRecordSlug(slug string)
	RecordTags() []string
	Stamp(now string)
	Touch(now string)
}

// Definition binds a Store to its entity type's key layout.
type Definition struct {
	// Name is the entity name, used as the id prefix and in log lines.
	Name string
	// PrimaryKey is the id -> record hash.
	PrimaryKey string
	// SlugIndexKey is the slug -> id hash; empty disables slug indexing.
	SlugIndexKey string
	// TagSetPrefix prefixes per-label member set keys; empty disables
	// tag indexing.
	TagSetPrefix string
}

// Store persists records of one entity type. Create, Update and Delete
// commit the primary record together with its index entries in a single
// backend transaction, so a crash between calls cannot leave a slug
// pointing at a record that is gone.
type Store[T any, PT interface {
	*T
	Record
}] struct {
	kv  kv.Store
	def Definition
}

// New builds a Store for one entity type over the given backend.
func New[T any, PT interface {
	*T
	Record
}](backend kv.Store, def Definition) *Store[T, PT] {
	return &Store[T, PT]{kv: backend, def: def}
}

// stampLayout pads the fraction to full nanosecond width. RFC3339Nano drops
// trailing zeros, which would let a later timestamp compare lexicographically
// smaller than an earlier one.
const stampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Now returns the timestamp format stored on records. String order matches
// chronological order.
func Now() string {
	return time.Now().UTC().Format(stampLayout)
}

// Create assigns an id and timestamps, verifies slug uniqueness, and writes
// the record plus all index entries. The caller supplies the record with
// its slug already computed.
func (s *Store[T, PT]) Create(ctx context.Context, rec PT) error {
	if slug := rec.RecordSlug(); s.def.SlugIndexKey != "" && slug != "" {
		taken, err := s.slugTaken(ctx, slug, "")
		if err != nil {
			return err
		}
		if taken {
			return apperrors.Newf(apperrors.ErrDuplicateSlug, "slug %q is already in use", slug)
		}
	}

	rec.SetRecordID(recordid.New(s.def.Name))
	rec.Stamp(Now())

	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "cannot encode record", err)
	}

	return s.kv.Tx(ctx, func(b kv.Batch) error {
		b.HSet(s.def.PrimaryKey, map[string]string{rec.RecordID(): string(data)})
		if s.def.SlugIndexKey != "" && rec.RecordSlug() != "" {
			b.HSet(s.def.SlugIndexKey, map[string]string{rec.RecordSlug(): rec.RecordID()})
		}
		for _, tag := range rec.RecordTags() {
			b.SAdd(s.tagKey(tag), rec.RecordID())
		}
		return nil
	})
}

// GetByID returns the record, or nil when absent. A stored value that fails
// to parse is deleted and reported as absent.
func (s *Store[T, PT]) GetByID(ctx context.Context, id string) (PT, error) {
	data, ok, err := s.kv.HGet(ctx, s.def.PrimaryKey, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rec, err := decode[T, PT](data)
	if err != nil {
		s.healCorrupt(ctx, id, err)
		return nil, nil
	}
	return rec, nil
}

// GetBySlug resolves the slug through the reverse index, falling back to a
// full scan when the index has drifted.
func (s *Store[T, PT]) GetBySlug(ctx context.Context, slug string) (PT, error) {
	if s.def.SlugIndexKey != "" {
		id, ok, err := s.kv.HGet(ctx, s.def.SlugIndexKey, slug)
		if err != nil {
			return nil, err
		}
		if ok {
			rec, err := s.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if rec != nil && rec.RecordSlug() == slug {
				return rec, nil
			}
		}
	}

	// Index miss or stale entry: scan the primary hash.
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.RecordSlug() == slug {
			zap.S().Warnw("slug index drift, record found by scan",
				"entity", s.def.Name, "slug", slug, "id", rec.RecordID())
			return rec, nil
		}
	}
	return nil, nil
}

// List returns every record in the primary hash, unsorted. Entries that
// fail to parse are deleted and dropped from the result.
func (s *Store[T, PT]) List(ctx context.Context) ([]PT, error) {
	fields, err := s.kv.HGetAll(ctx, s.def.PrimaryKey)
	if err != nil {
		return nil, err
	}

	records := make([]PT, 0, len(fields))
	for id, data := range fields {
		rec, err := decode[T, PT](data)
		if err != nil {
			s.healCorrupt(ctx, id, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Update rewrites the record and reconciles index entries against the
// stored copy. slugDerived marks a slug that was regenerated from the title
// rather than supplied explicitly: on collision a derived slug falls back
// to the stored one, while an explicit slug collision is an error.
// Returns a NOT_FOUND error when the id does not exist.
func (s *Store[T, PT]) Update(ctx context.Context, rec PT, slugDerived bool) error {
	old, err := s.GetByID(ctx, rec.RecordID())
	if err != nil {
		return err
	}
	if old == nil {
		return apperrors.Newf(apperrors.ErrNotFound, "%s %s not found", s.def.Name, rec.RecordID())
	}

	if s.def.SlugIndexKey != "" && rec.RecordSlug() != old.RecordSlug() {
		taken, err := s.slugTaken(ctx, rec.RecordSlug(), rec.RecordID())
		if err != nil {
			return err
		}
		if taken {
			if !slugDerived {
				return apperrors.Newf(apperrors.ErrDuplicateSlug, "slug %q is already in use", rec.RecordSlug())
			}
			zap.S().Warnw("derived slug collides, keeping previous slug",
				"entity", s.def.Name, "id", rec.RecordID(),
				"wanted", rec.RecordSlug(), "kept", old.RecordSlug())
			rec.SetRecordSlug(old.RecordSlug())
		}
	}

	rec.Touch(Now())

	data, err := json.Marshal(rec)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, "cannot encode record", err)
	}

	addedTags, removedTags := diffTags(old.RecordTags(), rec.RecordTags())

	return s.kv.Tx(ctx, func(b kv.Batch) error {
		b.HSet(s.def.PrimaryKey, map[string]string{rec.RecordID(): string(data)})
		if s.def.SlugIndexKey != "" && rec.RecordSlug() != old.RecordSlug() {
			if old.RecordSlug() != "" {
				b.HDel(s.def.SlugIndexKey, old.RecordSlug())
			}
			if rec.RecordSlug() != "" {
				b.HSet(s.def.SlugIndexKey, map[string]string{rec.RecordSlug(): rec.RecordID()})
			}
		}
		for _, tag := range removedTags {
			b.SRem(s.tagKey(tag), rec.RecordID())
		}
		for _, tag := range addedTags {
			b.SAdd(s.tagKey(tag), rec.RecordID())
		}
		return nil
	})
}

// Delete removes the record, its slug entry, and its set memberships.
// Returns false when the id does not exist.
func (s *Store[T, PT]) Delete(ctx context.Context, id string) (bool, error) {
	old, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if old == nil {
		return false, nil
	}

	err = s.kv.Tx(ctx, func(b kv.Batch) error {
		b.HDel(s.def.PrimaryKey, id)
		if s.def.SlugIndexKey != "" && old.RecordSlug() != "" {
			b.HDel(s.def.SlugIndexKey, old.RecordSlug())
		}
		for _, tag := range old.RecordTags() {
			b.SRem(s.tagKey(tag), id)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// TagMembers returns the ids in one label's member set.
func (s *Store[T, PT]) TagMembers(ctx context.Context, label string) ([]string, error) {
	if s.def.TagSetPrefix == "" {
		return nil, nil
	}
	return s.kv.SMembers(ctx, s.tagKey(label))
}

// Count returns the number of records in the primary hash.
func (s *Store[T, PT]) Count(ctx context.Context) (int64, error) {
	return s.kv.HLen(ctx, s.def.PrimaryKey)
}

func (s *Store[T, PT]) slugTaken(ctx context.Context, slug, selfID string) (bool, error) {
	id, ok, err := s.kv.HGet(ctx, s.def.SlugIndexKey, slug)
	if err != nil {
		return false, err
	}
	return ok && id != selfID, nil
}

func (s *Store[T, PT]) tagKey(label string) string {
	return s.def.TagSetPrefix + label
}

// healCorrupt drops an unparseable stored value so subsequent reads treat
// it as absent. Only the primary entry is removed; a dangling slug index
// entry is covered by GetBySlug's scan fallback.
func (s *Store[T, PT]) healCorrupt(ctx context.Context, id string, cause error) {
	zap.S().Errorw("corrupt record dropped",
		"entity", s.def.Name, "id", id, "error", cause)
	if err := s.kv.HDel(ctx, s.def.PrimaryKey, id); err != nil {
		zap.S().Errorw("cannot delete corrupt record",
			"entity", s.def.Name, "id", id, "error", err)
	}
}

func decode[T any, PT interface {
	*T
	Record
}](data string) (PT, error) {
	var rec T
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return PT(&rec), nil
}

func diffTags(old, new []string) (added, removed []string) {
	oldSet := make(map[string]struct{}, len(old))
	for _, t := range old {
		oldSet[t] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(new))
	for _, t := range new {
		newSet[t] = struct{}{}
		if _, ok := oldSet[t]; !ok {
			added = append(added, t)
		}
	}
	for _, t := range old {
		if _, ok := newSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	return added, removed
}
