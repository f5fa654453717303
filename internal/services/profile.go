package services

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/mquinn/folio/backend/internal/apperrors"
	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/models"
	"github.com/mquinn/folio/backend/internal/store"
)

// ProfileService manages the site owner's monolithic profile record, stored
// as a single scalar blob outside the record store.
type ProfileService struct {
	kv kv.Store
}

// NewProfileService builds a ProfileService over the given backend.
func NewProfileService(backend kv.Store) *ProfileService {
	return &ProfileService{kv: backend}
}

// Profile returns the stored profile, or nil when unset. A blob that fails
// to parse is deleted and reported as unset.
func (s *ProfileService) Profile(ctx context.Context) *models.Profile {
	data, ok, err := s.kv.Get(ctx, profileKey)
	if err != nil {
		zap.S().Errorw("profile read failed", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var profile models.Profile
	if err := json.Unmarshal([]byte(data), &profile); err != nil {
		zap.S().Errorw("corrupt profile dropped", "error", err)
		if delErr := s.kv.Del(ctx, profileKey); delErr != nil {
			zap.S().Errorw("cannot delete corrupt profile", "error", delErr)
		}
		return nil
	}
	return &profile
}

// SaveProfile overwrites the profile blob; last write wins.
func (s *ProfileService) SaveProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	if strings.TrimSpace(profile.Name) == "" {
		return nil, apperrors.New(apperrors.ErrInvalid, "name is required")
	}
	profile.UpdatedAt = store.Now()

	data, err := json.Marshal(&profile)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, "cannot encode profile", err)
	}
	if err := s.kv.Set(ctx, profileKey, string(data)); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile removes the profile blob.
func (s *ProfileService) DeleteProfile(ctx context.Context) error {
	return s.kv.Del(ctx, profileKey)
}
