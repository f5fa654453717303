package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mquinn/folio/backend/internal/apperrors"
	"github.com/mquinn/folio/backend/internal/kv"
	"github.com/mquinn/folio/backend/internal/models"
)

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	svc := NewProfileService(mem)

	require.Nil(t, svc.Profile(ctx), "fresh store has no profile")

	saved, err := svc.SaveProfile(ctx, models.Profile{
		Name:     "M. Quinn",
		Headline: "Attorney",
		Socials:  map[string]string{"linkedin": "https://linkedin.com/in/mquinn"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.UpdatedAt)

	got := svc.Profile(ctx)
	require.NotNil(t, got)
	require.Equal(t, "M. Quinn", got.Name)
	require.Equal(t, "https://linkedin.com/in/mquinn", got.Socials["linkedin"])
}

func TestSaveProfileRequiresName(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(kv.NewMemory())

	_, err := svc.SaveProfile(ctx, models.Profile{Headline: "No name"})
	require.True(t, apperrors.Is(err, apperrors.ErrInvalid))
}

func TestSaveProfileLastWriteWins(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(kv.NewMemory())

	_, err := svc.SaveProfile(ctx, models.Profile{Name: "First"})
	require.NoError(t, err)
	_, err = svc.SaveProfile(ctx, models.Profile{Name: "Second"})
	require.NoError(t, err)

	require.Equal(t, "Second", svc.Profile(ctx).Name)
}

func TestCorruptProfileSelfHeals(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	svc := NewProfileService(mem)

	require.NoError(t, mem.Set(ctx, profileKey, "{broken"))

	require.Nil(t, svc.Profile(ctx))

	// The broken blob must be gone after the failed read.
	_, ok, err := mem.Get(ctx, profileKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(kv.NewMemory())

	_, err := svc.SaveProfile(ctx, models.Profile{Name: "Gone"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProfile(ctx))
	require.Nil(t, svc.Profile(ctx))
}
