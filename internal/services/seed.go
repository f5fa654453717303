package services

import (
	"context"

	"go.uber.org/zap"
)

// seedCategory pairs a default category with its starter sections.
type seedCategory struct {
	input    CreateCategoryInput
	sections []CreateSectionInput
}

var defaultCategories = []seedCategory{
	{
		input: CreateCategoryInput{
			Name:        "About",
			Description: "Profile, background, and contact details",
			Icon:        "user",
		},
		sections: []CreateSectionInput{
			{Title: "Introduction", Body: "Write a short introduction here.", IsPinned: true},
			{Title: "Background", Body: "Describe your professional background."},
		},
	},
	{
		input: CreateCategoryInput{
			Name:        "Skills",
			Description: "Areas of expertise and tooling",
			Icon:        "wrench",
		},
		sections: []CreateSectionInput{
			{Title: "Core skills", Body: "List your primary skills."},
		},
	},
	{
		input: CreateCategoryInput{
			Name:        "Education",
			Description: "Degrees, certifications, and training",
			Icon:        "graduation-cap",
		},
		sections: []CreateSectionInput{
			{Title: "Education", Body: "List degrees and certifications."},
		},
	},
	{
		input: CreateCategoryInput{
			Name:        "Case Vault",
			Description: "Selected case summaries and outcomes",
			Icon:        "scale",
		},
		sections: []CreateSectionInput{
			{Title: "Featured cases", Body: "Summarise notable cases here."},
		},
	},
}

// Seed bootstraps a fresh deployment with the default categories and their
// starter sections. It runs only when the category hash is completely
// empty; an already-populated store is left untouched.
func (s *AdminService) Seed(ctx context.Context) error {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		zap.S().Debugw("seed skipped, categories already present", "count", count)
		return nil
	}

	for _, seed := range defaultCategories {
		cat, err := s.CreateCategory(ctx, seed.input)
		if err != nil {
			return err
		}
		for _, sectionInput := range seed.sections {
			sectionInput.CategoryID = cat.ID
			if _, err := s.CreateSection(ctx, sectionInput); err != nil {
				return err
			}
		}
	}
	zap.S().Infow("seeded default admin content", "categories", len(defaultCategories))
	return nil
}
