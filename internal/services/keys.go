// Package services provides the entity-level operations behind the site:
// blogs, the reading list, admin sections/categories, and the profile blob.
//
// Error policy: read operations never fail. Backend trouble is logged and
// degraded to an empty result, keeping the site renderable. Write
// operations return business-rule violations (duplicate slug, invalid
// transition) and wrapped backend failures to the caller.
package services

// Key layout of the flat namespace. One primary hash per entity type, a
// slug reverse-index hash where the entity uses slugs, and per-label member
// sets for tag/type/category lookups.
const (
	blogsKey        = "folio:blogs"
	blogSlugsKey    = "folio:blogs:slugs"
	blogTagPrefix   = "folio:blogs:tag:"
	readingsKey     = "folio:readings"
	readingSlugsKey = "folio:readings:slugs"
	readingTypePref = "folio:readings:type:"
	categoriesKey   = "folio:admin:categories"
	categorySlugs   = "folio:admin:categories:slugs"
	sectionsKey     = "folio:admin:sections"
	sectionCatPref  = "folio:admin:sections:category:"
	profileKey      = "folio:profile"
)
