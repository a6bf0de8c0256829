package catalog

import (
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	MaxCategoryNameLength = 200
	MaxCategorySlugLength = 100
)

// Category groups products for browsing
type Category struct {
	shared.BaseEntity
	Name        string
	Slug        string
	Description string
}

// NewCategory creates a category; an empty slug is derived from the name
func NewCategory(name, slug, description string) (*Category, error) {
	c := &Category{BaseEntity: shared.NewBaseEntity()}
	if err := c.Update(name, slug, description); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces all descriptive fields
func (c *Category) Update(name, slug, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len([]rune(name)) > MaxCategoryNameLength {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 200 characters")
	}
	if slug == "" {
		slug = Slugify(name)
	}
	if err := validateSlug(slug, MaxCategorySlugLength); err != nil {
		return err
	}
	c.Name = name
	c.Slug = slug
	c.Description = description
	c.Touch()
	return nil
}
