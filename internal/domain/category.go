package domain

import "time"

type Category struct {
	ID            ID            `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Subcategories []Subcategory `json:"subcategories"`
	ExpertCount   *int          `json:"expertCount,omitempty"` // Server aggregate, may be absent
	Expanded      bool          `json:"-"`                     // UI only
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}

// EffectiveExpertCount returns the server aggregate when present, else the
// sum over subcategories.
func (c Category) EffectiveExpertCount() int {
	if c.ExpertCount != nil {
		return *c.ExpertCount
	}
	return c.SubcategoryExpertCount()
}

func (c Category) SubcategoryExpertCount() int {
	total := 0
	for _, sub := range c.Subcategories {
		total += sub.ExpertCount
	}
	return total
}

// FindSubcategory returns the index of the subcategory with the given ID, or -1.
func (c Category) FindSubcategory(id ID) int {
	for i, sub := range c.Subcategories {
		if sub.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (c Category) Clone() Category {
	out := c
	if c.Subcategories != nil {
		out.Subcategories = make([]Subcategory, len(c.Subcategories))
		copy(out.Subcategories, c.Subcategories)
	}
	if c.ExpertCount != nil {
		count := *c.ExpertCount
		out.ExpertCount = &count
	}
	if c.CreatedAt != nil {
		t := *c.CreatedAt
		out.CreatedAt = &t
	}
	if c.UpdatedAt != nil {
		t := *c.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// CategoryInput is the create payload for a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryUpdate carries only the fields that changed.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (u CategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil
}
