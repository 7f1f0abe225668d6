package domain

type Subcategory struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ExpertCount int    `json:"expertCount"`
	IsNew       bool   `json:"-"` // Created locally, not yet saved
}

// SubcategoryInput is the create payload for a subcategory.
type SubcategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ExpertCount int    `json:"expertCount"`
}

// SubcategoryUpdate carries only the fields that changed.
type SubcategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ExpertCount *int    `json:"expertCount,omitempty"`
}

func (u SubcategoryUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.ExpertCount == nil
}
