package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"mentorship/admin/internal/domain"
)

// The backend is not consistent about "id" vs "_id"; the DTOs accept both.

type subcategoryDTO struct {
	ID          string `json:"id"`
	MongoID     string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ExpertCount int    `json:"expertCount"`
}

type categoryDTO struct {
	ID            string           `json:"id"`
	MongoID       string           `json:"_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Subcategories []subcategoryDTO `json:"subcategories"`
	ExpertCount   *int             `json:"expertCount"`
	CreatedAt     *time.Time       `json:"createdAt"`
	UpdatedAt     *time.Time       `json:"updatedAt"`
}

func pickID(id, mongoID string) domain.ID {
	if id != "" {
		return domain.PersistedID(id)
	}
	return domain.PersistedID(mongoID)
}

func (d subcategoryDTO) toDomain() domain.Subcategory {
	count := d.ExpertCount
	if count < 0 {
		count = 0
	}
	return domain.Subcategory{
		ID:          pickID(d.ID, d.MongoID),
		Name:        d.Name,
		Description: d.Description,
		ExpertCount: count,
	}
}

func (d categoryDTO) toDomain() domain.Category {
	subs := make([]domain.Subcategory, 0, len(d.Subcategories))
	for _, s := range d.Subcategories {
		subs = append(subs, s.toDomain())
	}

	return domain.Category{
		ID:            pickID(d.ID, d.MongoID),
		Name:          d.Name,
		Description:   d.Description,
		Subcategories: subs,
		ExpertCount:   d.ExpertCount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func categoryPath(id string) string {
	return "/categories/" + url.PathEscape(id)
}

func subcategoryPath(categoryID, id string) string {
	return fmt.Sprintf("%s/subcategories/%s", categoryPath(categoryID), url.PathEscape(id))
}

func (c *adminClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var dtos []categoryDTO
	if err := c.get(ctx, "/categories", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		categories = append(categories, d.toDomain())
	}
	return categories, nil
}

func (c *adminClient) CreateCategory(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	var dto categoryDTO
	if err := c.doJSON(ctx, http.MethodPost, "/categories", in, &dto); err != nil {
		return domain.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return dto.toDomain(), nil
}

func (c *adminClient) UpdateCategory(ctx context.Context, id string, update domain.CategoryUpdate) error {
	if err := c.doJSON(ctx, http.MethodPut, categoryPath(id), update, nil); err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeleteCategory(ctx context.Context, id string) error {
	if err := c.delete(ctx, categoryPath(id)); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) CreateSubcategory(ctx context.Context, categoryID string, in domain.SubcategoryInput) (domain.Subcategory, error) {
	var dto subcategoryDTO
	if err := c.doJSON(ctx, http.MethodPost, categoryPath(categoryID)+"/subcategories", in, &dto); err != nil {
		return domain.Subcategory{}, fmt.Errorf("failed to create subcategory in %s: %w", categoryID, err)
	}
	return dto.toDomain(), nil
}

func (c *adminClient) UpdateSubcategory(ctx context.Context, categoryID, id string, update domain.SubcategoryUpdate) error {
	if err := c.doJSON(ctx, http.MethodPut, subcategoryPath(categoryID, id), update, nil); err != nil {
		return fmt.Errorf("failed to update subcategory %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeleteSubcategory(ctx context.Context, categoryID, id string) error {
	if err := c.delete(ctx, subcategoryPath(categoryID, id)); err != nil {
		return fmt.Errorf("failed to delete subcategory %s: %w", id, err)
	}
	return nil
}
