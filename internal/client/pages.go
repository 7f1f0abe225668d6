package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"mentorship/admin/internal/domain"
)

type pageDTO struct {
	ID        string          `json:"id"`
	MongoID   string          `json:"_id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt *time.Time      `json:"createdAt"`
	UpdatedAt *time.Time      `json:"updatedAt"`
}

func (d pageDTO) toDomain() domain.StaticPage {
	id := d.ID
	if id == "" {
		id = d.MongoID
	}
	return domain.StaticPage{
		ID:        id,
		Type:      domain.PageType(d.Type),
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func pagePath(id string) string {
	return "/pages/" + url.PathEscape(id)
}

func (c *adminClient) ListPages(ctx context.Context) ([]domain.StaticPage, error) {
	var dtos []pageDTO
	if err := c.get(ctx, "/pages", &dtos); err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	pages := make([]domain.StaticPage, 0, len(dtos))
	for _, d := range dtos {
		pages = append(pages, d.toDomain())
	}
	return pages, nil
}

func (c *adminClient) CreatePage(ctx context.Context, in domain.PageInput) (domain.StaticPage, error) {
	var dto pageDTO
	if err := c.doJSON(ctx, http.MethodPost, "/pages", in, &dto); err != nil {
		return domain.StaticPage{}, fmt.Errorf("failed to create %s page: %w", in.Type, err)
	}
	return dto.toDomain(), nil
}

func (c *adminClient) UpdatePage(ctx context.Context, id string, update domain.PageUpdate) error {
	if err := c.doJSON(ctx, http.MethodPatch, pagePath(id), update, nil); err != nil {
		return fmt.Errorf("failed to update page %s: %w", id, err)
	}
	return nil
}

func (c *adminClient) DeletePage(ctx context.Context, id string) error {
	if err := c.delete(ctx, pagePath(id)); err != nil {
		return fmt.Errorf("failed to delete page %s: %w", id, err)
	}
	return nil
}
