package domain

import (
	"encoding/json"
	"time"
)

type PageType string

func (p PageType) String() string {
	return string(p)
}

const (
	PageTypeHome  PageType = "home"
	PageTypeAbout PageType = "about"
	PageTypeTeam  PageType = "team"
)

var PageTypes = []PageType{
	PageTypeHome,
	PageTypeAbout,
	PageTypeTeam,
}

func (p PageType) IsValid() bool {
	switch p {
	case PageTypeHome, PageTypeAbout, PageTypeTeam:
		return true
	default:
		return false
	}
}

func (p PageType) GetPageName() string {
	switch p {
	case PageTypeHome:
		return "Home"
	case PageTypeAbout:
		return "About Us"
	case PageTypeTeam:
		return "Our Team"
	default:
		return "Unknown"
	}
}

// StaticPage is a page record as stored by the backend. Content is either a
// JSON string holding a JSON document or an inline JSON object.
type StaticPage struct {
	ID        string          `json:"id"`
	Type      PageType        `json:"type"`
	Title     string          `json:"title"`
	Content   json.RawMessage `json:"content"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// PageInput is the create payload for a static page.
type PageInput struct {
	Type    PageType        `json:"type"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content"`
}

// PageUpdate carries only the top-level fields that changed.
type PageUpdate struct {
	Title   *string         `json:"title,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (u PageUpdate) IsEmpty() bool {
	return u.Title == nil && len(u.Content) == 0
}
