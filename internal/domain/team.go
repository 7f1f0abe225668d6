package domain

import (
	"io"
	"time"
)

type TeamMember struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Bio         string     `json:"bio"`
	ImageURL    string     `json:"image,omitempty"`
	LinkedInURL string     `json:"linkedin,omitempty"`
	Order       int        `json:"order"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TeamMemberInput is sent as multipart form data. Image is optional; when
// set, ImageName is used as the uploaded file name.
type TeamMemberInput struct {
	Name        string
	Role        string
	Bio         string
	LinkedInURL string
	Order       int
	Image       io.Reader
	ImageName   string
}
