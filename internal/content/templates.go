package content

import (
	"fmt"

	"mentorship/admin/internal/domain"
)

const defaultRating = 5

func EmptyHome() *HomeContent {
	testimonials := make([]Testimonial, ListSize)
	for i := range testimonials {
		testimonials[i].Rating = defaultRating
	}
	return &HomeContent{
		Features:     make([]Card, ListSize),
		Stats:        make([]Stat, ListSize),
		Testimonials: testimonials,
	}
}

func EmptyAbout() *AboutContent {
	return &AboutContent{
		Values: make([]Card, ListSize),
		Stats:  make([]Stat, ListSize),
	}
}

func EmptyTeam() *TeamContent {
	return &TeamContent{
		Stats: make([]Stat, ListSize),
	}
}

// Empty returns a fresh template for pageType.
func Empty(pageType domain.PageType) (Content, error) {
	switch pageType {
	case domain.PageTypeHome:
		return EmptyHome(), nil
	case domain.PageTypeAbout:
		return EmptyAbout(), nil
	case domain.PageTypeTeam:
		return EmptyTeam(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPageType, pageType)
	}
}
