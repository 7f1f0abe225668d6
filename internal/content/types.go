// Package content turns stored static page payloads into complete, typed
// structures for the page editor and computes minimal change sets.
package content

import (
	"slices"

	"mentorship/admin/internal/domain"
)

// ListSize is the number of slots every fixed list renders.
const ListSize = 4

// Content is one of *HomeContent, *AboutContent or *TeamContent.
type Content interface {
	PageType() domain.PageType
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type TextBlock struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Card struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Testimonial struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Quote  string `json:"quote"`
	Avatar string `json:"avatar"`
	Rating int    `json:"rating"`
}

type CallToAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ButtonText  string `json:"buttonText"`
}

type HomeHeroDescription struct {
	Intro   string `json:"intro"`
	Stats   string `json:"stats"`
	AIMatch string `json:"aiMatch"`
}

type HomeHero struct {
	Title        string              `json:"title"`
	Subtitle     string              `json:"subtitle"`
	Description  HomeHeroDescription `json:"description"`
	PrimaryCTA   string              `json:"primaryCta"`
	SecondaryCTA string              `json:"secondaryCta"`
}

type HomeContent struct {
	Hero         HomeHero      `json:"hero"`
	Features     []Card        `json:"features"`
	Stats        []Stat        `json:"stats"`
	Testimonials []Testimonial `json:"testimonials"`
	CTA          CallToAction  `json:"cta"`
}

func (c *HomeContent) PageType() domain.PageType { return domain.PageTypeHome }

func (c *HomeContent) Clone() *HomeContent {
	out := *c
	out.Features = slices.Clone(c.Features)
	out.Stats = slices.Clone(c.Stats)
	out.Testimonials = slices.Clone(c.Testimonials)
	return &out
}

type Story struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type AboutContent struct {
	Hero    Hero      `json:"hero"`
	Mission TextBlock `json:"mission"`
	Vision  TextBlock `json:"vision"`
	Values  []Card    `json:"values"`
	Stats   []Stat    `json:"stats"`
	Story   Story     `json:"story"`
}

func (c *AboutContent) PageType() domain.PageType { return domain.PageTypeAbout }

func (c *AboutContent) Clone() *AboutContent {
	out := *c
	out.Values = slices.Clone(c.Values)
	out.Stats = slices.Clone(c.Stats)
	return &out
}

type TeamContent struct {
	Hero  Hero         `json:"hero"`
	Stats []Stat       `json:"stats"`
	CTA   CallToAction `json:"cta"`
}

func (c *TeamContent) PageType() domain.PageType { return domain.PageTypeTeam }

func (c *TeamContent) Clone() *TeamContent {
	out := *c
	out.Stats = slices.Clone(c.Stats)
	return &out
}

// Clone deep-copies any content value. A nil input returns nil.
func Clone(c Content) Content {
	switch c := c.(type) {
	case *HomeContent:
		if c != nil {
			return c.Clone()
		}
	case *AboutContent:
		if c != nil {
			return c.Clone()
		}
	case *TeamContent:
		if c != nil {
			return c.Clone()
		}
	}
	return nil
}
