package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mentorship/admin/internal/domain"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var ErrUnknownPageType = errors.New("unknown page type")

// Normalize fills the page's stored content into the complete shape for its
// type. Missing, blank or malformed values fall back to the empty template, and
// malformed content is logged rather than returned. The page is not modified.
func Normalize(page domain.StaticPage) (Content, error) {
	if !page.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPageType, page.Type)
	}

	doc := parseDocument(page)

	switch page.Type {
	case domain.PageTypeHome:
		return normalizeHome(doc), nil
	case domain.PageTypeAbout:
		return normalizeAbout(doc), nil
	default:
		return normalizeTeam(doc), nil
	}
}

// parseDocument accepts content stored as a JSON object or as a JSON string
// holding one. Anything else yields an empty result.
func parseDocument(page domain.StaticPage) gjson.Result {
	raw := strings.TrimSpace(string(page.Content))
	if raw == "" || raw == "null" {
		return gjson.Result{}
	}

	fields := log.Fields{"page": page.ID, "type": page.Type}

	if strings.HasPrefix(raw, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			log.WithFields(fields).WithError(err).Warn("⚠️ Failed to decode page content string, using empty template")
			return gjson.Result{}
		}
		raw = strings.TrimSpace(inner)
		if raw == "" {
			return gjson.Result{}
		}
	}

	if !gjson.Valid(raw) {
		log.WithFields(fields).Warn("⚠️ Page content is not valid JSON, using empty template")
		return gjson.Result{}
	}

	doc := gjson.Parse(raw)
	if !doc.IsObject() {
		log.WithFields(fields).Warnf("⚠️ Page content is a JSON %s, not an object, using empty template", doc.Type)
		return gjson.Result{}
	}
	return doc
}

func normalizeHome(doc gjson.Result) *HomeContent {
	tmpl := EmptyHome()
	hero := doc.Get("hero")
	desc := hero.Get("description")
	cta := doc.Get("cta")

	return &HomeContent{
		Hero: HomeHero{
			Title:    text(hero, "title", tmpl.Hero.Title),
			Subtitle: text(hero, "subtitle", tmpl.Hero.Subtitle),
			Description: HomeHeroDescription{
				Intro:   richText(desc, "intro", tmpl.Hero.Description.Intro),
				Stats:   richText(desc, "stats", tmpl.Hero.Description.Stats),
				AIMatch: richText(desc, "aiMatch", tmpl.Hero.Description.AIMatch),
			},
			PrimaryCTA:   text(hero, "primaryCta", tmpl.Hero.PrimaryCTA),
			SecondaryCTA: text(hero, "secondaryCta", tmpl.Hero.SecondaryCTA),
		},
		Features:     fixedList(doc.Get("features"), tmpl.Features, card),
		Stats:        fixedList(doc.Get("stats"), tmpl.Stats, stat),
		Testimonials: fixedList(doc.Get("testimonials"), tmpl.Testimonials, testimonial),
		CTA:          callToAction(cta, tmpl.CTA),
	}
}

func normalizeAbout(doc gjson.Result) *AboutContent {
	tmpl := EmptyAbout()
	hero := doc.Get("hero")
	story := doc.Get("story")

	return &AboutContent{
		Hero: Hero{
			Title:    text(hero, "title", tmpl.Hero.Title),
			Subtitle: text(hero, "subtitle", tmpl.Hero.Subtitle),
		},
		Mission: textBlock(doc.Get("mission"), tmpl.Mission),
		Vision:  textBlock(doc.Get("vision"), tmpl.Vision),
		Values:  fixedList(doc.Get("values"), tmpl.Values, card),
		Stats:   fixedList(doc.Get("stats"), tmpl.Stats, stat),
		Story: Story{
			Title: text(story, "title", tmpl.Story.Title),
			Body:  richText(story, "body", tmpl.Story.Body),
		},
	}
}

func normalizeTeam(doc gjson.Result) *TeamContent {
	tmpl := EmptyTeam()
	hero := doc.Get("hero")

	return &TeamContent{
		Hero: Hero{
			Title:    text(hero, "title", tmpl.Hero.Title),
			Subtitle: text(hero, "subtitle", tmpl.Hero.Subtitle),
		},
		Stats: fixedList(doc.Get("stats"), tmpl.Stats, stat),
		CTA:   callToAction(doc.Get("cta"), tmpl.CTA),
	}
}

// fixedList maps up to ListSize entries of v onto the template slots. Extra
// entries are dropped and missing ones keep the template value.
func fixedList[T any](v gjson.Result, tmpl []T, item func(gjson.Result, T) T) []T {
	var entries []gjson.Result
	if v.IsArray() {
		entries = v.Array()
	}

	out := make([]T, ListSize)
	for i := range out {
		var slot T
		if i < len(tmpl) {
			slot = tmpl[i]
		}
		var entry gjson.Result
		if i < len(entries) {
			entry = entries[i]
		}
		out[i] = item(entry, slot)
	}
	return out
}

func card(v gjson.Result, tmpl Card) Card {
	return Card{
		Icon:        text(v, "icon", tmpl.Icon),
		Title:       text(v, "title", tmpl.Title),
		Description: richText(v, "description", tmpl.Description),
	}
}

func stat(v gjson.Result, tmpl Stat) Stat {
	return Stat{
		Value: text(v, "value", tmpl.Value),
		Label: text(v, "label", tmpl.Label),
	}
}

func testimonial(v gjson.Result, tmpl Testimonial) Testimonial {
	return Testimonial{
		Name:   text(v, "name", tmpl.Name),
		Role:   text(v, "role", tmpl.Role),
		Quote:  richText(v, "quote", tmpl.Quote),
		Avatar: text(v, "avatar", tmpl.Avatar),
		Rating: rating(v, "rating", tmpl.Rating),
	}
}

func textBlock(v gjson.Result, tmpl TextBlock) TextBlock {
	return TextBlock{
		Title:       text(v, "title", tmpl.Title),
		Description: richText(v, "description", tmpl.Description),
	}
}

func callToAction(v gjson.Result, tmpl CallToAction) CallToAction {
	return CallToAction{
		Title:       text(v, "title", tmpl.Title),
		Description: richText(v, "description", tmpl.Description),
		ButtonText:  text(v, "buttonText", tmpl.ButtonText),
	}
}

// scalar returns the leaf at path when it is a string, number or bool.
func scalar(v gjson.Result, path string) (gjson.Result, bool) {
	leaf := v.Get(path)
	switch leaf.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return leaf, true
	default:
		return leaf, false
	}
}

func text(v gjson.Result, path, fallback string) string {
	leaf, ok := scalar(v, path)
	if !ok {
		return fallback
	}
	s := leaf.String()
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func richText(v gjson.Result, path, fallback string) string {
	leaf, ok := scalar(v, path)
	if !ok {
		return fallback
	}
	s := leaf.String()
	if isBlankHTML(s) {
		return fallback
	}
	return s
}

// rating accepts 1..5, given as a number or numeric string.
func rating(v gjson.Result, path string, fallback int) int {
	leaf, ok := scalar(v, path)
	if !ok {
		return fallback
	}
	n := leaf.Int()
	if n < 1 || n > 5 {
		return fallback
	}
	return int(n)
}
