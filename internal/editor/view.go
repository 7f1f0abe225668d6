package editor

import (
	"cmp"
	"slices"
	"strings"

	"mentorship/admin/internal/domain"
)

type SortKey string

const (
	SortByName        SortKey = "name"
	SortByExpertCount SortKey = "expertCount"
)

// ParseSortKey falls back to SortByName for unknown input.
func ParseSortKey(s string) SortKey {
	if SortKey(s) == SortByExpertCount {
		return SortByExpertCount
	}
	return SortByName
}

type Query struct {
	Search     string
	SortKey    SortKey
	Descending bool
	HideEmpty  bool // drop subcategories without experts
}

// Project filters and sorts categories without touching the input. A
// category whose own name or description matches keeps all of its
// subcategories; otherwise only the matching ones survive, and the category
// is dropped when none do.
func Project(categories []domain.Category, q Query) []domain.Category {
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		ownMatch := matches(term, c.Name, c.Description)

		subs := make([]domain.Subcategory, 0, len(c.Subcategories))
		for _, s := range c.Subcategories {
			if q.HideEmpty && s.ExpertCount == 0 {
				continue
			}
			if !ownMatch && !matches(term, s.Name, s.Description) {
				continue
			}
			subs = append(subs, s)
		}

		if !ownMatch && len(subs) == 0 {
			continue
		}

		sortSubcategories(subs, q)

		projected := c.Clone()
		projected.Subcategories = subs
		out = append(out, projected)
	}

	slices.SortStableFunc(out, func(a, b domain.Category) int {
		var r int
		if q.SortKey == SortByExpertCount {
			r = cmp.Compare(a.SubcategoryExpertCount(), b.SubcategoryExpertCount())
		} else {
			r = compareNames(a.Name, b.Name)
		}
		if q.Descending {
			return -r
		}
		return r
	})

	return out
}

func sortSubcategories(subs []domain.Subcategory, q Query) {
	slices.SortStableFunc(subs, func(a, b domain.Subcategory) int {
		var r int
		if q.SortKey == SortByExpertCount {
			r = cmp.Compare(a.ExpertCount, b.ExpertCount)
		} else {
			r = compareNames(a.Name, b.Name)
		}
		if q.Descending {
			return -r
		}
		return r
	})
}

func compareNames(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}
