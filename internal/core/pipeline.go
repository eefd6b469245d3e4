package core

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/inovacc/petgallery/internal/model"
)

// DefaultLocale is used when no sort locale is configured
const DefaultLocale = "en"

// View is the input of the filter-sort pipeline besides the pets themselves
type View struct {
	Search string
	Sort   model.SortDirection
	Locale string
}

// Visible derives the displayed sequence from the full pet set.
// A pet is kept when its title or description contains the search term,
// ignoring case. The result is ordered by title with locale-aware collation;
// Descending is the exact reverse of Ascending. pets is not modified.
func Visible(pets []model.Pet, v View) []model.Pet {
	term := strings.ToLower(v.Search)

	out := make([]model.Pet, 0, len(pets))

	for _, p := range pets {
		if Matches(p, term) {
			out = append(out, p)
		}
	}

	SortByTitle(out, v.Sort, v.Locale)

	return out
}

// Matches reports whether pet matches an already lower-cased term
func Matches(p model.Pet, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}

	return strings.Contains(strings.ToLower(p.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Description), lowerTerm)
}

// SortByTitle sorts pets in place by title
func SortByTitle(pets []model.Pet, dir model.SortDirection, locale string) {
	// Collators keep internal buffers and are not safe for concurrent use
	col := collate.New(parseLocale(locale))

	slices.SortStableFunc(pets, func(a, b model.Pet) int {
		if c := col.CompareString(a.Title, b.Title); c != 0 {
			return c
		}

		return strings.Compare(a.Title, b.Title)
	})

	if dir == model.Descending {
		slices.Reverse(pets)
	}
}

func parseLocale(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}

	return tag
}
