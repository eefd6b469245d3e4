package model

import (
	"strings"
	"time"
)

// Pet is a catalog item. Values are never modified after a fetch.
type Pet struct {
	// ID identifies the pet within one fetch result. It is the source title.
	ID string `json:"id"`

	// Title is the display name
	Title string `json:"title"`

	// Description is free text and may be empty
	Description string `json:"description"`

	// ImageURL is the absolute URL of the pet image
	ImageURL string `json:"image_url"`

	// CreatedAt is the creation date as sent by the catalog
	CreatedAt string `json:"created_at"`
}

var createdLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006 15:04:05 PM",
	"Jan 2, 2006",
}

// Created parses CreatedAt. The second value is false when no known layout matches.
func (p Pet) Created() (time.Time, bool) {
	raw := strings.TrimSpace(p.CreatedAt)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range createdLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// SortDirection orders the displayed pets by title
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	switch d {
	case Descending:
		return "desc"
	default:
		return "asc"
	}
}

// Toggle returns the opposite direction
func (d SortDirection) Toggle() SortDirection {
	if d == Ascending {
		return Descending
	}

	return Ascending
}

// ParseSortDirection converts a string to SortDirection
func ParseSortDirection(s string) SortDirection {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending", "z-a":
		return Descending
	default:
		return Ascending
	}
}
