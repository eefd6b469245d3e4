// Package model defines the data structures shared by the petgallery packages.
//
// # Pet
//
// The [Pet] struct is one catalog record after normalization:
//
//	type Pet struct {
//	    ID          string // Source title, used as identity
//	    Title       string // Display name
//	    Description string // Free text, may be empty
//	    ImageURL    string // Absolute image URL
//	    CreatedAt   string // Date string as sent by the catalog
//	}
//
// # SortDirection
//
// [SortDirection] is either [Ascending] (the default) or [Descending] and
// controls the title ordering of the displayed list.
package model
