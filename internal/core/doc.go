// Package core provides the client-side data workflow of petgallery.
//
// This package contains all core functionality separated from UI concerns.
// Functions in this package return errors instead of printing, and log
// through log/slog.
//
// # Filter-Sort Pipeline
//
// [Visible] derives the displayed list from the full catalog, a search
// term and a sort direction. It is a pure function and recomputes on every
// call.
//
// # Selection
//
// [Selection] tracks marked pet ids independently of the search term.
// [Selection.SelectAll] always works on the full catalog.
//
// # Export
//
// [Exporter.DownloadSelected] starts one goroutine per selected pet that
// retrieves the image and saves it as "<title>.jpg". Items succeed or fail
// on their own; failures are logged.
//
// # Browser
//
// [Browser] is the single owner of the search term, sort direction and
// selection of a session, backed by a [query.Cache] for the catalog list.
package core
