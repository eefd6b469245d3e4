// Package cli provides the terminal user interface for petgallery.
//
// The package uses [Bubbletea] for the interactive browser and [Lipgloss]
// for styling. GalleryModel follows the Model-View-Update architecture and
// delegates all search, sort, selection and export state to a
// [core.Browser]; the model only renders it and maps keys to operations.
//
// Export progress is streamed by reading [core.ExportBatch.Events] one item
// at a time from a command, so the UI never blocks on network or disk.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
