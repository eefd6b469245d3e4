package core

import (
	"context"

	"github.com/inovacc/petgallery/internal/model"
	"github.com/inovacc/petgallery/internal/query"
)

// PetsQueryKey identifies the catalog list in the query cache
const PetsQueryKey = "pets"

// PetSource fetches the full catalog
type PetSource interface {
	FetchPets(ctx context.Context) ([]model.Pet, error)
}

// Browser owns the interaction state of one gallery session: the search
// term, the sort direction and the selection. It is not safe for concurrent
// use; callers mutate it from a single goroutine.
type Browser struct {
	source   PetSource
	cache    *query.Cache[[]model.Pet]
	exporter *Exporter

	view      View
	selection *Selection
}

// BrowserOptions configures a Browser
type BrowserOptions struct {
	Source   PetSource
	Cache    *query.Cache[[]model.Pet] // optional, a private cache is created when nil
	Exporter *Exporter
	Locale   string
}

// NewBrowser creates a Browser with an empty search, ascending order and no selection
func NewBrowser(opts BrowserOptions) *Browser {
	cache := opts.Cache
	if cache == nil {
		cache = query.New[[]model.Pet]()
	}

	return &Browser{
		source:    opts.Source,
		cache:     cache,
		exporter:  opts.Exporter,
		view:      View{Sort: model.Ascending, Locale: opts.Locale},
		selection: NewSelection(),
	}
}

// Load fetches the catalog unless a successful result is already cached.
// It is safe to call from a goroutine other than the owner's.
func (b *Browser) Load(ctx context.Context) error {
	if res := b.State(); res.Status == query.StatusSuccess {
		return nil
	}

	return b.Refresh(ctx)
}

// Refresh re-executes the catalog query. Concurrent refreshes share one request.
func (b *Browser) Refresh(ctx context.Context) error {
	_, err := b.cache.Fetch(ctx, PetsQueryKey, b.source.FetchPets)
	return err
}

// State returns the current fetch result
func (b *Browser) State() query.Result[[]model.Pet] {
	return b.cache.Get(PetsQueryKey)
}

// Pets returns the full fetched set, including data kept from an earlier
// success while the current attempt is pending or failed
func (b *Browser) Pets() []model.Pet {
	res := b.State()
	if !res.HasData {
		return nil
	}

	return res.Data
}

// Visible returns the displayed sequence for the current search and sort
func (b *Browser) Visible() []model.Pet {
	return Visible(b.Pets(), b.view)
}

// Search returns the current search term
func (b *Browser) Search() string { return b.view.Search }

// SetSearch replaces the search term. The selection is not affected.
func (b *Browser) SetSearch(term string) { b.view.Search = term }

// Sort returns the current sort direction
func (b *Browser) Sort() model.SortDirection { return b.view.Sort }

// SetSort sets the sort direction
func (b *Browser) SetSort(d model.SortDirection) { b.view.Sort = d }

// ToggleSort flips the sort direction
func (b *Browser) ToggleSort() { b.view.Sort = b.view.Sort.Toggle() }

// Toggle flips the selection of one pet id
func (b *Browser) Toggle(id string) { b.selection.Toggle(id) }

// SelectAll selects every pet of the full set, ignoring the search term.
// Without fetched data it does nothing.
func (b *Browser) SelectAll() {
	pets := b.Pets()
	if pets == nil {
		return
	}

	b.selection.SelectAll(pets)
}

// ClearSelection empties the selection
func (b *Browser) ClearSelection() { b.selection.Clear() }

// Selection returns the selection. Callers must not mutate it directly.
func (b *Browser) Selection() *Selection { return b.selection }

// SelectedCount is the number of selected ids
func (b *Browser) SelectedCount() int { return b.selection.Len() }

// IsSelected reports whether id is selected
func (b *Browser) IsSelected(id string) bool { return b.selection.Contains(id) }

// CanDownload reports whether the download control is actionable
func (b *Browser) CanDownload() bool {
	return b.exporter != nil && b.selection.Len() > 0
}

// Download starts exporting the selected pets. It is inert and returns false
// when nothing is selected.
func (b *Browser) Download(ctx context.Context) (*ExportBatch, bool) {
	if !b.CanDownload() {
		return nil, false
	}

	return b.exporter.DownloadSelected(ctx, b.Pets(), b.selection), true
}
