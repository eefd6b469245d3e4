package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inovacc/petgallery/internal/catalog"
	"github.com/inovacc/petgallery/internal/core"
	"github.com/inovacc/petgallery/internal/model"
)

type stubSource struct {
	pets []model.Pet
	err  error
}

func (s stubSource) FetchPets(context.Context) ([]model.Pet, error) {
	return s.pets, s.err
}

type stubImages struct{}

func (stubImages) FetchImage(_ context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, errors.New("no url")
	}

	return []byte("img:" + url), nil
}

type memSaver struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (s *memSaver) Save(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.files == nil {
		s.files = make(map[string][]byte)
	}

	s.files[name] = data

	return "/mem/" + name, nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestGallery(t *testing.T, src stubSource, saver *memSaver) *GalleryModel {
	t.Helper()

	var exporter *core.Exporter
	if saver != nil {
		exporter = &core.Exporter{Images: stubImages{}, Saver: saver}
	}

	browser := core.NewBrowser(core.BrowserOptions{Source: src, Exporter: exporter})

	m := NewGalleryModel(context.Background(), browser, nil)
	t.Cleanup(m.cancel)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return m
}

func load(t *testing.T, m *GalleryModel) {
	t.Helper()

	msg := m.loadPets(false)()
	_, ok := msg.(petsLoadedMsg)
	require.True(t, ok)

	m.Update(msg)
}

func listTitles(m *GalleryModel) []string {
	var out []string
	for _, it := range m.list.Items() {
		out = append(out, it.(petItem).pet.Title)
	}

	return out
}

func TestGalleryLoadingView(t *testing.T) {
	m := newTestGallery(t, stubSource{}, nil)

	view := m.View()
	assert.Contains(t, view, "Pet Gallery")
	assert.Contains(t, view, "Loading pets...")
	assert.Contains(t, view, "Download (0)")
}

func TestGalleryFetchErrorView(t *testing.T) {
	m := newTestGallery(t, stubSource{err: &catalog.FetchError{StatusCode: 500}}, nil)
	load(t, m)

	view := m.View()
	assert.Contains(t, view, "Error: failed to fetch pets")
	assert.NotContains(t, view, "Loading pets...")
	assert.Empty(t, m.list.Items())

	// downloading stays inert
	m.Update(runes("d"))
	assert.False(t, m.Downloading())
	assert.False(t, m.keys.Download.Enabled())
}

func TestGallerySortAndSearch(t *testing.T) {
	src := stubSource{pets: []model.Pet{
		{ID: "Max", Title: "Max"},
		{ID: "Rex", Title: "Rex"},
		{ID: "Bella", Title: "Bella"},
	}}

	m := newTestGallery(t, src, nil)
	load(t, m)

	assert.Equal(t, []string{"Bella", "Max", "Rex"}, listTitles(m))
	assert.Contains(t, m.View(), "Sort Z-A")

	m.Update(runes("s"))
	assert.Equal(t, []string{"Rex", "Max", "Bella"}, listTitles(m))
	assert.Contains(t, m.View(), "Sort A-Z")

	m.Update(runes("/"))
	require.True(t, m.searching)

	m.Update(runes("e"))
	m.Update(runes("x"))
	assert.Equal(t, "ex", m.browser.Search())
	assert.Equal(t, []string{"Rex"}, listTitles(m))

	// keys typed while searching do not act
	assert.Equal(t, 0, m.browser.SelectedCount())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Equal(t, "ex", m.browser.Search())
}

func TestGallerySelectionControls(t *testing.T) {
	src := stubSource{pets: []model.Pet{
		{ID: "Max", Title: "Max"},
		{ID: "Rex", Title: "Rex"},
	}}

	m := newTestGallery(t, src, &memSaver{})
	load(t, m)

	assert.False(t, m.keys.Download.Enabled())

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.True(t, m.browser.IsSelected("Max"))
	assert.True(t, m.keys.Download.Enabled())
	assert.Contains(t, m.View(), "Download (1)")

	m.Update(runes("a"))
	assert.Equal(t, 2, m.browser.SelectedCount())

	m.Update(runes("c"))
	assert.Equal(t, 0, m.browser.SelectedCount())
	assert.False(t, m.keys.Download.Enabled())
}

func TestGalleryDisabledDownloadKeepsCursor(t *testing.T) {
	var pets []model.Pet
	for i := range 40 {
		title := fmt.Sprintf("Pet %02d", i)
		pets = append(pets, model.Pet{ID: title, Title: title})
	}

	m := newTestGallery(t, stubSource{pets: pets}, &memSaver{})
	load(t, m)

	require.Greater(t, m.list.Paginator.TotalPages, 1)
	require.Equal(t, 0, m.list.Index())

	m.Update(runes("d"))
	assert.Equal(t, 0, m.list.Index())
	assert.Equal(t, 0, m.list.Paginator.Page)
	assert.False(t, m.Downloading())

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 1, m.list.Paginator.Page)
}

func TestGalleryDownloadFlow(t *testing.T) {
	src := stubSource{pets: []model.Pet{
		{ID: "Rex", Title: "Rex", ImageURL: "https://img.example/rex.png"},
	}}

	saver := &memSaver{}
	m := newTestGallery(t, src, saver)
	load(t, m)

	m.Update(runes("a"))

	_, cmd := m.Update(runes("d"))
	require.NotNil(t, cmd)
	assert.True(t, m.Downloading())

	msg := cmd()
	item, ok := msg.(exportItemMsg)
	require.True(t, ok)
	assert.True(t, item.result.Success())

	_, cmd = m.Update(item)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "1/1")

	done, ok := cmd().(exportDoneMsg)
	require.True(t, ok)

	m.Update(done)
	assert.False(t, m.Downloading())

	view := m.View()
	assert.Contains(t, view, "Recent downloads:")
	assert.Contains(t, view, "Rex")

	assert.Equal(t, []byte("img:https://img.example/rex.png"), saver.files["Rex.jpg"])
}

func TestGalleryQuitCancelsContext(t *testing.T) {
	m := newTestGallery(t, stubSource{}, nil)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Error(t, m.ctx.Err())
	assert.Empty(t, m.View())
}
