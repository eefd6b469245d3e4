package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inovacc/petgallery/internal/core"
	"github.com/inovacc/petgallery/internal/model"
)

const maxActivity = 5

// GalleryModel is the interactive pet browser
type GalleryModel struct {
	ctx     context.Context
	cancel  context.CancelFunc
	browser *core.Browser
	logger  *slog.Logger

	// UI components
	list     list.Model
	search   textinput.Model
	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     galleryKeyMap

	// State
	searching bool
	exporting int
	queued    int // items dispatched by running batches
	finished  int // items of running batches that reported
	activity  []activityItem
	width     int
	height    int
	quitting  bool
}

type activityItem struct {
	title   string
	status  string // "success" or "error"
	message string
}

// Message types
type petsLoadedMsg struct {
	err error
}

type exportItemMsg struct {
	batch  *core.ExportBatch
	result core.ItemResult
}

type exportDoneMsg struct {
	batch *core.ExportBatch
}

// NewGalleryModel creates the browser TUI. Quitting cancels ctx for in-flight work.
func NewGalleryModel(ctx context.Context, browser *core.Browser, logger *slog.Logger) *GalleryModel {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)

	m := &GalleryModel{
		ctx:     ctx,
		cancel:  cancel,
		browser: browser,
		logger:  logger,
		keys:    newGalleryKeyMap(),
		help:    help.New(),
	}

	m.search = textinput.New()
	m.search.Placeholder = "Search pets..."
	m.search.Prompt = "/ "
	m.search.CharLimit = 128

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = spinnerStyle

	m.progress = progress.New(progress.WithDefaultGradient())

	l := list.New(nil, petDelegate{isSelected: browser.IsSelected}, 0, 0)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("pet", "pets")
	l.DisableQuitKeybindings()
	// "d" belongs to the download binding, even while it is disabled
	l.KeyMap.NextPage = key.NewBinding(
		key.WithKeys("right", "l", "pgdown", "f"),
		key.WithHelp("→/l/pgdn", "next page"),
	)
	m.list = l

	return m
}

func (m *GalleryModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadPets(false))
}

func (m *GalleryModel) loadPets(force bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if force {
			err = m.browser.Refresh(m.ctx)
		} else {
			err = m.browser.Load(m.ctx)
		}

		return petsLoadedMsg{err: err}
	}
}

func waitForExport(batch *core.ExportBatch) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-batch.Events()
		if !ok {
			return exportDoneMsg{batch: batch}
		}

		return exportItemMsg{batch: batch, result: result}
	}
}

func (m *GalleryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

		return m, nil

	case petsLoadedMsg:
		if msg.err != nil {
			m.logger.Debug("gallery load failed", slog.String("error", msg.err.Error()))
		}

		return m, m.refresh()

	case exportItemMsg:
		m.finished++
		m.addActivity(msg.result)

		return m, waitForExport(msg.batch)

	case exportDoneMsg:
		m.exporting--
		if m.exporting == 0 {
			m.queued, m.finished = 0, 0
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		if m.searching {
			return m.updateSearch(msg)
		}

		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *GalleryModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.searching = false
		m.search.Blur()

		return m, nil
	}

	var cmd tea.Cmd

	m.search, cmd = m.search.Update(msg)

	if m.search.Value() != m.browser.Search() {
		m.browser.SetSearch(m.search.Value())
		return m, tea.Batch(cmd, m.refresh())
	}

	return m, cmd
}

func (m *GalleryModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Sort):
		m.browser.ToggleSort()
		return m, m.refresh()

	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.list.SelectedItem().(petItem); ok {
			m.browser.Toggle(item.pet.ID)
			m.syncKeys()
		}

		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		m.browser.SelectAll()
		m.syncKeys()

		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.browser.ClearSelection()
		m.syncKeys()

		return m, nil

	case key.Matches(msg, m.keys.Download):
		batch, ok := m.browser.Download(m.ctx)
		if !ok {
			return m, nil
		}

		m.exporting++
		m.queued += batch.Total
		m.logger.Info("download requested",
			slog.String("batch_id", batch.ID),
			slog.Int("items", batch.Total),
		)

		return m, waitForExport(batch)

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadPets(true)
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m *GalleryModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()

	return m, tea.Quit
}

// refresh recomputes the displayed list from the browser
func (m *GalleryModel) refresh() tea.Cmd {
	visible := m.browser.Visible()

	items := make([]list.Item, len(visible))
	for i, p := range visible {
		items[i] = petItem{pet: p}
	}

	cmd := m.list.SetItems(items)

	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}

	m.syncKeys()

	return cmd
}

func (m *GalleryModel) syncKeys() {
	m.keys.Download.SetEnabled(m.browser.CanDownload())
}

func (m *GalleryModel) resize() {
	h, v := docStyle.GetFrameSize()

	// header, search, controls, status, activity and help lines
	reserved := 10 + min(len(m.activity), maxActivity)

	m.list.SetSize(max(m.width-h, 20), max(m.height-v-reserved, 4))
	m.search.Width = max(m.width-h-4, 10)
	m.help.Width = m.width - h
	m.progress.Width = min(max(m.width-h-24, 10), 60)
}

func (m *GalleryModel) addActivity(result core.ItemResult) {
	item := activityItem{title: result.Pet.Title}

	if result.Success() {
		item.status = "success"
		item.message = fmt.Sprintf("saved %s in %.1fs", result.FileName, result.Duration.Seconds())
	} else {
		item.status = "error"
		item.message = result.Err.Error()
	}

	m.activity = append(m.activity, item)
	if len(m.activity) > maxActivity {
		m.activity = m.activity[len(m.activity)-maxActivity:]
	}

	m.resize()
}

// sortLabel names the order a press of the sort key switches to
func sortLabel(d model.SortDirection) string {
	if d == model.Ascending {
		return "Sort Z-A"
	}

	return "Sort A-Z"
}

func (m *GalleryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("Pet Gallery"))
	b.WriteString("\n\n")

	// Search & controls
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.controlsView())
	b.WriteString("\n\n")

	state := m.browser.State()

	// Loading & error states
	switch {
	case state.Loading() && !state.HasData:
		b.WriteString(fmt.Sprintf("%s Loading pets...\n", m.spinner.View()))
	case state.Loading():
		b.WriteString(m.spinner.View() + warningStyle.Render(" Refreshing..."))
		b.WriteString("\n")
	case state.Failed():
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", state.Err)))
		b.WriteString("\n")
	}

	// Pets
	if state.HasData {
		if len(m.list.Items()) == 0 {
			b.WriteString(dimStyle.Render("No pets match your search."))
			b.WriteString("\n")
		} else {
			b.WriteString(m.list.View())
			b.WriteString("\n")
		}
	}

	// Recent export activity
	if len(m.activity) > 0 || m.exporting > 0 {
		b.WriteString("\n")
		b.WriteString(m.activityView())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m *GalleryModel) controlsView() string {
	sortBtn := buttonStyle.Render(sortLabel(m.browser.Sort()))
	selectAll := buttonStyle.Render("Select All")
	clearBtn := buttonStyle.Render("Clear")

	label := fmt.Sprintf("Download (%d)", m.browser.SelectedCount())

	download := buttonDisabledStyle.Render(label)
	if m.browser.CanDownload() {
		download = buttonActiveStyle.Render(label)
	}

	return strings.Join([]string{sortBtn, selectAll, clearBtn, download}, " ")
}

func (m *GalleryModel) activityView() string {
	var b strings.Builder

	b.WriteString(boldStyle.Render("Recent downloads:"))

	b.WriteString("\n")

	if m.exporting > 0 && m.queued > 0 {
		pct := float64(m.finished) / float64(m.queued)
		b.WriteString("  ")
		b.WriteString(m.progress.ViewAs(pct))
		b.WriteString(infoStyle.Render(fmt.Sprintf(" %d/%d", m.finished, m.queued)))
		b.WriteString("\n")
	}

	for _, item := range m.activity {
		statusIcon, style := "[OK]", successStyle
		if item.status != "success" {
			statusIcon, style = "[FAIL]", errorStyle
		}

		message := truncate(item.message, 60)

		b.WriteString(style.Render(fmt.Sprintf("  %s %s", statusIcon, item.title)))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" - %s\n", message)))
	}

	return b.String()
}

// Downloading reports whether export batches are still running
func (m *GalleryModel) Downloading() bool {
	return m.exporting > 0
}
