package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/inovacc/petgallery/internal/model"
)

// petItem implements list.Item for one catalog card
type petItem struct {
	pet model.Pet
}

func (i petItem) Title() string { return i.pet.Title }

func (i petItem) Description() string { return i.pet.Description }

func (i petItem) FilterValue() string { return i.pet.Title }

// addedOn formats the creation date like a short locale date, or returns the raw value
func addedOn(p model.Pet) string {
	if t, ok := p.Created(); ok {
		return "Added on " + t.Format("1/2/2006")
	}

	if p.CreatedAt == "" {
		return ""
	}

	return "Added on " + p.CreatedAt
}

// petDelegate renders a card with its selection marker
type petDelegate struct {
	isSelected func(id string) bool
}

func (d petDelegate) Height() int  { return 3 }
func (d petDelegate) Spacing() int { return 1 }
func (d petDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d petDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(petItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = cursorStyle.Render("> ")
	}

	marker := "[ ]"
	title := cardTitleStyle.Render(entry.pet.Title)

	if d.isSelected != nil && d.isSelected(entry.pet.ID) {
		marker = cardSelectedStyle.Render("[x]")
		title = cardSelectedStyle.Render(entry.pet.Title)
	}

	width := m.Width() - 8
	if width < 10 {
		width = 10
	}

	desc := truncate(entry.pet.Description, width)

	lines := []string{
		fmt.Sprintf("%s%s %s", cursor, marker, title),
		"      " + desc,
		"      " + dimStyle.Render(addedOn(entry.pet)),
	}

	fmt.Fprint(w, strings.Join(lines, "\n"))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}
