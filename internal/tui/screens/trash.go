package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/launchtracker/internal/store"
)

type trashMode int

const (
	trashModeList trashMode = iota
	trashModeSearch
	trashModePurge
	trashModeEmpty
)

type Trash struct {
	env    *Env
	width  int
	height int

	items   []store.TrashItem
	cursor  int
	mode    trashMode
	search  textinput.Model
	message string
}

func NewTrash(env *Env) *Trash {
	return &Trash{
		env:    env,
		search: newInput("Cerca nel cestino", 60),
	}
}

func (t *Trash) SetSize(width, height int) {
	t.width = width
	t.height = height
}

func (t *Trash) Init() tea.Cmd {
	t.mode = trashModeList
	t.message = ""
	t.reload()
	return nil
}

func (t *Trash) reload() {
	t.items = store.Trash(t.env.Config, t.env.Launches, strings.TrimSpace(t.search.Value()))
	t.cursor = clampCursor(t.cursor, len(t.items))
}

func (t *Trash) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		t.reload()
		return nil
	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	if t.mode == trashModeSearch {
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		return cmd
	}
	return nil
}

func (t *Trash) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch t.mode {
	case trashModeList:
		return t.handleListKey(msg)

	case trashModeSearch:
		switch msg.String() {
		case "enter", "esc":
			t.search.Blur()
			t.mode = trashModeList
			t.reload()
			return nil
		}
		var cmd tea.Cmd
		t.search, cmd = t.search.Update(msg)
		t.reload()
		return cmd

	case trashModePurge, trashModeEmpty:
		switch msg.String() {
		case "y", "Y":
			if t.mode == trashModeEmpty {
				n := store.EmptyTrash(t.env.Config, t.env.Launches)
				t.message = fmt.Sprintf("Eliminati definitivamente %d elementi", n)
			} else if len(t.items) > 0 {
				item := t.items[t.cursor]
				store.PurgeTrashItem(t.env.Config, t.env.Launches, item)
				t.message = fmt.Sprintf("Eliminato definitivamente: %s", item.Name)
			}
			t.mode = trashModeList
			t.reload()
		case "n", "N", "esc":
			t.mode = trashModeList
		}
	}
	return nil
}

func (t *Trash) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < len(t.items)-1 {
			t.cursor++
		}
	case "/":
		t.mode = trashModeSearch
		t.search.Focus()
		return textinput.Blink
	case "r", "enter":
		if len(t.items) > 0 {
			item := t.items[t.cursor]
			store.RestoreTrashItem(t.env.Config, t.env.Launches, item)
			t.message = fmt.Sprintf("Ripristinato: %s", item.Name)
		}
	case "d":
		if len(t.items) > 0 {
			t.mode = trashModePurge
		}
	case "E":
		if len(t.items) > 0 {
			t.mode = trashModeEmpty
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	t.reload()
	return nil
}

func (t *Trash) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("CESTINO"))
	b.WriteString("\n")
	renderMessage(&b, t.message, nil)

	switch t.mode {
	case trashModePurge:
		if len(t.items) > 0 {
			b.WriteString(WarningStyle.Render(fmt.Sprintf("Eliminare definitivamente '%s'? (y/n)", t.items[t.cursor].Name)))
			b.WriteString("\n")
			return b.String()
		}
	case trashModeEmpty:
		b.WriteString(WarningStyle.Render("Svuotare il cestino? L'operazione non e' reversibile. (y/n)"))
		b.WriteString("\n")
		return b.String()
	}

	if t.mode == trashModeSearch || t.search.Value() != "" {
		b.WriteString("Cerca: ")
		b.WriteString(t.search.View())
		b.WriteString("\n\n")
	}

	if len(t.items) == 0 {
		b.WriteString(DimStyle.Render("Il cestino e' vuoto."))
		b.WriteString("\n")
	}

	now := t.env.Now()
	for i, item := range t.items {
		cursor := "  "
		style := NormalStyle
		if i == t.cursor {
			cursor = "> "
			style = SelectedStyle
		}
		line := fmt.Sprintf("%s%s %s", cursor, cell(string(item.Kind), 9), cell(item.Name, 36))
		b.WriteString(style.Render(line))
		b.WriteString(DimStyle.Render(store.RelativeTime(now, item.DeletedAt)))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[r] Ripristina  [d] Elimina definitivamente  [E] Svuota  [/] Cerca  [q] Indietro"))
	return b.String()
}
