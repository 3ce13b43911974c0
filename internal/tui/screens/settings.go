package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/launchtracker/internal/models"
)

type settingsMode int

const (
	settingsModeList settingsMode = iota
	settingsModeAdd
	settingsModeEdit
	settingsModeDelete
)

// Settings manages the shop, status and priority taxonomies.
type Settings struct {
	env    *Env
	width  int
	height int

	kind    int
	items   []models.ConfigItem
	cursor  int
	mode    settingsMode
	input   textinput.Model
	err     error
	message string
}

func NewSettings(env *Env) *Settings {
	return &Settings{
		env:   env,
		input: newInput("Nome", 60),
	}
}

func (s *Settings) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Settings) Init() tea.Cmd {
	s.mode = settingsModeList
	s.message = ""
	s.reload()
	return nil
}

func (s *Settings) currentKind() models.TaxonomyKind {
	return models.TaxonomyKinds[s.kind]
}

func (s *Settings) reload() {
	s.items = s.env.Config.Items(s.currentKind())
	s.cursor = clampCursor(s.cursor, len(s.items))
}

func (s *Settings) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		s.reload()
		return nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == settingsModeAdd || s.mode == settingsModeEdit {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	return nil
}

func (s *Settings) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch s.mode {
	case settingsModeList:
		return s.handleListKey(msg)
	case settingsModeAdd, settingsModeEdit:
		return s.handleInputKey(msg)
	case settingsModeDelete:
		return s.handleDeleteKey(msg)
	}
	return nil
}

func (s *Settings) handleListKey(msg tea.KeyMsg) tea.Cmd {
	cs := s.env.Config
	kind := s.currentKind()

	switch msg.String() {
	case "tab":
		s.kind = (s.kind + 1) % len(models.TaxonomyKinds)
		s.cursor = 0
	case "shift+tab":
		s.kind = (s.kind + len(models.TaxonomyKinds) - 1) % len(models.TaxonomyKinds)
		s.cursor = 0
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case "K":
		if len(s.items) > 0 {
			cs.MoveItem(kind, s.items[s.cursor].ID, -1)
			s.cursor = max(0, s.cursor-1)
		}
	case "J":
		if len(s.items) > 0 {
			cs.MoveItem(kind, s.items[s.cursor].ID, 1)
			s.cursor = min(len(s.items)-1, s.cursor+1)
		}
	case "c":
		if len(s.items) > 0 {
			item := s.items[s.cursor]
			color := nextColor(item.Color)
			cs.UpdateTaxonomyItem(kind, item.ID, models.ConfigItemPatch{Color: &color})
		}
	case "a":
		s.mode = settingsModeAdd
		s.input.SetValue("")
		s.input.Focus()
		return textinput.Blink
	case "e":
		if len(s.items) > 0 {
			s.mode = settingsModeEdit
			s.input.SetValue(s.items[s.cursor].Name)
			s.input.Focus()
			return textinput.Blink
		}
	case "d":
		if len(s.items) > 0 {
			s.mode = settingsModeDelete
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	s.reload()
	return nil
}

func (s *Settings) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(s.input.Value())
		if name == "" {
			s.err = ErrNameRequired
			return nil
		}

		cs := s.env.Config
		kind := s.currentKind()
		if s.mode == settingsModeAdd {
			color := Palette[len(s.items)%len(Palette)]
			if item, ok := cs.AddTaxonomyItem(kind, name, color); ok {
				s.message = fmt.Sprintf("Aggiunto: %s", item.Name)
			}
		} else {
			cs.UpdateTaxonomyItem(kind, s.items[s.cursor].ID, models.ConfigItemPatch{Name: &name})
			s.message = fmt.Sprintf("Rinominato: %s", name)
		}
		s.mode = settingsModeList
		s.input.Blur()
		s.reload()

	case "esc":
		s.mode = settingsModeList
		s.input.Blur()

	default:
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return cmd
	}
	return nil
}

func (s *Settings) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		item := s.items[s.cursor]
		s.env.Config.RemoveTaxonomyItem(s.currentKind(), item.ID)
		s.message = fmt.Sprintf("Eliminato: %s", item.Name)
		s.mode = settingsModeList
		s.reload()

	case "n", "N", "esc":
		s.mode = settingsModeList
	}
	return nil
}

func (s *Settings) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("IMPOSTAZIONI"))
	b.WriteString("\n")

	var tabs []string
	for i, kind := range models.TaxonomyKinds {
		if i == s.kind {
			tabs = append(tabs, SelectedStyle.Render("["+kind.Label()+"]"))
		} else {
			tabs = append(tabs, DimStyle.Render(" "+kind.Label()+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	renderMessage(&b, s.message, s.err)
	s.err = nil

	switch s.mode {
	case settingsModeAdd, settingsModeEdit:
		if s.mode == settingsModeAdd {
			b.WriteString("Nuova voce:\n")
		} else {
			b.WriteString("Rinomina voce:\n")
		}
		b.WriteString(s.input.View())
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("[enter] Salva  [esc] Annulla"))
		return b.String()

	case settingsModeDelete:
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"Eliminare '%s'? I lanci che la usano mostreranno l'id grezzo. (y/n)",
			s.items[s.cursor].Name,
		)))
		b.WriteString("\n")
		return b.String()
	}

	if len(s.items) == 0 {
		b.WriteString(DimStyle.Render("Nessuna voce."))
		b.WriteString("\n")
	}
	for i, item := range s.items {
		cursor := "  "
		style := NormalStyle
		if i == s.cursor {
			cursor = "> "
			style = SelectedStyle
		}
		b.WriteString(style.Render(cursor) + Swatch(item.Color, style.Render(item.Name)) + DimStyle.Render("  "+item.ID))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[tab] Tassonomia  [a] Aggiungi  [e] Rinomina  [c] Colore  [d] Elimina  [K/J] Sposta  [q] Indietro"))
	return b.String()
}
