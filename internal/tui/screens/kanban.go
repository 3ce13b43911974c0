package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/store"
)

const kanbanCardWidth = 24

type Kanban struct {
	env    *Env
	width  int
	height int

	columns []store.KanbanColumn
	col     int
	row     int
	message string
}

func NewKanban(env *Env) *Kanban {
	return &Kanban{env: env}
}

func (k *Kanban) SetSize(width, height int) {
	k.width = width
	k.height = height
}

func (k *Kanban) Init() tea.Cmd {
	k.message = ""
	k.reload()
	return nil
}

func (k *Kanban) reload() {
	k.columns = k.env.Launches.Kanban(k.env.Config.Items(models.KindStatuses))
	k.col = clampCursor(k.col, len(k.columns))
	if len(k.columns) > 0 {
		k.row = clampCursor(k.row, len(k.columns[k.col].Launches))
	}
}

func (k *Kanban) current() (models.Launch, bool) {
	if len(k.columns) == 0 || len(k.columns[k.col].Launches) == 0 {
		return models.Launch{}, false
	}
	return k.columns[k.col].Launches[k.row], true
}

func (k *Kanban) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		k.reload()
	case tea.KeyMsg:
		return k.handleKey(msg)
	}
	return nil
}

func (k *Kanban) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h":
		if k.col > 0 {
			k.col--
		}
	case "right", "l":
		if k.col < len(k.columns)-1 {
			k.col++
		}
	case "up", "k":
		if k.row > 0 {
			k.row--
		}
	case "down", "j":
		k.row++
	case "<", "H":
		k.move(-1)
	case ">", "L":
		k.move(1)
	case "enter", "i":
		if l, ok := k.current(); ok {
			return OpenDetail(l.ID, "kanban")
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	k.reload()
	return nil
}

// move shifts the current card to the neighbouring status column.
func (k *Kanban) move(delta int) {
	l, ok := k.current()
	target := k.col + delta
	if !ok || target < 0 || target >= len(k.columns) || k.columns[target].Status.ID == "" {
		return
	}
	status := k.columns[target].Status
	k.env.Launches.UpdateLaunch(l.ID, models.LaunchPatch{Status: &status.ID})
	k.message = fmt.Sprintf("%s → %s", l.Name, status.Name)
	k.col = target
	k.row = 0
	for i, other := range k.env.Launches.Kanban(k.env.Config.Items(models.KindStatuses))[target].Launches {
		if other.ID == l.ID {
			k.row = i
		}
	}
}

func (k *Kanban) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("KANBAN"))
	b.WriteString("\n")
	renderMessage(&b, k.message, nil)

	cols := make([]string, 0, len(k.columns))
	for ci, column := range k.columns {
		var c strings.Builder
		title := fmt.Sprintf("%s (%d)", column.Status.Name, len(column.Launches))
		if ci == k.col {
			c.WriteString(SelectedStyle.Render(Swatch(column.Status.Color, title)))
		} else {
			c.WriteString(Swatch(column.Status.Color, title))
		}
		c.WriteString("\n\n")

		if len(column.Launches) == 0 {
			c.WriteString(DimStyle.Render("vuoto"))
		}
		for ri, l := range column.Launches {
			done, total := store.Progress(l)
			card := cell(l.Name, kanbanCardWidth) + "\n" +
				DimStyle.Render(cell(k.env.Config.Label(models.KindShops, l.Shop), kanbanCardWidth)) + "\n" +
				DimStyle.Render(fmt.Sprintf("%s  %d/%d", l.EndDate, done, total))
			style := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
			if ci == k.col && ri == k.row {
				style = style.BorderForeground(lipgloss.Color("205"))
			}
			c.WriteString(style.Render(card))
			c.WriteString("\n")
		}
		cols = append(cols, lipgloss.NewStyle().Width(kanbanCardWidth+3).Render(c.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	b.WriteString(HelpStyle.Render("[←/→] Colonna  [↑/↓] Scheda  [</>] Sposta di stato  [enter] Dettaglio  [q] Indietro"))
	return b.String()
}
