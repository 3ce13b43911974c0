package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/launchtracker/internal/models"
)

type columnsMode int

const (
	columnsModeList columnsMode = iota
	columnsModeAdd
	columnsModeRename
	columnsModeDelete
)

var columnTypes = []models.ColumnType{models.ColumnText, models.ColumnNumber, models.ColumnDate}

// Columns manages the launch table schema.
type Columns struct {
	env    *Env
	width  int
	height int

	columns []models.ColumnConfig
	cursor  int
	mode    columnsMode
	input   textinput.Model
	newType int
	err     error
	message string
}

func NewColumns(env *Env) *Columns {
	return &Columns{
		env:   env,
		input: newInput("Nome colonna", 60),
	}
}

func (c *Columns) SetSize(width, height int) {
	c.width = width
	c.height = height
}

func (c *Columns) Init() tea.Cmd {
	c.mode = columnsModeList
	c.message = ""
	c.reload()
	return nil
}

func (c *Columns) reload() {
	c.columns = c.env.Config.ActiveColumns()
	c.cursor = clampCursor(c.cursor, len(c.columns))
}

func (c *Columns) current() (models.ColumnConfig, bool) {
	if len(c.columns) == 0 {
		return models.ColumnConfig{}, false
	}
	return c.columns[c.cursor], true
}

func (c *Columns) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		c.reload()
		return nil
	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if c.mode == columnsModeAdd || c.mode == columnsModeRename {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}
	return nil
}

func (c *Columns) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch c.mode {
	case columnsModeList:
		return c.handleListKey(msg)
	case columnsModeAdd, columnsModeRename:
		return c.handleInputKey(msg)
	case columnsModeDelete:
		switch msg.String() {
		case "y", "Y":
			if col, ok := c.current(); ok {
				c.env.Config.RemoveColumn(col.ID)
				c.message = fmt.Sprintf("Colonna spostata nel cestino: %s", col.Name)
			}
			c.mode = columnsModeList
			c.reload()
		case "n", "N", "esc":
			c.mode = columnsModeList
		}
	}
	return nil
}

func (c *Columns) handleListKey(msg tea.KeyMsg) tea.Cmd {
	cs := c.env.Config
	col, ok := c.current()

	switch msg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.columns)-1 {
			c.cursor++
		}
	case " ":
		if ok && !col.Pinned {
			visible := !col.Visible
			cs.UpdateColumn(col.ID, models.ColumnPatch{Visible: &visible})
		}
	case "L":
		if ok && col.SupportsColorLink() {
			linked := !col.IsColorLinked()
			cs.UpdateColumn(col.ID, models.ColumnPatch{ColorLinked: &linked})
		}
	case "K":
		if ok {
			cs.MoveColumn(col.ID, -1)
			c.reload()
			c.follow(col.ID)
			return nil
		}
	case "J":
		if ok {
			cs.MoveColumn(col.ID, 1)
			c.reload()
			c.follow(col.ID)
			return nil
		}
	case "a":
		c.mode = columnsModeAdd
		c.newType = 0
		c.input.SetValue("")
		c.input.Focus()
		return textinput.Blink
	case "e":
		if ok && col.IsCustom {
			c.mode = columnsModeRename
			c.input.SetValue(col.Name)
			c.input.Focus()
			return textinput.Blink
		}
	case "d":
		if ok && col.IsCustom {
			c.mode = columnsModeDelete
		}
	case "q", "esc":
		return Navigate("dashboard")
	}
	c.reload()
	return nil
}

func (c *Columns) follow(id string) {
	for i, col := range c.columns {
		if col.ID == id {
			c.cursor = i
		}
	}
}

func (c *Columns) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		if c.mode == columnsModeAdd {
			c.newType = (c.newType + 1) % len(columnTypes)
		}
		return nil

	case "enter":
		name := strings.TrimSpace(c.input.Value())
		if name == "" {
			c.err = ErrNameRequired
			return nil
		}
		if c.mode == columnsModeAdd {
			col := c.env.Config.AddColumn(name, columnTypes[c.newType])
			c.message = fmt.Sprintf("Colonna aggiunta: %s (%s)", col.Name, col.Type)
		} else if col, ok := c.current(); ok {
			c.env.Config.RenameColumn(col.ID, name)
			c.message = fmt.Sprintf("Colonna rinominata: %s", name)
		}
		c.mode = columnsModeList
		c.input.Blur()
		c.reload()

	case "esc":
		c.mode = columnsModeList
		c.input.Blur()

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}
	return nil
}

func (c *Columns) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("COLONNE"))
	b.WriteString("\n")
	renderMessage(&b, c.message, c.err)
	c.err = nil

	switch c.mode {
	case columnsModeAdd:
		b.WriteString("Nuova colonna:\n")
		b.WriteString(c.input.View())
		b.WriteString(fmt.Sprintf("\nTipo: %s\n", SelectedStyle.Render(string(columnTypes[c.newType]))))
		b.WriteString(HelpStyle.Render("[tab] Cambia tipo  [enter] Salva  [esc] Annulla"))
		return b.String()
	case columnsModeRename:
		b.WriteString("Rinomina colonna:\n")
		b.WriteString(c.input.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[enter] Salva  [esc] Annulla"))
		return b.String()
	case columnsModeDelete:
		if col, ok := c.current(); ok {
			b.WriteString(WarningStyle.Render(fmt.Sprintf("Spostare la colonna '%s' nel cestino? (y/n)", col.Name)))
			b.WriteString("\n")
			return b.String()
		}
	}

	for i, col := range c.columns {
		cursor := "  "
		style := NormalStyle
		if i == c.cursor {
			cursor = "> "
			style = SelectedStyle
		}

		visible := "[x]"
		if !col.Visible {
			visible = "[ ]"
		}
		name := col.Name
		if name == "" {
			name = col.ID
		}

		var flags []string
		if col.Pinned {
			flags = append(flags, "fissa")
		}
		if col.IsCustom {
			flags = append(flags, "personalizzata")
		}
		if col.SupportsColorLink() {
			if col.IsColorLinked() {
				flags = append(flags, "colore da stato")
			} else {
				flags = append(flags, "colore neutro")
			}
		}

		line := fmt.Sprintf("%s%s %s", cursor, visible, cell(name, 22))
		b.WriteString(style.Render(line))
		b.WriteString(DimStyle.Render(fmt.Sprintf(" %-6s %s", col.Type, strings.Join(flags, ", "))))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[space] Mostra/nascondi  [K/J] Sposta  [a] Aggiungi  [e] Rinomina  [d] Elimina  [L] Colore da stato  [q] Indietro"))
	return b.String()
}
