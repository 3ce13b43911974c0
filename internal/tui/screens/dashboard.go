package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/launchtracker/internal/export"
	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
	"github.com/emilianohg/launchtracker/internal/store"
)

type dashboardMode int

const (
	dashboardModeList dashboardMode = iota
	dashboardModeForm
	dashboardModeDelete
	dashboardModeDeleteSelected
	dashboardModeSearch
)

type Dashboard struct {
	env    *Env
	width  int
	height int

	launches []models.Launch
	stats    models.Stats
	columns  []models.ColumnConfig
	cursor   int
	mode     dashboardMode
	form     *launchForm
	search   textinput.Model
	dark     bool
	err      error
	message  string
}

func NewDashboard(env *Env) *Dashboard {
	return &Dashboard{
		env:    env,
		search: newInput("Cerca per nome, shop o note", 80),
		dark:   storage.LoadDarkMode(env.KV, env.Keys),
	}
}

func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Idle reports whether no form, prompt or search is open.
func (d *Dashboard) Idle() bool {
	return d.mode == dashboardModeList
}

func (d *Dashboard) Init() tea.Cmd {
	d.mode = dashboardModeList
	d.reload()
	return nil
}

func (d *Dashboard) reload() {
	d.launches = d.env.Launches.Launches()
	d.stats = d.env.Launches.Stats()
	d.columns = d.env.Config.VisibleColumns()
	d.cursor = clampCursor(d.cursor, len(d.launches))
}

func (d *Dashboard) current() (models.Launch, bool) {
	if len(d.launches) == 0 {
		return models.Launch{}, false
	}
	return d.launches[d.cursor], true
}

func (d *Dashboard) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		d.reload()
		return nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.mode == dashboardModeSearch {
		var cmd tea.Cmd
		d.search, cmd = d.search.Update(msg)
		return cmd
	}
	return nil
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch d.mode {
	case dashboardModeList:
		return d.handleListKey(msg)
	case dashboardModeForm:
		cmd, done, submit := d.form.update(msg)
		if submit {
			d.message = d.form.save(d.env.Launches)
		}
		if done {
			d.mode = dashboardModeList
			d.form = nil
			d.reload()
		}
		return cmd
	case dashboardModeDelete, dashboardModeDeleteSelected:
		return d.handleDeleteKey(msg)
	case dashboardModeSearch:
		return d.handleSearchKey(msg)
	}
	return nil
}

func (d *Dashboard) handleListKey(msg tea.KeyMsg) tea.Cmd {
	ls := d.env.Launches
	d.message = ""

	switch msg.String() {
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.launches)-1 {
			d.cursor++
		}
	case " ":
		if l, ok := d.current(); ok {
			ls.ToggleSelect(l.ID)
		}
	case "A":
		ids := make([]string, len(d.launches))
		for i, l := range d.launches {
			ids[i] = l.ID
		}
		ls.ToggleSelectAll(ids)
	case "esc":
		ls.ClearSelection()
	case "a":
		d.form = newLaunchForm(d.env.Config, d.env.Now())
		d.mode = dashboardModeForm
	case "e", "enter":
		if l, ok := d.current(); ok {
			d.form = editLaunchForm(d.env.Config, l, d.env.Now())
			d.mode = dashboardModeForm
		}
	case "i":
		if l, ok := d.current(); ok {
			return OpenDetail(l.ID, "dashboard")
		}
	case "d":
		if _, ok := d.current(); ok {
			d.mode = dashboardModeDelete
		}
	case "D":
		if len(ls.Selected()) > 0 {
			d.mode = dashboardModeDeleteSelected
		}
	case "c":
		if l, ok := d.current(); ok {
			if dup, ok := ls.DuplicateLaunch(l.ID); ok {
				d.message = fmt.Sprintf("Duplicato: %s", dup.Name)
			}
		}
	case "s":
		if l, ok := d.current(); ok {
			next := nextItemID(d.env.Config.Items(models.KindStatuses), l.Status)
			ls.UpdateLaunch(l.ID, models.LaunchPatch{Status: &next})
		}
	case "p":
		if l, ok := d.current(); ok {
			next := nextItemID(d.env.Config.Items(models.KindPriorities), l.Priority)
			ls.UpdateLaunch(l.ID, models.LaunchPatch{Priority: &next})
		}
	case "/":
		d.search.SetValue(ls.Filters().Search)
		d.search.Focus()
		d.mode = dashboardModeSearch
		return textinput.Blink
	case "f":
		f := ls.Filters()
		f.Shop = nextFilter(d.env.Config.Items(models.KindShops), f.Shop)
		ls.SetFilters(f)
	case "F":
		f := ls.Filters()
		f.Status = nextFilter(d.env.Config.Items(models.KindStatuses), f.Status)
		ls.SetFilters(f)
	case "P":
		f := ls.Filters()
		f.Priority = nextFilter(d.env.Config.Items(models.KindPriorities), f.Priority)
		ls.SetFilters(f)
	case "r":
		ls.ResetFilters()
	case "x":
		d.export(export.CSV)
	case "X":
		d.export(export.JSON)
	case "m":
		d.dark = !d.dark
		ApplyTheme(d.dark)
		if err := storage.SaveDarkMode(d.env.KV, d.env.Keys, d.dark); err != nil {
			d.env.Log.WithError(err).Error("failed save dark mode")
		}
	case "v":
		return Navigate("kanban")
	case "o":
		return Navigate("settings")
	case "l":
		return Navigate("columns")
	case "t":
		return Navigate("trash")
	}

	d.reload()
	return nil
}

func (d *Dashboard) handleDeleteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		if d.mode == dashboardModeDeleteSelected {
			n := len(d.env.Launches.Selected())
			d.env.Launches.DeleteSelected()
			d.message = fmt.Sprintf("%d lanci spostati nel cestino", n)
		} else if l, ok := d.current(); ok {
			d.env.Launches.DeleteLaunch(l.ID)
			d.message = fmt.Sprintf("Spostato nel cestino: %s", l.Name)
		}
		d.mode = dashboardModeList
		d.reload()

	case "n", "N", "esc":
		d.mode = dashboardModeList
	}
	return nil
}

func (d *Dashboard) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "enter" {
			f := d.env.Launches.Filters()
			f.Search = strings.TrimSpace(d.search.Value())
			d.env.Launches.SetFilters(f)
		}
		d.search.Blur()
		d.mode = dashboardModeList
		d.cursor = 0
		d.reload()
		return nil
	}
	var cmd tea.Cmd
	d.search, cmd = d.search.Update(msg)
	return cmd
}

func (d *Dashboard) export(format export.Format) {
	path, err := export.ToFile(d.env.Settings.ExportsOutput, format, d.env.Launches.All())
	if err != nil {
		d.err = err
		d.env.Log.WithError(err).Error("export failed")
		return
	}
	d.env.Log.WithField("path", path).Info("exported launches")
	d.message = fmt.Sprintf("Esportato in %s", path)
}

// nextItemID returns the id after current in items, wrapping around.
func nextItemID(items []models.ConfigItem, current string) string {
	if len(items) == 0 {
		return current
	}
	for i, item := range items {
		if item.ID == current {
			return items[(i+1)%len(items)].ID
		}
	}
	return items[0].ID
}

// nextFilter cycles all -> first item -> ... -> last item -> all.
func nextFilter(items []models.ConfigItem, current string) string {
	if current == models.All {
		if len(items) == 0 {
			return models.All
		}
		return items[0].ID
	}
	for i, item := range items {
		if item.ID == current && i+1 < len(items) {
			return items[i+1].ID
		}
	}
	return models.All
}

func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("CREATIVE LAUNCH TRACKER"))
	b.WriteString("\n")

	if d.mode == dashboardModeForm {
		title := "Nuovo lancio"
		if d.form.editingID != "" {
			title = "Modifica lancio"
		}
		b.WriteString(d.form.view(title))
		return b.String()
	}

	renderMessage(&b, d.message, d.err)
	d.err = nil

	b.WriteString(BoxStyle.Render(d.statsView()))
	b.WriteString("\n")
	b.WriteString(d.filtersView())
	b.WriteString("\n\n")

	if d.mode == dashboardModeSearch {
		b.WriteString("Cerca: ")
		b.WriteString(d.search.View())
		b.WriteString("\n\n")
	}

	switch d.mode {
	case dashboardModeDelete:
		if l, ok := d.current(); ok {
			b.WriteString(WarningStyle.Render(fmt.Sprintf("Spostare '%s' nel cestino? (y/n)", l.Name)))
			b.WriteString("\n")
			return b.String()
		}
	case dashboardModeDeleteSelected:
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Spostare %d lanci selezionati nel cestino? (y/n)", len(d.env.Launches.Selected()))))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(d.tableView())

	help := "[a] Nuovo  [e] Modifica  [i] Dettaglio  [d] Elimina  [c] Duplica  [s] Stato  [p] Priorita'  [space] Seleziona  [A] Tutti  [D] Elimina selezionati\n" +
		"[/] Cerca  [f/F/P] Filtri  [r] Reset filtri  [x/X] Esporta CSV/JSON  [v] Kanban  [o] Impostazioni  [l] Colonne  [t] Cestino  [m] Tema  [q] Esci"
	b.WriteString(HelpStyle.Render(help))

	return b.String()
}

func (d *Dashboard) statsView() string {
	cs := d.env.Config
	var parts []string
	for _, st := range cs.Items(models.KindStatuses) {
		parts = append(parts, fmt.Sprintf("%s %d", Swatch(st.Color, st.Name), d.stats.ByStatus[st.ID]))
	}

	expiring := SuccessStyle.Render("0")
	if n := len(d.stats.ExpiringSoon); n > 0 {
		names := make([]string, n)
		for i, l := range d.stats.ExpiringSoon {
			names[i] = l.Name
		}
		expiring = WarningStyle.Render(fmt.Sprintf("%d", n)) + DimStyle.Render(" ("+strings.Join(names, ", ")+")")
	}

	return fmt.Sprintf("Totale lanci: %d\n%s\nIn scadenza (7 giorni): %s",
		d.stats.Total, strings.Join(parts, "   "), expiring)
}

func (d *Dashboard) filtersView() string {
	cs := d.env.Config
	f := d.env.Launches.Filters()
	label := func(kind models.TaxonomyKind, id string) string {
		if id == models.All {
			return "tutti"
		}
		return cs.Label(kind, id)
	}

	line := fmt.Sprintf("Shop: %s  Stato: %s  Priorita': %s",
		label(models.KindShops, f.Shop), label(models.KindStatuses, f.Status), label(models.KindPriorities, f.Priority))
	if f.Search != "" {
		line += fmt.Sprintf("  Cerca: %q", f.Search)
	}
	if n := len(d.env.Launches.Selected()); n > 0 {
		line += fmt.Sprintf("  Selezionati: %d", n)
	}
	return DimStyle.Render(line)
}

func columnWidth(c models.ColumnConfig) int {
	switch c.ID {
	case models.ColumnIDName:
		return 30
	case models.ColumnIDShop:
		return 16
	case models.ColumnIDStatus:
		return 14
	case models.ColumnIDDeadline:
		return 12
	case models.ColumnIDPriority:
		return 10
	case models.ColumnIDTimeline:
		return 30
	}
	return 14
}

func (d *Dashboard) tableView() string {
	if len(d.launches) == 0 {
		return DimStyle.Render("Nessun lancio corrisponde ai filtri.") + "\n"
	}

	var b strings.Builder
	header := "      "
	for _, c := range d.columns {
		if c.ID == models.ColumnIDActions {
			continue
		}
		header += cell(c.Name, columnWidth(c)) + " "
	}
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	for i, l := range d.launches {
		cursor := "  "
		if i == d.cursor {
			cursor = "> "
		}
		mark := "[ ] "
		if d.env.Launches.IsSelected(l.ID) {
			mark = "[x] "
		}

		row := cursor + mark
		for _, c := range d.columns {
			if c.ID == models.ColumnIDActions {
				continue
			}
			row += d.cellView(l, c) + " "
		}
		if i == d.cursor {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Dashboard) cellView(l models.Launch, c models.ColumnConfig) string {
	cs := d.env.Config
	w := columnWidth(c)
	statusColor := cs.Color(models.KindStatuses, l.Status)

	switch c.ID {
	case models.ColumnIDName:
		return cell(l.Name, w)
	case models.ColumnIDShop:
		return colored(cs.Color(models.KindShops, l.Shop), cell(cs.Label(models.KindShops, l.Shop), w))
	case models.ColumnIDStatus:
		return colored(statusColor, cell(cs.Label(models.KindStatuses, l.Status), w))
	case models.ColumnIDPriority:
		return colored(cs.Color(models.KindPriorities, l.Priority), cell(cs.Label(models.KindPriorities, l.Priority), w))
	case models.ColumnIDDeadline:
		s := cell(l.EndDate, w)
		if c.IsColorLinked() {
			return colored(statusColor, s)
		}
		return s
	case models.ColumnIDTimeline:
		done, total := store.Progress(l)
		s := cell(fmt.Sprintf("%s → %s %d/%d", l.StartDate, l.EndDate, done, total), w)
		if c.IsColorLinked() {
			return colored(statusColor, s)
		}
		return s
	}
	return cell(l.CustomFields[c.ID].String(), w)
}
