package screens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/store"
)

type detailPane int

const (
	paneSubtasks detailPane = iota
	paneFields
	paneAttachments
	paneCount
)

var paneLabels = [paneCount]string{"Sotto-attivita'", "Campi personalizzati", "Allegati"}

type detailMode int

const (
	detailModeView detailMode = iota
	detailModeInput
)

// detailEdit is what the open input will be saved to.
type detailEdit int

const (
	editNewSubtask detailEdit = iota
	editRenameSubtask
	editDueDate
	editSubtaskValue
	editNewSubtaskField
	editCustomValue
	editNewAttachment
)

var ErrNumber = errors.New("il valore deve essere un numero")

// Detail shows one launch with its sub-tasks, custom column values and attachments.
type Detail struct {
	env    *Env
	width  int
	height int

	launchID string
	back     string
	launch   models.Launch
	found    bool
	custom   []models.ColumnConfig

	pane    detailPane
	cursors [paneCount]int
	field   int

	mode    detailMode
	editing detailEdit
	input   textinput.Model
	newType int
	err     error
	message string
}

func NewDetail(env *Env) *Detail {
	return &Detail{
		env:   env,
		back:  "dashboard",
		input: newInput("", 120),
	}
}

func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Open points the screen at a launch. back is where q returns.
func (d *Detail) Open(launchID, back string) {
	if d.launchID != launchID {
		d.cursors = [paneCount]int{}
		d.field = 0
		d.pane = paneSubtasks
	}
	d.launchID = launchID
	if back != "" {
		d.back = back
	}
}

func (d *Detail) Init() tea.Cmd {
	d.mode = detailModeView
	d.message = ""
	d.err = nil
	d.reload()
	return nil
}

func (d *Detail) reload() {
	d.launch, d.found = d.env.Launches.Get(d.launchID)
	if d.found && d.launch.IsDeleted() {
		d.found = false
	}

	d.custom = d.custom[:0]
	for _, c := range d.env.Config.ActiveColumns() {
		if c.IsCustom {
			d.custom = append(d.custom, c)
		}
	}

	d.cursors[paneSubtasks] = clampCursor(d.cursors[paneSubtasks], len(d.launch.Subtasks))
	d.cursors[paneFields] = clampCursor(d.cursors[paneFields], len(d.custom))
	d.cursors[paneAttachments] = clampCursor(d.cursors[paneAttachments], len(d.launch.Attachments))
	d.field = clampCursor(d.field, len(d.launch.SubtaskFields))
}

func (d *Detail) paneLen(p detailPane) int {
	switch p {
	case paneSubtasks:
		return len(d.launch.Subtasks)
	case paneFields:
		return len(d.custom)
	case paneAttachments:
		return len(d.launch.Attachments)
	}
	return 0
}

func (d *Detail) subtask() (models.SubTask, bool) {
	if len(d.launch.Subtasks) == 0 {
		return models.SubTask{}, false
	}
	return d.launch.Subtasks[d.cursors[paneSubtasks]], true
}

func (d *Detail) subtaskField() (models.SubtaskField, bool) {
	if len(d.launch.SubtaskFields) == 0 {
		return models.SubtaskField{}, false
	}
	return d.launch.SubtaskFields[d.field], true
}

func (d *Detail) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshMsg:
		d.reload()
		return nil
	case tea.KeyMsg:
		if d.mode == detailModeInput {
			return d.handleInputKey(msg)
		}
		return d.handleKey(msg)
	}

	if d.mode == detailModeInput {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return cmd
	}
	return nil
}

func (d *Detail) startInput(edit detailEdit, placeholder, value string) tea.Cmd {
	d.mode = detailModeInput
	d.editing = edit
	d.newType = 0
	d.input.Placeholder = placeholder
	d.input.SetValue(value)
	d.input.Focus()
	return textinput.Blink
}

func (d *Detail) handleKey(msg tea.KeyMsg) tea.Cmd {
	d.message = ""
	key := msg.String()

	switch key {
	case "q", "esc":
		return Navigate(d.back)
	case "tab":
		d.pane = (d.pane + 1) % paneCount
		return nil
	case "shift+tab":
		d.pane = (d.pane + paneCount - 1) % paneCount
		return nil
	case "up", "k":
		if d.cursors[d.pane] > 0 {
			d.cursors[d.pane]--
		}
		return nil
	case "down", "j":
		if d.cursors[d.pane] < d.paneLen(d.pane)-1 {
			d.cursors[d.pane]++
		}
		return nil
	}

	if !d.found {
		return nil
	}

	var cmd tea.Cmd
	switch d.pane {
	case paneSubtasks:
		cmd = d.handleSubtaskKey(key)
	case paneFields:
		if len(d.custom) > 0 && (key == "enter" || key == "e") {
			col := d.custom[d.cursors[paneFields]]
			cmd = d.startInput(editCustomValue, col.Name, d.launch.CustomFields[col.ID].String())
		}
	case paneAttachments:
		cmd = d.handleAttachmentKey(key)
	}
	d.reload()
	return cmd
}

func (d *Detail) handleSubtaskKey(key string) tea.Cmd {
	ls := d.env.Launches
	st, ok := d.subtask()

	switch key {
	case "a":
		return d.startInput(editNewSubtask, "Nome sotto-attivita'", "")
	case "e":
		if ok {
			return d.startInput(editRenameSubtask, "Nome sotto-attivita'", st.Name)
		}
	case "u":
		if ok {
			return d.startInput(editDueDate, "AAAA-MM-GG", st.DueDate)
		}
	case "v", "enter":
		if f, hasField := d.subtaskField(); ok && hasField {
			return d.startInput(editSubtaskValue, f.Name, st.Fields[f.Name])
		}
	case " ", "x":
		if ok {
			ls.SetSubtaskCompleted(d.launchID, st.ID, !st.Completed)
		}
	case "d":
		if ok {
			ls.RemoveSubtask(d.launchID, st.ID)
			d.message = fmt.Sprintf("Sotto-attivita' rimossa: %s", st.Name)
		}
	case "left", "h":
		if d.field > 0 {
			d.field--
		}
	case "right", "l":
		if d.field < len(d.launch.SubtaskFields)-1 {
			d.field++
		}
	case "F":
		return d.startInput(editNewSubtaskField, "Nome colonna", "")
	case "X":
		if f, hasField := d.subtaskField(); hasField {
			ls.RemoveSubtaskField(d.launchID, f.Name)
			d.message = fmt.Sprintf("Colonna rimossa: %s", f.Name)
		}
	}
	return nil
}

func (d *Detail) handleAttachmentKey(key string) tea.Cmd {
	switch key {
	case "a":
		return d.startInput(editNewAttachment, "Nome allegato", "")
	case "d":
		if n := len(d.launch.Attachments); n > 0 {
			i := d.cursors[paneAttachments]
			name := d.launch.Attachments[i]
			kept := make([]string, 0, n-1)
			kept = append(kept, d.launch.Attachments[:i]...)
			kept = append(kept, d.launch.Attachments[i+1:]...)
			d.env.Launches.UpdateLaunch(d.launchID, models.LaunchPatch{Attachments: &kept})
			d.message = fmt.Sprintf("Allegato rimosso: %s", name)
		}
	}
	return nil
}

func (d *Detail) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		d.mode = detailModeView
		d.input.Blur()
		return nil
	case "tab":
		if d.editing == editNewSubtaskField {
			d.newType = (d.newType + 1) % len(columnTypes)
		}
		return nil
	case "enter":
		if err := d.submit(strings.TrimSpace(d.input.Value())); err != nil {
			d.err = err
			return nil
		}
		d.mode = detailModeView
		d.input.Blur()
		d.reload()
		return nil
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// checkValue validates a value typed into a column of type typ. Empty clears it.
func checkValue(typ models.ColumnType, value string) error {
	if value == "" {
		return nil
	}
	switch typ {
	case models.ColumnNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return ErrNumber
		}
	case models.ColumnDate:
		if _, ok := models.ParseDate(value); !ok {
			return ErrDateFormat
		}
	}
	return nil
}

func (d *Detail) submit(value string) error {
	ls := d.env.Launches
	st, hasSubtask := d.subtask()

	switch d.editing {
	case editNewSubtask, editRenameSubtask, editNewSubtaskField, editNewAttachment:
		if value == "" {
			return ErrNameRequired
		}
	}

	switch d.editing {
	case editNewSubtask:
		if _, ok := ls.AddSubtask(d.launchID, value); ok {
			d.cursors[paneSubtasks] = len(d.launch.Subtasks)
			d.message = fmt.Sprintf("Sotto-attivita' aggiunta: %s", value)
		}

	case editRenameSubtask:
		if hasSubtask {
			ls.RenameSubtask(d.launchID, st.ID, value)
		}

	case editDueDate:
		if err := checkValue(models.ColumnDate, value); err != nil {
			return err
		}
		if hasSubtask {
			ls.SetSubtaskDueDate(d.launchID, st.ID, value)
		}

	case editSubtaskValue:
		f, hasField := d.subtaskField()
		if !hasSubtask || !hasField {
			return nil
		}
		if err := checkValue(f.Type, value); err != nil {
			return err
		}
		ls.SetSubtaskField(d.launchID, st.ID, f.Name, value)

	case editNewSubtaskField:
		ls.AddSubtaskField(d.launchID, value, columnTypes[d.newType])
		d.field = len(d.launch.SubtaskFields)
		d.message = fmt.Sprintf("Colonna aggiunta: %s", value)

	case editCustomValue:
		if len(d.custom) == 0 {
			return nil
		}
		col := d.custom[d.cursors[paneFields]]
		if err := checkValue(col.Type, value); err != nil {
			return err
		}
		fields := make(map[string]models.FieldValue, len(d.launch.CustomFields)+1)
		for k, v := range d.launch.CustomFields {
			fields[k] = v
		}
		switch {
		case value == "":
			delete(fields, col.ID)
		case col.Type == models.ColumnNumber:
			n, _ := strconv.ParseFloat(value, 64)
			fields[col.ID] = models.NumberValue(n)
		default:
			fields[col.ID] = models.TextValue(value)
		}
		ls.UpdateLaunch(d.launchID, models.LaunchPatch{CustomFields: &fields})

	case editNewAttachment:
		attachments := append(append([]string{}, d.launch.Attachments...), value)
		ls.UpdateLaunch(d.launchID, models.LaunchPatch{Attachments: &attachments})
		d.cursors[paneAttachments] = len(attachments) - 1
		d.message = fmt.Sprintf("Allegato aggiunto: %s", value)
	}
	return nil
}

func (d *Detail) View() string {
	var b strings.Builder

	if !d.found {
		b.WriteString(TitleStyle.Render("DETTAGLIO"))
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("Lancio non trovato o nel cestino."))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("[q] Indietro"))
		return b.String()
	}

	l := d.launch
	cs := d.env.Config
	b.WriteString(TitleStyle.Render(strings.ToUpper(l.Name)))
	b.WriteString("\n")
	done, total := store.Progress(l)
	b.WriteString(fmt.Sprintf("%s   %s   %s   %s → %s   %d/%d completate\n",
		Swatch(cs.Color(models.KindShops, l.Shop), cs.Label(models.KindShops, l.Shop)),
		Swatch(cs.Color(models.KindStatuses, l.Status), cs.Label(models.KindStatuses, l.Status)),
		Swatch(cs.Color(models.KindPriorities, l.Priority), cs.Label(models.KindPriorities, l.Priority)),
		l.StartDate, l.EndDate, done, total))
	if l.Notes != "" {
		b.WriteString(DimStyle.Render(l.Notes))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	renderMessage(&b, d.message, d.err)
	d.err = nil

	var tabs []string
	for p := detailPane(0); p < paneCount; p++ {
		if p == d.pane {
			tabs = append(tabs, SelectedStyle.Render("["+paneLabels[p]+"]"))
		} else {
			tabs = append(tabs, DimStyle.Render(" "+paneLabels[p]+" "))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	if d.mode == detailModeInput {
		b.WriteString(d.input.View())
		b.WriteString("\n")
		if d.editing == editNewSubtaskField {
			b.WriteString(fmt.Sprintf("Tipo: %s\n", SelectedStyle.Render(string(columnTypes[d.newType]))))
			b.WriteString(HelpStyle.Render("[tab] Cambia tipo  [enter] Salva  [esc] Annulla"))
		} else {
			b.WriteString(HelpStyle.Render("[enter] Salva  [esc] Annulla"))
		}
		return b.String()
	}

	switch d.pane {
	case paneSubtasks:
		b.WriteString(d.subtasksView())
		b.WriteString(HelpStyle.Render("[a] Aggiungi  [e] Rinomina  [space] Completa  [u] Scadenza  [d] Rimuovi  [←/→] Colonna  [v] Valore  [F] Nuova colonna  [X] Rimuovi colonna"))
	case paneFields:
		b.WriteString(d.fieldsView())
		b.WriteString(HelpStyle.Render("[enter] Modifica valore"))
	case paneAttachments:
		b.WriteString(d.attachmentsView())
		b.WriteString(HelpStyle.Render("[a] Aggiungi  [d] Rimuovi"))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("[tab] Sezione  [q] Indietro"))
	return b.String()
}

func (d *Detail) subtasksView() string {
	var b strings.Builder
	l := d.launch

	header := "      " + cell("Nome", 28) + " " + cell("Scadenza", 11) + " "
	for i, f := range l.SubtaskFields {
		name := cell(f.Name, 14)
		if i == d.field {
			name = SelectedStyle.Render(name)
		}
		header += name + " "
	}
	b.WriteString(HeaderStyle.Render(header))
	b.WriteString("\n")

	if len(l.Subtasks) == 0 {
		b.WriteString(DimStyle.Render("Nessuna sotto-attivita'."))
		b.WriteString("\n")
	}
	for i, st := range l.Subtasks {
		cursor := "  "
		if i == d.cursors[paneSubtasks] && d.pane == paneSubtasks {
			cursor = "> "
		}
		check := "[ ] "
		if st.Completed {
			check = "[x] "
		}
		row := cursor + check + cell(st.Name, 28) + " " + cell(st.DueDate, 11) + " "
		for _, f := range l.SubtaskFields {
			row += cell(st.Fields[f.Name], 14) + " "
		}
		if cursor == "> " {
			row = SelectedStyle.Render(row)
		} else if st.Completed {
			row = DimStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Detail) fieldsView() string {
	if len(d.custom) == 0 {
		return DimStyle.Render("Nessuna colonna personalizzata. Aggiungile dalla schermata Colonne.") + "\n"
	}
	var b strings.Builder
	for i, col := range d.custom {
		cursor := "  "
		style := NormalStyle
		if i == d.cursors[paneFields] {
			cursor = "> "
			style = SelectedStyle
		}
		value := d.launch.CustomFields[col.ID].String()
		if value == "" {
			value = DimStyle.Render("-")
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s", cursor, cell(col.Name, 22))))
		b.WriteString(DimStyle.Render(fmt.Sprintf(" %-6s ", col.Type)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	return b.String()
}

func (d *Detail) attachmentsView() string {
	if len(d.launch.Attachments) == 0 {
		return DimStyle.Render("Nessun allegato.") + "\n"
	}
	var b strings.Builder
	for i, name := range d.launch.Attachments {
		cursor := "  "
		style := NormalStyle
		if i == d.cursors[paneAttachments] {
			cursor = "> "
			style = SelectedStyle
		}
		b.WriteString(style.Render(cursor + "• " + name))
		b.WriteString("\n")
	}
	return b.String()
}
