package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/store"
)

const (
	fieldName = iota
	fieldShop
	fieldStatus
	fieldPriority
	fieldStart
	fieldEnd
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nome", "Shop", "Stato", "Priorita'", "Data inizio", "Data fine", "Note"}

// launchForm edits the core fields of a launch. Selectors cycle with left/right.
type launchForm struct {
	editingID string
	focus     int
	inputs    map[int]*textinput.Model
	choices   map[int][]models.ConfigItem
	selected  map[int]int
	err       error
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

func newLaunchForm(cs *store.ConfigStore, now time.Time) *launchForm {
	name := newInput("Nome del lancio", 120)
	start := newInput("AAAA-MM-GG", 10)
	end := newInput("AAAA-MM-GG", 10)
	notes := newInput("Note", 500)
	start.SetValue(now.Format(time.DateOnly))
	end.SetValue(now.AddDate(0, 0, 14).Format(time.DateOnly))

	f := &launchForm{
		inputs: map[int]*textinput.Model{fieldName: &name, fieldStart: &start, fieldEnd: &end, fieldNotes: &notes},
		choices: map[int][]models.ConfigItem{
			fieldShop:     cs.Items(models.KindShops),
			fieldStatus:   cs.Items(models.KindStatuses),
			fieldPriority: cs.Items(models.KindPriorities),
		},
		selected: map[int]int{},
	}
	f.setFocus(fieldName)
	return f
}

func editLaunchForm(cs *store.ConfigStore, l models.Launch, now time.Time) *launchForm {
	f := newLaunchForm(cs, now)
	f.editingID = l.ID
	f.inputs[fieldName].SetValue(l.Name)
	f.inputs[fieldStart].SetValue(l.StartDate)
	f.inputs[fieldEnd].SetValue(l.EndDate)
	f.inputs[fieldNotes].SetValue(l.Notes)
	f.selectID(fieldShop, l.Shop)
	f.selectID(fieldStatus, l.Status)
	f.selectID(fieldPriority, l.Priority)
	return f
}

// selectID selects id in a selector. An id missing from the taxonomy is kept as an
// extra choice labelled with the raw id, so saving leaves the reference alone.
func (f *launchForm) selectID(field int, id string) {
	for i, item := range f.choices[field] {
		if item.ID == id {
			f.selected[field] = i
			return
		}
	}
	if id == "" {
		return
	}
	f.choices[field] = append(f.choices[field], models.ConfigItem{ID: id, Name: id})
	f.selected[field] = len(f.choices[field]) - 1
}

func (f *launchForm) choice(field int) string {
	items := f.choices[field]
	if len(items) == 0 {
		return ""
	}
	return items[f.selected[field]].ID
}

func (f *launchForm) setFocus(field int) {
	f.focus = (field + fieldCount) % fieldCount
	for i, in := range f.inputs {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *launchForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// update returns done=true when the form should close; submit reports whether it was saved.
func (f *launchForm) update(msg tea.KeyMsg) (cmd tea.Cmd, done, submit bool) {
	switch msg.String() {
	case "esc":
		return nil, true, false
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return nil, false, false
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return nil, false, false
	case "enter":
		f.err = ValidateLaunch(f.value(fieldName), f.value(fieldStart), f.value(fieldEnd))
		if f.err != nil {
			return nil, false, false
		}
		return nil, true, true
	}

	if items, ok := f.choices[f.focus]; ok {
		if len(items) == 0 {
			return nil, false, false
		}
		switch msg.String() {
		case "left", "h":
			f.selected[f.focus] = (f.selected[f.focus] + len(items) - 1) % len(items)
		case "right", "l", " ":
			f.selected[f.focus] = (f.selected[f.focus] + 1) % len(items)
		}
		return nil, false, false
	}

	in := f.inputs[f.focus]
	updated, cmd := in.Update(msg)
	*in = updated
	return cmd, false, false
}

// save writes the form to the launch store and returns a status message.
func (f *launchForm) save(ls *store.LaunchStore) string {
	if f.editingID != "" {
		ls.UpdateLaunch(f.editingID, models.LaunchPatch{
			Name:      models.Ptr(f.value(fieldName)),
			Shop:      models.Ptr(f.choice(fieldShop)),
			Status:    models.Ptr(f.choice(fieldStatus)),
			Priority:  models.Ptr(f.choice(fieldPriority)),
			StartDate: models.Ptr(f.value(fieldStart)),
			EndDate:   models.Ptr(f.value(fieldEnd)),
			Notes:     models.Ptr(f.value(fieldNotes)),
		})
		return fmt.Sprintf("Aggiornato: %s", f.value(fieldName))
	}

	l := ls.AddLaunch(models.LaunchDraft{
		Name:      f.value(fieldName),
		Shop:      f.choice(fieldShop),
		Status:    f.choice(fieldStatus),
		Priority:  f.choice(fieldPriority),
		StartDate: f.value(fieldStart),
		EndDate:   f.value(fieldEnd),
		Notes:     f.value(fieldNotes),
	})
	return fmt.Sprintf("Creato: %s", l.Name)
}

func (f *launchForm) view(title string) string {
	var b strings.Builder
	b.WriteString(SubtitleStyle.Render(title))
	b.WriteString("\n")

	for field := 0; field < fieldCount; field++ {
		marker := "  "
		label := DimStyle.Render(fmt.Sprintf("%-12s", fieldLabels[field]))
		if field == f.focus {
			marker = "> "
			label = SelectedStyle.Render(fmt.Sprintf("%-12s", fieldLabels[field]))
		}

		var value string
		if items, ok := f.choices[field]; ok {
			if len(items) == 0 {
				value = DimStyle.Render("(nessuna voce)")
			} else {
				item := items[f.selected[field]]
				value = "< " + Swatch(item.Color, item.Name) + " >"
			}
		} else {
			value = f.inputs[field].View()
		}
		b.WriteString(marker + label + " " + value + "\n")
	}

	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(f.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("[tab] Campo successivo  [←/→] Cambia scelta  [enter] Salva  [esc] Annulla"))
	return b.String()
}
