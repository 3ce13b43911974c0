package screens

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/config"
	"github.com/emilianohg/launchtracker/internal/logger"
	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
	"github.com/emilianohg/launchtracker/internal/store"
)

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	now := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	kv := storage.NewMemory()
	keys := storage.NewKeys("")
	opts := []store.Option{store.WithClock(now)}

	cfg := config.DefaultConfig()
	cfg.ExportsOutput = t.TempDir()

	return &Env{
		Config:   store.NewConfigStore(kv, keys, opts...),
		Launches: store.NewLaunchStore(kv, keys, opts...),
		KV:       kv,
		Keys:     keys,
		Settings: cfg,
		Log:      logger.Discard(),
		Now:      now,
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(update func(tea.Msg) tea.Cmd, s string) {
	for _, r := range s {
		update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestValidateLaunch(t *testing.T) {
	assert.NoError(t, ValidateLaunch("X", "2026-01-01", "2026-01-02"))
	assert.NoError(t, ValidateLaunch("X", "2026-01-01", "2026-01-01"))
	assert.NoError(t, ValidateLaunch("X", "", ""))
	assert.ErrorIs(t, ValidateLaunch("  ", "2026-01-01", "2026-01-02"), ErrNameRequired)
	assert.ErrorIs(t, ValidateLaunch("X", "2026-01-05", "2026-01-02"), ErrDateOrder)
	assert.ErrorIs(t, ValidateLaunch("X", "05/01/2026", ""), ErrDateFormat)
}

func TestNextFilter(t *testing.T) {
	items := models.DefaultPriorities()
	assert.Equal(t, "alta", nextFilter(items, models.All))
	assert.Equal(t, "media", nextFilter(items, "alta"))
	assert.Equal(t, models.All, nextFilter(items, "bassa"))
	assert.Equal(t, models.All, nextFilter(items, "ghost"))

	assert.Equal(t, "in-corso", nextItemID(models.DefaultStatuses(), "da-fare"))
	assert.Equal(t, "da-fare", nextItemID(models.DefaultStatuses(), "in-pausa"))
}

func TestDashboard_DeleteMovesToTrash(t *testing.T) {
	env := newTestEnv(t)
	d := NewDashboard(env)
	d.Init()
	first := d.launches[0]

	d.Update(key("d"))
	assert.False(t, d.Idle())
	d.Update(key("y"))

	assert.True(t, d.Idle())
	assert.Len(t, env.Launches.All(), 12)
	assert.Equal(t, []string{first.ID}, []string{env.Launches.Deleted()[0].ID})
}

func TestDashboard_AddLaunchValidates(t *testing.T) {
	env := newTestEnv(t)
	d := NewDashboard(env)
	d.Init()

	d.Update(key("a"))
	d.Update(key("enter"))
	require.False(t, d.Idle(), "empty name keeps the form open")
	assert.ErrorIs(t, d.form.err, ErrNameRequired)

	typeText(d.Update, "Nuovo lancio")
	d.Update(key("enter"))

	assert.True(t, d.Idle())
	all := env.Launches.All()
	assert.Equal(t, "Nuovo lancio", all[0].Name)
	assert.Equal(t, "shop-italia", all[0].Shop)
	assert.Equal(t, "2026-03-01", all[0].StartDate)
	assert.Equal(t, "2026-03-15", all[0].EndDate)
}

func TestDashboard_SelectionAndExport(t *testing.T) {
	env := newTestEnv(t)
	d := NewDashboard(env)
	d.Init()

	d.Update(key(" "))
	assert.Len(t, env.Launches.Selected(), 1)
	d.Update(key("A"))
	assert.Len(t, env.Launches.Selected(), 13)
	d.Update(key("A"))
	assert.Empty(t, env.Launches.Selected())

	d.Update(key("x"))
	assert.FileExists(t, env.Settings.ExportsOutput+"/lanci-creativi.csv")
}

func TestSettings_AddRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	s := NewSettings(env)
	s.Init()

	s.Update(key("a"))
	typeText(s.Update, "Shop Olanda")
	s.Update(key("enter"))
	assert.Len(t, env.Config.Items(models.KindShops), 6)

	s.Update(key("tab"))
	assert.Equal(t, models.KindStatuses, s.currentKind())
	s.Update(key("d"))
	s.Update(key("y"))
	assert.Len(t, env.Config.Items(models.KindStatuses), 4)
}

func TestColumnsAndTrash(t *testing.T) {
	env := newTestEnv(t)
	c := NewColumns(env)
	c.Init()

	c.Update(key("a"))
	typeText(c.Update, "Budget")
	c.Update(key("tab"))
	c.Update(key("enter"))

	cols := env.Config.ActiveColumns()
	added := cols[len(cols)-1]
	assert.Equal(t, "Budget", added.Name)
	assert.Equal(t, models.ColumnNumber, added.Type)

	c.cursor = len(cols) - 1
	c.Update(key("d"))
	c.Update(key("y"))
	assert.Len(t, env.Config.DeletedColumns(), 1)

	tr := NewTrash(env)
	tr.Init()
	require.Len(t, tr.items, 1)
	assert.Equal(t, store.TrashColumn, tr.items[0].Kind)

	tr.Update(key("r"))
	assert.Empty(t, env.Config.DeletedColumns())
	restored, _ := env.Config.Column(added.ID)
	assert.True(t, restored.Visible)
}

func TestLaunchForm_EmptyTaxonomy(t *testing.T) {
	env := newTestEnv(t)
	for _, item := range env.Config.Items(models.KindShops) {
		env.Config.RemoveTaxonomyItem(models.KindShops, item.ID)
	}
	require.Empty(t, env.Config.Items(models.KindShops))

	d := NewDashboard(env)
	d.Init()
	assert.NotPanics(t, func() {
		d.Update(key("a"))
		d.Update(key("tab"))
		d.Update(key("x"))
		d.Update(key("right"))
		_ = d.View()
	})
	require.NotNil(t, d.form)
	assert.Equal(t, fieldShop, d.form.focus)
	assert.Equal(t, "", d.form.choice(fieldShop))
}

func TestEditLaunchForm_KeepsDanglingReferences(t *testing.T) {
	env := newTestEnv(t)
	l := env.Launches.AddLaunch(models.LaunchDraft{
		Name:     "Orfano",
		Shop:     "shop-gone",
		Status:   "stato-perso",
		Priority: "alta",
	})

	f := editLaunchForm(env.Config, l, env.Now())
	assert.Contains(t, f.view("Modifica"), "shop-gone")
	f.save(env.Launches)

	got, ok := env.Launches.Get(l.ID)
	require.True(t, ok)
	assert.Equal(t, "shop-gone", got.Shop)
	assert.Equal(t, "stato-perso", got.Status)
	assert.Equal(t, "alta", got.Priority)

	// Cycling past the raw id reaches the real taxonomy.
	f.setFocus(fieldShop)
	f.update(key("right"))
	assert.Equal(t, "shop-italia", f.choice(fieldShop))
}

func TestDashboard_OpensDetail(t *testing.T) {
	env := newTestEnv(t)
	d := NewDashboard(env)
	d.Init()

	cmd := d.Update(key("i"))
	require.NotNil(t, cmd)
	nav, ok := cmd().(NavigateMsg)
	require.True(t, ok)
	assert.Equal(t, NavigateMsg{Screen: "detail", LaunchID: d.launches[0].ID, Back: "dashboard"}, nav)
}
