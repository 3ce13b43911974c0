package screens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/models"
)

func openDetail(t *testing.T, env *Env, launchID string) *Detail {
	t.Helper()
	d := NewDetail(env)
	d.Open(launchID, "kanban")
	d.Init()
	return d
}

func enterText(d *Detail, s string) {
	typeText(d.Update, s)
	d.Update(key("enter"))
}

func TestDetail_SubtaskChecklist(t *testing.T) {
	env := newTestEnv(t)
	l := env.Launches.AddLaunch(models.LaunchDraft{Name: "Campagna Estate"})
	d := openDetail(t, env, l.ID)

	d.Update(key("a"))
	enterText(d, "Brief creativo")
	got, _ := env.Launches.Get(l.ID)
	require.Len(t, got.Subtasks, 1)
	assert.Equal(t, "Brief creativo", got.Subtasks[0].Name)

	d.Update(key(" "))
	got, _ = env.Launches.Get(l.ID)
	assert.True(t, got.Subtasks[0].Completed)

	d.Update(key("u"))
	enterText(d, "2026-03-10")
	got, _ = env.Launches.Get(l.ID)
	assert.Equal(t, "2026-03-10", got.Subtasks[0].DueDate)

	d.Update(key("u"))
	enterText(d, "x")
	assert.ErrorIs(t, d.err, ErrDateFormat)
	d.Update(key("esc"))
	got, _ = env.Launches.Get(l.ID)
	assert.Equal(t, "2026-03-10", got.Subtasks[0].DueDate)

	d.Update(key("e"))
	d.input.SetValue("Brief definitivo")
	d.Update(key("enter"))
	got, _ = env.Launches.Get(l.ID)
	assert.Equal(t, "Brief definitivo", got.Subtasks[0].Name)
}

func TestDetail_SubtaskFields(t *testing.T) {
	env := newTestEnv(t)
	l := env.Launches.AddLaunch(models.LaunchDraft{Name: "Campagna Estate"})
	env.Launches.AddSubtask(l.ID, "Shooting")
	d := openDetail(t, env, l.ID)

	d.Update(key("F"))
	typeText(d.Update, "Ore")
	d.Update(key("tab"))
	d.Update(key("enter"))

	got, _ := env.Launches.Get(l.ID)
	assert.Equal(t, []models.SubtaskField{{Name: "Ore", Type: models.ColumnNumber}}, got.SubtaskFields)
	assert.Equal(t, map[string]string{"Ore": ""}, got.Subtasks[0].Fields)

	d.Update(key("v"))
	enterText(d, "tre")
	assert.ErrorIs(t, d.err, ErrNumber)
	d.Update(key("esc"))

	d.Update(key("v"))
	enterText(d, "3.5")
	got, _ = env.Launches.Get(l.ID)
	assert.Equal(t, "3.5", got.Subtasks[0].Fields["Ore"])

	d.Update(key("X"))
	got, _ = env.Launches.Get(l.ID)
	assert.Empty(t, got.SubtaskFields)
	assert.Empty(t, got.Subtasks[0].Fields)

	d.Update(key("d"))
	got, _ = env.Launches.Get(l.ID)
	assert.Empty(t, got.Subtasks)
}

func TestDetail_CustomFieldValues(t *testing.T) {
	env := newTestEnv(t)
	col := env.Config.AddColumn("Budget", models.ColumnNumber)
	l := env.Launches.AddLaunch(models.LaunchDraft{Name: "Campagna Estate"})
	d := openDetail(t, env, l.ID)

	d.Update(key("tab"))
	d.Update(key("enter"))
	enterText(d, "1500")

	got, _ := env.Launches.Get(l.ID)
	n, isNumber := got.CustomFields[col.ID].Number()
	assert.True(t, isNumber)
	assert.Equal(t, 1500.0, n)

	d.Update(key("enter"))
	d.input.SetValue("")
	d.Update(key("enter"))
	got, _ = env.Launches.Get(l.ID)
	assert.NotContains(t, got.CustomFields, col.ID)
}

func TestDetail_Attachments(t *testing.T) {
	env := newTestEnv(t)
	l := env.Launches.AddLaunch(models.LaunchDraft{Name: "Campagna Estate"})
	d := openDetail(t, env, l.ID)

	d.Update(key("tab"))
	d.Update(key("tab"))
	d.Update(key("a"))
	enterText(d, "brief.pdf")
	d.Update(key("a"))
	enterText(d, "moodboard.png")

	got, _ := env.Launches.Get(l.ID)
	assert.Equal(t, []string{"brief.pdf", "moodboard.png"}, got.Attachments)

	d.Update(key("d"))
	got, _ = env.Launches.Get(l.ID)
	assert.Equal(t, []string{"brief.pdf"}, got.Attachments)
}

func TestDetail_MissingLaunch(t *testing.T) {
	env := newTestEnv(t)
	d := openDetail(t, env, "launch-missing")

	assert.Contains(t, d.View(), "Lancio non trovato")
	d.Update(key("a"))
	assert.Equal(t, detailModeView, d.mode)

	cmd := d.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Screen: "kanban"}, cmd())
}
