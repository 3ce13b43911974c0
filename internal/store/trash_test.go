package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/models"
)

func TestTrash_ColumnRoundTrip(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	ls := f.storeWith(t, launch("a", "A", "da-fare", "alta"))

	col := cs.AddColumn("Budget", models.ColumnNumber)
	cs.RemoveColumn(col.ID)

	items := Trash(cs, ls, "")
	require.Len(t, items, 1)
	assert.Equal(t, "Budget", items[0].Name)
	assert.Equal(t, TrashColumn, items[0].Kind)
	assert.Equal(t, col.ID, items[0].RefID)

	RestoreTrashItem(cs, ls, items[0])
	restored, ok := cs.Column(col.ID)
	require.True(t, ok)
	assert.True(t, restored.Visible)
	assert.Equal(t, col.Order, restored.Order)
	assert.Empty(t, Trash(cs, ls, ""))
}

func TestTrash_MixedOrderAndSearch(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	ls := f.storeWith(t, launch("a", "A", "da-fare", "alta"), launch("b", "A", "da-fare", "alta"))

	ls.DeleteLaunch("a")
	f.clock.Advance(time.Minute)
	col := cs.AddColumn("Budget", models.ColumnNumber)
	cs.RemoveColumn(col.ID)
	f.clock.Advance(time.Minute)
	ls.DeleteLaunch("b")

	items := Trash(cs, ls, "")
	require.Len(t, items, 3)
	assert.Equal(t, []string{"launch-b", "col-" + col.ID, "launch-a"}, []string{items[0].ID, items[1].ID, items[2].ID})
	assert.Equal(t, TrashLaunch, items[0].Kind)

	found := Trash(cs, ls, "BUDG")
	require.Len(t, found, 1)
	assert.Equal(t, TrashColumn, found[0].Kind)

	item, ok := FindTrashItem(cs, ls, "a")
	require.True(t, ok)
	assert.Equal(t, "launch-a", item.ID)
}

func TestTrash_PurgeAndEmpty(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	ls := f.storeWith(t, launch("a", "A", "da-fare", "alta"), launch("b", "A", "da-fare", "alta"))

	ls.DeleteLaunch("a")
	ls.DeleteLaunch("b")
	col := cs.AddColumn("Budget", models.ColumnNumber)
	cs.RemoveColumn(col.ID)

	item, ok := FindTrashItem(cs, ls, "launch-a")
	require.True(t, ok)
	PurgeTrashItem(cs, ls, item)
	_, ok = ls.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 2, EmptyTrash(cs, ls))
	assert.Empty(t, Trash(cs, ls, ""))
	_, ok = cs.Column(col.ID)
	assert.False(t, ok)
	assert.Len(t, cs.ActiveColumns(), 7)
}

func TestTrash_GeneratedLaunchIDsAreNotDoublePrefixed(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	ls := f.launchStore()

	added := ls.AddLaunch(models.LaunchDraft{Name: "Saldi estivi", Shop: "shop-italia", Status: "da-fare", Priority: "alta"})
	ls.DeleteLaunch(added.ID)

	items := Trash(cs, ls, "Saldi")
	require.Len(t, items, 1)
	assert.Equal(t, added.ID, items[0].ID)
	assert.Equal(t, added.ID, items[0].RefID)

	item, ok := FindTrashItem(cs, ls, added.ID)
	require.True(t, ok)
	assert.Equal(t, TrashLaunch, item.Kind)
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "adesso"},
		{5 * time.Minute, "5 min fa"},
		{time.Hour, "1 ora fa"},
		{3 * time.Hour, "3 ore fa"},
		{2 * 24 * time.Hour, "2 g fa"},
		{31 * 24 * time.Hour, "1 mese fa"},
		{95 * 24 * time.Hour, "3 mesi fa"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RelativeTime(now, now.Add(-c.ago)))
	}
}
