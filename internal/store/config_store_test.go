package store

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
)

func TestConfigStore_LoadDefaultsAndPersist(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	assert.Equal(t, models.DefaultAppConfig(), cs.Config())

	var persisted models.AppConfig
	found, err := storage.LoadJSON(f.kv, testKeys.Config, &persisted)
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, persisted.Columns, 7)
}

func TestConfigStore_EmptyListsReplaced(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.kv.Set(testKeys.Config, `{"shops":[],"statuses":[],"priorities":[],"columns":[]}`))

	cfg := f.configStore().Config()
	assert.GreaterOrEqual(t, len(cfg.Columns), 7)
	assert.Equal(t, models.DefaultShops(), cfg.Shops)
	assert.Equal(t, models.DefaultStatuses(), cfg.Statuses)
	assert.Equal(t, models.DefaultPriorities(), cfg.Priorities)
}

func TestConfigStore_MalformedFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.kv.Set(testKeys.Config, "{broken"))

	cs := f.configStore()
	assert.Equal(t, models.DefaultAppConfig(), cs.Config())
	assert.True(t, f.errorLogged())
}

func TestConfigStore_ReadFailureFallsBackToDefaults(t *testing.T) {
	f := newFixture()
	f.kv.FailReads = true

	cs := f.configStore()
	assert.Len(t, cs.ActiveColumns(), 7)
	assert.True(t, f.errorLogged())
}

func TestConfigStore_MissingBuiltinRepaired(t *testing.T) {
	f := newFixture()
	cfg := models.DefaultAppConfig()
	cfg.Columns = []models.ColumnConfig{cfg.Columns[0], {ID: "custom-x", Name: "X", Type: models.ColumnText, Visible: true, Order: 1, IsCustom: true}}
	require.NoError(t, storage.SaveJSON(f.kv, testKeys.Config, cfg))

	cs := f.configStore()
	cols := cs.Config().Columns
	require.Len(t, cols, 8)
	for _, id := range models.BuiltinColumnIDs {
		_, ok := cs.Column(id)
		assert.True(t, ok, id)
	}
	assert.Equal(t, logrus.WarnLevel, f.log.LastEntry().Level)
}

func TestConfigStore_AddTaxonomyItem(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	item, ok := cs.AddTaxonomyItem(models.KindShops, "Shop Città Nuova", "#123456")
	require.True(t, ok)
	assert.Equal(t, "shop-citta-nuova-"+base36Millis(f.clock.Now()), item.ID)
	assert.Equal(t, 5, item.Order)

	dup, ok := cs.AddTaxonomyItem(models.KindShops, "Shop Città Nuova", "#654321")
	require.True(t, ok)
	assert.NotEqual(t, item.ID, dup.ID, "same name at the same instant still gets a fresh id")

	shops := cs.Items(models.KindShops)
	require.Len(t, shops, 7)
	assert.Equal(t, item.ID, shops[5].ID)

	reloaded := f.configStore()
	assert.Len(t, reloaded.Items(models.KindShops), 7)
}

func TestConfigStore_UnknownKindIsNoop(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	_, ok := cs.AddTaxonomyItem("channels", "Email", "#000")
	assert.False(t, ok)
	assert.Equal(t, logrus.WarnLevel, f.log.LastEntry().Level)
	assert.Equal(t, models.DefaultAppConfig(), cs.Config())
}

func TestConfigStore_UpdateAndRemoveTaxonomyItem(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	cs.UpdateTaxonomyItem(models.KindStatuses, "in-corso", models.ConfigItemPatch{Name: models.Ptr("Avviato")})
	assert.Equal(t, "Avviato", cs.Label(models.KindStatuses, "in-corso"))
	assert.Equal(t, "#0073ea", cs.Color(models.KindStatuses, "in-corso"))

	before := cs.Config()
	cs.UpdateTaxonomyItem(models.KindStatuses, "missing", models.ConfigItemPatch{Name: models.Ptr("X")})
	assert.Equal(t, before, cs.Config())

	cs.RemoveTaxonomyItem(models.KindShops, "shop-uk")
	_, ok := cs.Lookup(models.KindShops, "shop-uk")
	assert.False(t, ok)
}

func TestConfigStore_DanglingReferenceShowsRawID(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	ls := f.storeWith(t, launch("a", "shop-uk", "da-fare", "alta"))

	cs.RemoveTaxonomyItem(models.KindShops, "shop-uk")

	l, ok := ls.Get("a")
	require.True(t, ok)
	assert.Equal(t, "shop-uk", l.Shop, "launches keep the removed id")
	assert.Equal(t, "shop-uk", cs.Label(models.KindShops, l.Shop))
	assert.Empty(t, cs.Color(models.KindShops, l.Shop))
}

func TestConfigStore_MoveItem(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	cs.MoveItem(models.KindPriorities, "bassa", -1)
	got := cs.Items(models.KindPriorities)
	assert.Equal(t, []string{"alta", "bassa", "media"}, []string{got[0].ID, got[1].ID, got[2].ID})

	cs.MoveItem(models.KindPriorities, "alta", -1)
	assert.Equal(t, "alta", cs.Items(models.KindPriorities)[0].ID, "moving past the edge is ignored")
}

func TestConfigStore_AddColumn(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	col := cs.AddColumn("Budget", models.ColumnNumber)
	assert.Equal(t, "custom-budget-"+base36Millis(f.clock.Now()), col.ID)
	assert.True(t, col.Visible)
	assert.True(t, col.IsCustom)
	assert.False(t, col.Pinned)
	assert.Equal(t, 7, col.Order)

	cs.RenameColumn(col.ID, "Budget EUR")
	got, ok := cs.Column(col.ID)
	require.True(t, ok)
	assert.Equal(t, "Budget EUR", got.Name)
}

func TestConfigStore_RemoveAndRestoreColumn(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	col := cs.AddColumn("Budget", models.ColumnNumber)

	f.clock.Advance(time.Minute)
	cs.RemoveColumn(col.ID)

	got, _ := cs.Column(col.ID)
	at, deleted := got.Lifecycle.DeletedAt()
	require.True(t, deleted)
	assert.Equal(t, f.clock.Now(), at)
	assert.False(t, got.Visible, "deleted columns are hidden")
	assert.NotContains(t, columnIDs(cs.ActiveColumns()), col.ID)

	cs.RestoreColumn(col.ID)
	got, _ = cs.Column(col.ID)
	assert.False(t, got.Lifecycle.IsDeleted())
	assert.True(t, got.Visible)
	assert.Equal(t, 7, got.Order)

	cs.PermanentlyDeleteColumn(col.ID)
	_, ok := cs.Column(col.ID)
	assert.False(t, ok)
}

func TestConfigStore_ReorderPreservesTrash(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	col := cs.AddColumn("Budget", models.ColumnNumber)
	cs.RemoveColumn(col.ID)
	before, _ := cs.Column(col.ID)

	reversed := []string{"actions", "timeline", "priority", "deadline", "status", "shop", "name", "ghost", "shop"}
	cs.ReorderColumns(reversed)

	after, ok := cs.Column(col.ID)
	require.True(t, ok)
	assert.Equal(t, before.Lifecycle, after.Lifecycle)
	assert.Equal(t, before.Order, after.Order)

	active := columnIDs(cs.ActiveColumns())
	assert.Equal(t, []string{"actions", "timeline", "priority", "deadline", "status", "shop", "name"}, active)
	assert.Len(t, cs.Config().Columns, 8)
}

func TestConfigStore_ReorderKeepsUnlistedActiveColumns(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	cs.ReorderColumns([]string{"status", "name"})
	assert.Equal(t,
		[]string{"status", "name", "shop", "deadline", "priority", "timeline", "actions"},
		columnIDs(cs.ActiveColumns()))
}

func TestConfigStore_MoveColumnSkipsPinned(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	cs.MoveColumn("shop", 1)
	assert.Equal(t, []string{"name", "status", "shop", "deadline", "priority", "timeline", "actions"}, columnIDs(cs.ActiveColumns()))

	cs.MoveColumn("status", -1)
	assert.Equal(t, "name", cs.ActiveColumns()[0].ID, "pinned columns never move")
}

func TestConfigStore_VisibleAndDeletedColumns(t *testing.T) {
	f := newFixture()
	cs := f.configStore()

	cs.UpdateColumn("priority", models.ColumnPatch{Visible: models.Ptr(false)})
	assert.NotContains(t, columnIDs(cs.VisibleColumns()), "priority")
	assert.Contains(t, columnIDs(cs.ActiveColumns()), "priority")

	a := cs.AddColumn("A", models.ColumnText)
	b := cs.AddColumn("B", models.ColumnText)
	cs.RemoveColumn(a.ID)
	f.clock.Advance(time.Hour)
	cs.RemoveColumn(b.ID)
	assert.Equal(t, []string{b.ID, a.ID}, columnIDs(cs.DeletedColumns()))
}

func TestConfigStore_WriteFailureIsLogged(t *testing.T) {
	f := newFixture()
	cs := f.configStore()
	f.kv.FailWrites = true

	item, ok := cs.AddTaxonomyItem(models.KindShops, "Shop Nuovo", "#fff")
	require.True(t, ok)
	_, found := cs.Lookup(models.KindShops, item.ID)
	assert.True(t, found, "in-memory state still changes")
	assert.True(t, f.errorLogged())
}

func columnIDs(cols []models.ColumnConfig) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.ID
	}
	return out
}
