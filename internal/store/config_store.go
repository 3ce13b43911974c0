package store

import (
	"sort"
	"time"

	"github.com/maruel/natural"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
)

// ConfigStore owns the taxonomies and the column schema and persists the whole
// AppConfig after every mutation. It is not safe for concurrent use.
type ConfigStore struct {
	kv  storage.KV
	key string
	now Clock
	log logrus.FieldLogger

	cfg models.AppConfig
}

func NewConfigStore(kv storage.KV, keys storage.Keys, opts ...Option) *ConfigStore {
	o := buildOptions(opts)
	s := &ConfigStore{
		kv:  kv,
		key: keys.Config,
		now: o.now,
		log: o.log.WithField("store", "config"),
	}
	s.Load()
	return s
}

// Load reads the persisted config, substituting defaults for any missing or empty list.
func (s *ConfigStore) Load() models.AppConfig {
	s.cfg = s.read()
	s.commit()
	return s.Config()
}

func (s *ConfigStore) read() models.AppConfig {
	var cfg models.AppConfig
	found, err := storage.LoadJSON(s.kv, s.key, &cfg)
	if err != nil {
		s.log.WithError(err).Error("failed load config, using defaults")
		return models.DefaultAppConfig()
	}
	if !found {
		return models.DefaultAppConfig()
	}

	if len(cfg.Columns) == 0 {
		cfg.Columns = models.DefaultColumns()
	}
	for _, kind := range models.TaxonomyKinds {
		if len(cfg.Items(kind)) == 0 {
			cfg.SetItems(kind, models.DefaultItems(kind))
		}
	}
	cfg.Columns = s.repairBuiltins(cfg.Columns)
	return cfg
}

// repairBuiltins appends any built-in column missing from cols.
func (s *ConfigStore) repairBuiltins(cols []models.ColumnConfig) []models.ColumnConfig {
	present := make(map[string]bool, len(cols))
	maxOrder := -1
	for _, c := range cols {
		present[c.ID] = true
		maxOrder = max(maxOrder, c.Order)
	}
	for _, def := range models.DefaultColumns() {
		if present[def.ID] {
			continue
		}
		s.log.WithField("column", def.ID).Warn("restoring missing built-in column")
		maxOrder++
		def.Order = maxOrder
		cols = append(cols, def)
	}
	return cols
}

func (s *ConfigStore) commit() {
	if err := storage.SaveJSON(s.kv, s.key, s.cfg); err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("failed save config")
	}
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() models.AppConfig {
	return s.cfg.Clone()
}

func sortItems(items []models.ConfigItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return natural.Less(items[i].Name, items[j].Name)
	})
}

// Items returns the taxonomy sorted by order.
func (s *ConfigStore) Items(kind models.TaxonomyKind) []models.ConfigItem {
	items := append([]models.ConfigItem(nil), s.cfg.Items(kind)...)
	sortItems(items)
	return items
}

func (s *ConfigStore) Lookup(kind models.TaxonomyKind, id string) (models.ConfigItem, bool) {
	for _, item := range s.cfg.Items(kind) {
		if item.ID == id {
			return item, true
		}
	}
	return models.ConfigItem{}, false
}

// Label returns the display name for id, or id itself when it no longer exists.
func (s *ConfigStore) Label(kind models.TaxonomyKind, id string) string {
	if item, ok := s.Lookup(kind, id); ok {
		return item.Name
	}
	return id
}

// Color returns the item colour, or "" for a dangling id.
func (s *ConfigStore) Color(kind models.TaxonomyKind, id string) string {
	if item, ok := s.Lookup(kind, id); ok {
		return item.Color
	}
	return ""
}

func (s *ConfigStore) AddTaxonomyItem(kind models.TaxonomyKind, name, color string) (models.ConfigItem, bool) {
	if !kind.IsValid() {
		s.log.WithField("kind", kind).Warn("unknown taxonomy")
		return models.ConfigItem{}, false
	}
	items := s.cfg.Items(kind)
	item := models.ConfigItem{
		ID: itemID("", name, s.now(), func(id string) bool {
			_, taken := s.Lookup(kind, id)
			return taken
		}),
		Name:  name,
		Color: color,
		Order: len(items),
	}
	s.cfg.SetItems(kind, append(items, item))
	s.commit()
	return item, true
}

func (s *ConfigStore) UpdateTaxonomyItem(kind models.TaxonomyKind, id string, patch models.ConfigItemPatch) {
	items := s.cfg.Items(kind)
	for i := range items {
		if items[i].ID == id {
			patch.Apply(&items[i])
			s.commit()
			return
		}
	}
}

// RemoveTaxonomyItem hard-deletes the item. Launches referencing it are left as they are.
func (s *ConfigStore) RemoveTaxonomyItem(kind models.TaxonomyKind, id string) {
	items := s.cfg.Items(kind)
	kept := make([]models.ConfigItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return
	}
	s.cfg.SetItems(kind, kept)
	s.commit()
}

// MoveItem shifts the item delta positions in display order and renumbers the taxonomy.
func (s *ConfigStore) MoveItem(kind models.TaxonomyKind, id string, delta int) {
	sorted := s.Items(kind)
	from := -1
	for i, item := range sorted {
		if item.ID == id {
			from = i
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(sorted) {
		return
	}
	sorted[from], sorted[to] = sorted[to], sorted[from]

	items := s.cfg.Items(kind)
	for order, moved := range sorted {
		for i := range items {
			if items[i].ID == moved.ID {
				items[i].Order = order
			}
		}
	}
	s.commit()
}

func (s *ConfigStore) AddColumn(name string, typ models.ColumnType) models.ColumnConfig {
	col := models.ColumnConfig{
		ID: itemID("custom-", name, s.now(), func(id string) bool {
			_, taken := s.Column(id)
			return taken
		}),
		Name:     name,
		Type:     typ,
		Visible:  true,
		Order:    len(s.cfg.Columns),
		Pinned:   false,
		IsCustom: true,
	}
	s.cfg.Columns = append(s.cfg.Columns, col)
	s.commit()
	return col
}

func (s *ConfigStore) Column(id string) (models.ColumnConfig, bool) {
	for _, c := range s.cfg.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return models.ColumnConfig{}, false
}

func (s *ConfigStore) updateColumn(id string, fn func(*models.ColumnConfig)) {
	for i := range s.cfg.Columns {
		if s.cfg.Columns[i].ID == id {
			fn(&s.cfg.Columns[i])
			s.commit()
			return
		}
	}
}

// UpdateColumn merges patch into the column. Callers must not expose it for pinned columns.
func (s *ConfigStore) UpdateColumn(id string, patch models.ColumnPatch) {
	s.updateColumn(id, func(c *models.ColumnConfig) { patch.Apply(c) })
}

func (s *ConfigStore) RenameColumn(id, name string) {
	s.UpdateColumn(id, models.ColumnPatch{Name: &name})
}

// RemoveColumn soft-deletes the column and hides it.
func (s *ConfigStore) RemoveColumn(id string) {
	now := s.now()
	s.updateColumn(id, func(c *models.ColumnConfig) {
		c.Lifecycle = models.DeletedAt(now)
		c.Visible = false
	})
}

func (s *ConfigStore) RestoreColumn(id string) {
	s.updateColumn(id, func(c *models.ColumnConfig) {
		c.Lifecycle = models.Active()
		c.Visible = true
	})
}

func (s *ConfigStore) PermanentlyDeleteColumn(id string) {
	kept := make([]models.ColumnConfig, 0, len(s.cfg.Columns))
	for _, c := range s.cfg.Columns {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(s.cfg.Columns) {
		return
	}
	s.cfg.Columns = kept
	s.commit()
}

// ReorderColumns sets order = index for each known id in orderedIDs. Unknown and
// repeated ids are skipped. Deleted columns not listed keep their fields; other
// unlisted columns are kept after the listed ones.
func (s *ConfigStore) ReorderColumns(orderedIDs []string) {
	byID := make(map[string]models.ColumnConfig, len(s.cfg.Columns))
	for _, c := range s.cfg.Columns {
		byID[c.ID] = c
	}

	listed := make(map[string]bool, len(orderedIDs))
	reordered := make([]models.ColumnConfig, 0, len(s.cfg.Columns))
	for i, id := range orderedIDs {
		col, ok := byID[id]
		if !ok || listed[id] {
			continue
		}
		listed[id] = true
		col.Order = i
		reordered = append(reordered, col)
	}

	next := len(orderedIDs)
	var trailing []models.ColumnConfig
	for _, c := range s.cfg.Columns {
		if listed[c.ID] {
			continue
		}
		if !c.Lifecycle.IsDeleted() {
			c.Order = next
			next++
		}
		trailing = append(trailing, c)
	}

	s.cfg.Columns = append(reordered, trailing...)
	s.commit()
}

// MoveColumn swaps a non-pinned active column with its neighbour delta positions away.
func (s *ConfigStore) MoveColumn(id string, delta int) {
	active := s.ActiveColumns()
	from := -1
	for i, c := range active {
		if c.ID == id {
			from = i
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(active) || active[from].Pinned || active[to].Pinned {
		return
	}
	active[from], active[to] = active[to], active[from]

	ids := make([]string, 0, len(s.cfg.Columns))
	for _, c := range active {
		ids = append(ids, c.ID)
	}
	for _, c := range s.DeletedColumns() {
		ids = append(ids, c.ID)
	}
	s.ReorderColumns(ids)
}

func sortColumns(cols []models.ColumnConfig) {
	sort.SliceStable(cols, func(i, j int) bool {
		if cols[i].Order != cols[j].Order {
			return cols[i].Order < cols[j].Order
		}
		return natural.Less(cols[i].Name, cols[j].Name)
	})
}

// ActiveColumns returns the columns that are not in the trash, sorted by order.
func (s *ConfigStore) ActiveColumns() []models.ColumnConfig {
	var out []models.ColumnConfig
	for _, c := range s.Config().Columns {
		if !c.Lifecycle.IsDeleted() {
			out = append(out, c)
		}
	}
	sortColumns(out)
	return out
}

func (s *ConfigStore) VisibleColumns() []models.ColumnConfig {
	var out []models.ColumnConfig
	for _, c := range s.ActiveColumns() {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// DeletedColumns returns trashed columns, most recently deleted first.
func (s *ConfigStore) DeletedColumns() []models.ColumnConfig {
	var out []models.ColumnConfig
	for _, c := range s.Config().Columns {
		if c.Lifecycle.IsDeleted() {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return deletedAt(out[i].Lifecycle).After(deletedAt(out[j].Lifecycle))
	})
	return out
}

func deletedAt(l models.Lifecycle) time.Time {
	at, _ := l.DeletedAt()
	return at
}
