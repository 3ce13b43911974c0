package store

import (
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/launchtracker/internal/models"
	"github.com/emilianohg/launchtracker/internal/storage"
)

// CopySuffix is appended to the name of a duplicated launch.
const CopySuffix = " (copia)"

// ExpiringWindow is how far ahead a launch end date counts as expiring soon.
const ExpiringWindow = 7 * 24 * time.Hour

// LaunchStore owns the launch collection, the active filters and the selection.
// The full collection is persisted after every mutation. It is not safe for concurrent use.
type LaunchStore struct {
	kv  storage.KV
	key string
	now Clock
	log logrus.FieldLogger

	launches []models.Launch
	filters  models.Filters
	selected mapset.Set[string]
}

func NewLaunchStore(kv storage.KV, keys storage.Keys, opts ...Option) *LaunchStore {
	o := buildOptions(opts)
	s := &LaunchStore{
		kv:       kv,
		key:      keys.Launches,
		now:      o.now,
		log:      o.log.WithField("store", "launches"),
		filters:  models.DefaultFilters(),
		selected: mapset.NewThreadUnsafeSet[string](),
	}
	s.Load()
	return s
}

// Load reads the persisted launches. An unreadable, absent or empty collection
// is replaced by the seed data so the tracker never starts empty.
func (s *LaunchStore) Load() {
	var launches []models.Launch
	found, err := storage.LoadJSON(s.kv, s.key, &launches)
	switch {
	case err != nil:
		s.log.WithError(err).Error("failed load launches, using seed data")
		launches = SeedLaunches(s.now())
	case !found || len(launches) == 0:
		launches = SeedLaunches(s.now())
	}

	for i := range launches {
		promoteSubtaskFields(&launches[i])
	}

	s.launches = launches
	s.selected.Clear()
	s.commit()
}

func (s *LaunchStore) commit() {
	if err := storage.SaveJSON(s.kv, s.key, s.launches); err != nil {
		s.log.WithError(err).WithField("key", s.key).Error("failed save launches")
	}
}

func (s *LaunchStore) indexOf(id string) int {
	for i := range s.launches {
		if s.launches[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *LaunchStore) Get(id string) (models.Launch, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.launches[i].Clone(), true
	}
	return models.Launch{}, false
}

// All returns the active launches in collection order.
func (s *LaunchStore) All() []models.Launch {
	out := make([]models.Launch, 0, len(s.launches))
	for _, l := range s.launches {
		if !l.IsDeleted() {
			out = append(out, l.Clone())
		}
	}
	return out
}

// Deleted returns the soft-deleted launches, most recently deleted first.
func (s *LaunchStore) Deleted() []models.Launch {
	var out []models.Launch
	for _, l := range s.launches {
		if l.IsDeleted() {
			out = append(out, l.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return deletedAt(out[i].Lifecycle).After(deletedAt(out[j].Lifecycle))
	})
	return out
}

// Launches returns the active launches that pass the current filters.
func (s *LaunchStore) Launches() []models.Launch {
	var out []models.Launch
	for _, l := range s.launches {
		if !l.IsDeleted() && l.Matches(s.filters) {
			out = append(out, l.Clone())
		}
	}
	return out
}

func (s *LaunchStore) Filters() models.Filters {
	return s.filters
}

// SetFilters replaces the filters. Empty field filters mean "all".
func (s *LaunchStore) SetFilters(f models.Filters) {
	if f.Shop == "" {
		f.Shop = models.All
	}
	if f.Status == "" {
		f.Status = models.All
	}
	if f.Priority == "" {
		f.Priority = models.All
	}
	s.filters = f
}

func (s *LaunchStore) ResetFilters() {
	s.filters = models.DefaultFilters()
}

func (s *LaunchStore) Stats() models.Stats {
	now := s.now()
	stats := models.Stats{ByStatus: map[string]int{}}
	for _, l := range s.launches {
		if l.IsDeleted() {
			continue
		}
		stats.Total++
		stats.ByStatus[l.Status]++

		if l.Status == models.CompletedStatusID {
			continue
		}
		end, ok := models.ParseDate(l.EndDate)
		if !ok {
			continue
		}
		if diff := end.Sub(now); diff > 0 && diff < ExpiringWindow {
			stats.ExpiringSoon = append(stats.ExpiringSoon, l.Clone())
		}
	}
	return stats
}

// AddLaunch stores a new launch at the head of the collection.
func (s *LaunchStore) AddLaunch(d models.LaunchDraft) models.Launch {
	now := s.now()
	l := models.Launch{
		ID:           newLaunchID(now),
		Name:         d.Name,
		Shop:         d.Shop,
		Status:       d.Status,
		Priority:     d.Priority,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		Notes:        d.Notes,
		Attachments:  append([]string{}, d.Attachments...),
		CustomFields: map[string]models.FieldValue{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for k, v := range d.CustomFields {
		l.CustomFields[k] = v
	}
	for _, st := range d.Subtasks {
		st = st.Clone()
		if st.ID == "" {
			st.ID = newSubtaskID(now)
		}
		if st.CreatedAt.IsZero() {
			st.CreatedAt = now
		}
		l.Subtasks = append(l.Subtasks, st)
	}
	l.Normalize()
	promoteSubtaskFields(&l)

	s.launches = append([]models.Launch{l}, s.launches...)
	s.commit()
	return l.Clone()
}

// mutate applies fn to the launch and, when fn reports a change, refreshes updatedAt and persists.
func (s *LaunchStore) mutate(id string, fn func(*models.Launch) bool) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if !fn(&s.launches[i]) {
		return false
	}
	s.launches[i].UpdatedAt = s.now()
	s.commit()
	return true
}

// UpdateLaunch merges patch into the launch. No validation happens here.
func (s *LaunchStore) UpdateLaunch(id string, patch models.LaunchPatch) bool {
	return s.mutate(id, func(l *models.Launch) bool {
		patch.Apply(l)
		return true
	})
}

// setLifecycle changes only the lifecycle; updatedAt is left alone.
func (s *LaunchStore) setLifecycle(id string, lc models.Lifecycle) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.launches[i].Lifecycle = lc
	s.commit()
	return true
}

func (s *LaunchStore) DeleteLaunch(id string) {
	s.selected.Remove(id)
	s.setLifecycle(id, models.DeletedAt(s.now()))
}

func (s *LaunchStore) RestoreLaunch(id string) {
	s.setLifecycle(id, models.Active())
}

func (s *LaunchStore) PermanentlyDeleteLaunch(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.selected.Remove(id)
	s.launches = append(s.launches[:i], s.launches[i+1:]...)
	s.commit()
}

// DuplicateLaunch copies an active launch and inserts the copy right after it.
// The copy gets fresh ids, the to-do status and no deletion mark.
func (s *LaunchStore) DuplicateLaunch(id string) (models.Launch, bool) {
	i := s.indexOf(id)
	if i < 0 || s.launches[i].IsDeleted() {
		return models.Launch{}, false
	}

	now := s.now()
	dup := s.launches[i].Clone()
	dup.ID = newLaunchID(now)
	dup.Name += CopySuffix
	dup.Status = models.DefaultStatusID
	for j := range dup.Subtasks {
		dup.Subtasks[j].ID = newSubtaskID(now)
	}
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.Lifecycle = models.Active()

	next := make([]models.Launch, 0, len(s.launches)+1)
	next = append(next, s.launches[:i+1]...)
	next = append(next, dup)
	next = append(next, s.launches[i+1:]...)
	s.launches = next
	s.commit()
	return dup.Clone(), true
}

// DeleteSelected soft-deletes every selected launch with one shared timestamp.
func (s *LaunchStore) DeleteSelected() {
	now := s.now()
	for i := range s.launches {
		if s.selected.Contains(s.launches[i].ID) {
			s.launches[i].Lifecycle = models.DeletedAt(now)
		}
	}
	s.selected.Clear()
	s.commit()
}

func (s *LaunchStore) ToggleSelect(id string) {
	if s.selected.Contains(id) {
		s.selected.Remove(id)
		return
	}
	s.selected.Add(id)
}

// ToggleSelectAll selects exactly ids, or clears the whole selection when all of them are already selected.
func (s *LaunchStore) ToggleSelectAll(ids []string) {
	if s.selected.Contains(ids...) {
		s.selected.Clear()
		return
	}
	s.selected = mapset.NewThreadUnsafeSet(ids...)
}

func (s *LaunchStore) ClearSelection() {
	s.selected.Clear()
}

func (s *LaunchStore) IsSelected(id string) bool {
	return s.selected.Contains(id)
}

// Selected returns the selected ids in collection order.
func (s *LaunchStore) Selected() []string {
	var ids []string
	for _, l := range s.launches {
		if s.selected.Contains(l.ID) {
			ids = append(ids, l.ID)
		}
	}
	// Ids that are no longer in the collection stay selected until cleared.
	for _, id := range s.selected.ToSlice() {
		if s.indexOf(id) < 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

type KanbanColumn struct {
	Status   models.ConfigItem
	Launches []models.Launch
}

// Kanban groups the filtered launches by status. Launches whose status is not in
// statuses end up in a trailing column with an empty status id.
func (s *LaunchStore) Kanban(statuses []models.ConfigItem) []KanbanColumn {
	cols := make([]KanbanColumn, len(statuses))
	pos := make(map[string]int, len(statuses))
	for i, st := range statuses {
		cols[i].Status = st
		pos[st.ID] = i
	}

	var orphans []models.Launch
	for _, l := range s.Launches() {
		if i, ok := pos[l.Status]; ok {
			cols[i].Launches = append(cols[i].Launches, l)
			continue
		}
		orphans = append(orphans, l)
	}
	if len(orphans) > 0 {
		cols = append(cols, KanbanColumn{Status: models.ConfigItem{Name: "Senza stato"}, Launches: orphans})
	}
	return cols
}
