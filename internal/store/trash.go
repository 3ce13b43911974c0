package store

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type TrashKind string

const (
	TrashColumn TrashKind = "Colonna"
	TrashLaunch TrashKind = "Elemento"
)

// TrashItem is one entry of the unified trash. ID is unique across kinds, RefID is
// the id of the column or launch it stands for.
type TrashItem struct {
	ID        string
	RefID     string
	Name      string
	Kind      TrashKind
	DeletedAt time.Time
}

// Trash lists deleted columns and launches, most recently deleted first, keeping
// only names that contain search (case-insensitive).
func Trash(cs *ConfigStore, ls *LaunchStore, search string) []TrashItem {
	var items []TrashItem
	for _, c := range cs.DeletedColumns() {
		items = append(items, TrashItem{
			ID:        "col-" + c.ID,
			RefID:     c.ID,
			Name:      c.Name,
			Kind:      TrashColumn,
			DeletedAt: deletedAt(c.Lifecycle),
		})
	}
	for _, l := range ls.Deleted() {
		items = append(items, TrashItem{
			ID:        trashLaunchID(l.ID),
			RefID:     l.ID,
			Name:      l.Name,
			Kind:      TrashLaunch,
			DeletedAt: deletedAt(l.Lifecycle),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DeletedAt.After(items[j].DeletedAt)
	})

	if search == "" {
		return items
	}
	q := strings.ToLower(search)
	filtered := items[:0]
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// trashLaunchID prefixes launch ids that do not already carry the launch- prefix.
func trashLaunchID(id string) string {
	if strings.HasPrefix(id, launchIDPrefix) {
		return id
	}
	return launchIDPrefix + id
}

func RestoreTrashItem(cs *ConfigStore, ls *LaunchStore, item TrashItem) {
	switch item.Kind {
	case TrashColumn:
		cs.RestoreColumn(item.RefID)
	case TrashLaunch:
		ls.RestoreLaunch(item.RefID)
	}
}

func PurgeTrashItem(cs *ConfigStore, ls *LaunchStore, item TrashItem) {
	switch item.Kind {
	case TrashColumn:
		cs.PermanentlyDeleteColumn(item.RefID)
	case TrashLaunch:
		ls.PermanentlyDeleteLaunch(item.RefID)
	}
}

// EmptyTrash permanently deletes everything in the trash and returns how many items went.
func EmptyTrash(cs *ConfigStore, ls *LaunchStore) int {
	items := Trash(cs, ls, "")
	for _, item := range items {
		PurgeTrashItem(cs, ls, item)
	}
	return len(items)
}

// FindTrashItem looks an entry up by its trash id or by the id of the deleted record.
func FindTrashItem(cs *ConfigStore, ls *LaunchStore, id string) (TrashItem, bool) {
	for _, item := range Trash(cs, ls, "") {
		if item.ID == id || item.RefID == id {
			return item, true
		}
	}
	return TrashItem{}, false
}

// RelativeTime renders how long ago t was, in Italian.
func RelativeTime(now, t time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "adesso"
	case minutes < 60:
		return fmt.Sprintf("%d min fa", minutes)
	case hours < 24:
		if hours == 1 {
			return "1 ora fa"
		}
		return fmt.Sprintf("%d ore fa", hours)
	case days < 30:
		return fmt.Sprintf("%d g fa", days)
	}
	months := days / 30
	if months == 1 {
		return "1 mese fa"
	}
	return fmt.Sprintf("%d mesi fa", months)
}
