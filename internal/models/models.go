package models

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// All is the filter value that disables a field filter.
const All = "all"

// DefaultStatusID is the to-do status assigned to duplicated launches.
const DefaultStatusID = "da-fare"

// CompletedStatusID marks launches that never count as expiring.
const CompletedStatusID = "completato"

type TaxonomyKind string

const (
	KindShops      TaxonomyKind = "shops"
	KindStatuses   TaxonomyKind = "statuses"
	KindPriorities TaxonomyKind = "priorities"
)

var TaxonomyKinds = []TaxonomyKind{KindShops, KindStatuses, KindPriorities}

func (k TaxonomyKind) IsValid() bool {
	switch k {
	case KindShops, KindStatuses, KindPriorities:
		return true
	}
	return false
}

// Label is the Italian display name used by the settings screen.
func (k TaxonomyKind) Label() string {
	switch k {
	case KindShops:
		return "Shop"
	case KindStatuses:
		return "Stati"
	case KindPriorities:
		return "Priorita'"
	}
	return string(k)
}

type ConfigItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

type ColumnType string

const (
	ColumnText   ColumnType = "text"
	ColumnNumber ColumnType = "number"
	ColumnDate   ColumnType = "date"
)

func (t ColumnType) IsValid() bool {
	switch t {
	case ColumnText, ColumnNumber, ColumnDate:
		return true
	}
	return false
}

// Built-in column ids.
const (
	ColumnIDName     = "name"
	ColumnIDShop     = "shop"
	ColumnIDStatus   = "status"
	ColumnIDDeadline = "deadline"
	ColumnIDPriority = "priority"
	ColumnIDTimeline = "timeline"
	ColumnIDActions  = "actions"
)

var BuiltinColumnIDs = []string{
	ColumnIDName, ColumnIDShop, ColumnIDStatus, ColumnIDDeadline,
	ColumnIDPriority, ColumnIDTimeline, ColumnIDActions,
}

type ColumnConfig struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        ColumnType `json:"type"`
	Visible     bool       `json:"visible"`
	Order       int        `json:"order"`
	Pinned      bool       `json:"pinned"`
	IsCustom    bool       `json:"isCustom"`
	ColorLinked *bool      `json:"colorLinked,omitempty"`
	Lifecycle   Lifecycle  `json:"-"`
}

// SupportsColorLink reports whether the column colour can follow the launch status.
func (c ColumnConfig) SupportsColorLink() bool {
	return c.ID == ColumnIDDeadline || c.ID == ColumnIDTimeline
}

// IsColorLinked treats an unset flag as linked.
func (c ColumnConfig) IsColorLinked() bool {
	return c.SupportsColorLink() && (c.ColorLinked == nil || *c.ColorLinked)
}

type columnFields ColumnConfig

type columnWire struct {
	columnFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (c ColumnConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(columnWire{columnFields: columnFields(c), DeletedAt: c.Lifecycle.wire()})
}

func (c *ColumnConfig) UnmarshalJSON(data []byte) error {
	var w columnWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = ColumnConfig(w.columnFields)
	c.Lifecycle = lifecycleFromWire(w.DeletedAt)
	return nil
}

type AppConfig struct {
	Shops      []ConfigItem   `json:"shops"`
	Statuses   []ConfigItem   `json:"statuses"`
	Priorities []ConfigItem   `json:"priorities"`
	Columns    []ColumnConfig `json:"columns"`
}

// Items returns the taxonomy list for kind.
func (c *AppConfig) Items(kind TaxonomyKind) []ConfigItem {
	switch kind {
	case KindShops:
		return c.Shops
	case KindStatuses:
		return c.Statuses
	case KindPriorities:
		return c.Priorities
	}
	return nil
}

func (c *AppConfig) SetItems(kind TaxonomyKind, items []ConfigItem) {
	switch kind {
	case KindShops:
		c.Shops = items
	case KindStatuses:
		c.Statuses = items
	case KindPriorities:
		c.Priorities = items
	}
}

func (c AppConfig) Clone() AppConfig {
	out := AppConfig{
		Shops:      append([]ConfigItem(nil), c.Shops...),
		Statuses:   append([]ConfigItem(nil), c.Statuses...),
		Priorities: append([]ConfigItem(nil), c.Priorities...),
		Columns:    make([]ColumnConfig, len(c.Columns)),
	}
	for i, col := range c.Columns {
		if col.ColorLinked != nil {
			v := *col.ColorLinked
			col.ColorLinked = &v
		}
		out.Columns[i] = col
	}
	return out
}

type SubTask struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Completed bool              `json:"completed"`
	DueDate   string            `json:"dueDate"`
	CreatedAt time.Time         `json:"createdAt"`
	Fields    map[string]string `json:"fields"`
}

func (s SubTask) Clone() SubTask {
	fields := make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	s.Fields = fields
	return s
}

// SubtaskField declares one custom column shared by all sub-tasks of a launch.
type SubtaskField struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

type Launch struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Shop          string                `json:"shop"`
	Status        string                `json:"status"`
	Priority      string                `json:"priority"`
	StartDate     string                `json:"startDate"`
	EndDate       string                `json:"endDate"`
	Notes         string                `json:"notes"`
	Attachments   []string              `json:"attachments"`
	Subtasks      []SubTask             `json:"subtasks"`
	SubtaskFields []SubtaskField        `json:"subtaskFields,omitempty"`
	CustomFields  map[string]FieldValue `json:"customFields"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	Lifecycle     Lifecycle             `json:"-"`
}

type launchFields Launch

type launchWire struct {
	launchFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

func (l Launch) MarshalJSON() ([]byte, error) {
	l.Normalize()
	return json.Marshal(launchWire{launchFields: launchFields(l), DeletedAt: l.Lifecycle.wire()})
}

func (l *Launch) UnmarshalJSON(data []byte) error {
	var w launchWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*l = Launch(w.launchFields)
	l.Lifecycle = lifecycleFromWire(w.DeletedAt)
	l.Normalize()
	return nil
}

// Normalize replaces nil collections with empty ones so they persist as [] and {}.
func (l *Launch) Normalize() {
	if l.Attachments == nil {
		l.Attachments = []string{}
	}
	if l.Subtasks == nil {
		l.Subtasks = []SubTask{}
	}
	if l.CustomFields == nil {
		l.CustomFields = map[string]FieldValue{}
	}
	for i := range l.Subtasks {
		if l.Subtasks[i].Fields == nil {
			l.Subtasks[i].Fields = map[string]string{}
		}
	}
}

func (l Launch) Clone() Launch {
	out := l
	out.Attachments = append([]string{}, l.Attachments...)
	out.Subtasks = make([]SubTask, len(l.Subtasks))
	for i, st := range l.Subtasks {
		out.Subtasks[i] = st.Clone()
	}
	if l.SubtaskFields != nil {
		out.SubtaskFields = append([]SubtaskField{}, l.SubtaskFields...)
	}
	out.CustomFields = make(map[string]FieldValue, len(l.CustomFields))
	for k, v := range l.CustomFields {
		out.CustomFields[k] = v
	}
	return out
}

func (l Launch) IsDeleted() bool {
	return l.Lifecycle.IsDeleted()
}

// Matches reports whether the launch passes the field filters and, when set, the search text.
func (l Launch) Matches(f Filters) bool {
	if f.Shop != All && l.Shop != f.Shop {
		return false
	}
	if f.Status != All && l.Status != f.Status {
		return false
	}
	if f.Priority != All && l.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		return strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Shop), q) ||
			strings.Contains(strings.ToLower(l.Notes), q)
	}
	return true
}

// LaunchDraft is the caller-supplied part of a new launch.
type LaunchDraft struct {
	Name         string
	Shop         string
	Status       string
	Priority     string
	StartDate    string
	EndDate      string
	Notes        string
	Attachments  []string
	Subtasks     []SubTask
	CustomFields map[string]FieldValue
}

type Filters struct {
	Search   string
	Shop     string
	Status   string
	Priority string
}

func DefaultFilters() Filters {
	return Filters{Shop: All, Status: All, Priority: All}
}

func (f Filters) IsDefault() bool {
	return f == DefaultFilters()
}

type Stats struct {
	Total        int
	ByStatus     map[string]int
	ExpiringSoon []Launch
}

// ParseDate accepts plain ISO dates (UTC midnight) and RFC 3339 timestamps.
func ParseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
