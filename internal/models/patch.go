package models

// Ptr returns a pointer to v, for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// LaunchPatch holds a partial launch update. Nil fields are left unchanged.
type LaunchPatch struct {
	Name          *string
	Shop          *string
	Status        *string
	Priority      *string
	StartDate     *string
	EndDate       *string
	Notes         *string
	Attachments   *[]string
	Subtasks      *[]SubTask
	SubtaskFields *[]SubtaskField
	CustomFields  *map[string]FieldValue
}

func (p LaunchPatch) Apply(l *Launch) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Shop != nil {
		l.Shop = *p.Shop
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Priority != nil {
		l.Priority = *p.Priority
	}
	if p.StartDate != nil {
		l.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		l.EndDate = *p.EndDate
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.Attachments != nil {
		l.Attachments = append([]string{}, (*p.Attachments)...)
	}
	if p.Subtasks != nil {
		subtasks := make([]SubTask, len(*p.Subtasks))
		for i, st := range *p.Subtasks {
			subtasks[i] = st.Clone()
		}
		l.Subtasks = subtasks
	}
	if p.SubtaskFields != nil {
		l.SubtaskFields = append([]SubtaskField{}, (*p.SubtaskFields)...)
	}
	if p.CustomFields != nil {
		fields := make(map[string]FieldValue, len(*p.CustomFields))
		for k, v := range *p.CustomFields {
			fields[k] = v
		}
		l.CustomFields = fields
	}
	l.Normalize()
}

type ConfigItemPatch struct {
	Name  *string
	Color *string
	Order *int
}

func (p ConfigItemPatch) Apply(item *ConfigItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Order != nil {
		item.Order = *p.Order
	}
}

// ColumnPatch is a partial column update. Pinned and built-in flags are not guarded here.
type ColumnPatch struct {
	Name        *string
	Type        *ColumnType
	Visible     *bool
	Order       *int
	Pinned      *bool
	ColorLinked *bool
}

func (p ColumnPatch) Apply(c *ColumnConfig) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Visible != nil {
		c.Visible = *p.Visible
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
	if p.Pinned != nil {
		c.Pinned = *p.Pinned
	}
	if p.ColorLinked != nil {
		v := *p.ColorLinked
		c.ColorLinked = &v
	}
}
