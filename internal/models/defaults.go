package models

func DefaultStatuses() []ConfigItem {
	return []ConfigItem{
		{ID: "da-fare", Name: "Da fare", Color: "#c4c4c4", Order: 0},
		{ID: "in-corso", Name: "In corso", Color: "#0073ea", Order: 1},
		{ID: "in-revisione", Name: "In revisione", Color: "#fdab3d", Order: 2},
		{ID: "completato", Name: "Completato", Color: "#00c875", Order: 3},
		{ID: "in-pausa", Name: "In pausa", Color: "#e2445c", Order: 4},
	}
}

func DefaultPriorities() []ConfigItem {
	return []ConfigItem{
		{ID: "alta", Name: "Alta", Color: "#e2445c", Order: 0},
		{ID: "media", Name: "Media", Color: "#fdab3d", Order: 1},
		{ID: "bassa", Name: "Bassa", Color: "#00c875", Order: 2},
	}
}

func DefaultShops() []ConfigItem {
	return []ConfigItem{
		{ID: "shop-italia", Name: "Shop Italia", Color: "#0073ea", Order: 0},
		{ID: "shop-francia", Name: "Shop Francia", Color: "#a25ddc", Order: 1},
		{ID: "shop-germania", Name: "Shop Germania", Color: "#fdab3d", Order: 2},
		{ID: "shop-spagna", Name: "Shop Spagna", Color: "#e2445c", Order: 3},
		{ID: "shop-uk", Name: "Shop UK", Color: "#00c875", Order: 4},
	}
}

func DefaultItems(kind TaxonomyKind) []ConfigItem {
	switch kind {
	case KindShops:
		return DefaultShops()
	case KindStatuses:
		return DefaultStatuses()
	case KindPriorities:
		return DefaultPriorities()
	}
	return nil
}

func DefaultColumns() []ColumnConfig {
	return []ColumnConfig{
		{ID: ColumnIDName, Name: "Attivita'", Type: ColumnText, Visible: true, Order: 0, Pinned: true},
		{ID: ColumnIDShop, Name: "Shop", Type: ColumnText, Visible: true, Order: 1},
		{ID: ColumnIDStatus, Name: "Stato", Type: ColumnText, Visible: true, Order: 2},
		{ID: ColumnIDDeadline, Name: "Scadenza", Type: ColumnDate, Visible: true, Order: 3, ColorLinked: Ptr(true)},
		{ID: ColumnIDPriority, Name: "Priorita'", Type: ColumnText, Visible: true, Order: 4},
		{ID: ColumnIDTimeline, Name: "Timeline", Type: ColumnDate, Visible: true, Order: 5, ColorLinked: Ptr(true)},
		{ID: ColumnIDActions, Name: "", Type: ColumnText, Visible: true, Order: 6, Pinned: true},
	}
}

func DefaultAppConfig() AppConfig {
	return AppConfig{
		Shops:      DefaultShops(),
		Statuses:   DefaultStatuses(),
		Priorities: DefaultPriorities(),
		Columns:    DefaultColumns(),
	}
}
