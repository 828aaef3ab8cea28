package decorator

// Wire types consumed by the admin front end. Field names and nesting
// form the de facto wire contract; keep them stable.

// PropertyJSON is the serializable view of a decorated property.
type PropertyJSON struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Type       string `json:"type"`
	IsID       bool   `json:"isId"`
	IsTitle    bool   `json:"isTitle"`
	IsSortable bool   `json:"isSortable"`
	Position   int    `json:"position"`
}

// ActionJSON is the serializable view of a decorated action.
type ActionJSON struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Icon      string `json:"icon,omitempty"`
	Scope     string `json:"scope"`
	Guard     string `json:"guard,omitempty"`
	Component string `json:"component,omitempty"`
}

// ParentJSON is the sidebar grouping of a resource.
type ParentJSON struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ResourceJSON is the full snapshot of one decorated resource for one
// acting admin. The rendering layer performs no further resolution.
type ResourceJSON struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Parent           ParentJSON     `json:"parent"`
	Href             string         `json:"href"`
	TitleProperty    PropertyJSON   `json:"titleProperty"`
	ResourceActions  []ActionJSON   `json:"resourceActions"`
	ListProperties   []PropertyJSON `json:"listProperties"`
	EditProperties   []PropertyJSON `json:"editProperties"`
	ShowProperties   []PropertyJSON `json:"showProperties"`
	FilterProperties []PropertyJSON `json:"filterProperties"`
}

// RecordJSON is the serializable view of one record in one resource.
type RecordJSON struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Params        map[string]any `json:"params"`
	RecordActions []ActionJSON   `json:"recordActions"`
}
