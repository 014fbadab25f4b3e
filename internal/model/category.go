package model

type CategoryInfo struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
	// Color is a hex color used by the terminal renderer.
	Color string `json:"color"`
}

var Categories = []CategoryInfo{
	{ID: CategoryDiscovery, Label: "Discovery", Color: "#3b82f6"},
	{ID: CategoryIdeation, Label: "Ideation", Color: "#eab308"},
	{ID: CategoryDecision, Label: "Decision", Color: "#22c55e"},
	{ID: CategoryBreak, Label: "Break", Color: "#94a3b8"},
	{ID: CategoryPresentation, Label: "Presentation", Color: "#a855f7"},
	{ID: CategoryIceBreaker, Label: "Ice-breaker", Color: "#f97316"},
	{ID: CategoryPlaceholder, Label: "Placeholder", Color: "#6b7280"},
	{ID: CategoryOther, Label: "Other", Color: "#ec4899"},
}

func categoryInfo(c Category) (CategoryInfo, bool) {
	for _, ci := range Categories {
		if ci.ID == c {
			return ci, true
		}
	}
	return CategoryInfo{}, false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryInfo(c)
	return ok
}

func (c Category) Label() string {
	if ci, ok := categoryInfo(c); ok {
		return ci.Label
	}
	return "Other"
}

func (c Category) Color() string {
	if ci, ok := categoryInfo(c); ok {
		return ci.Color
	}
	other, _ := categoryInfo(CategoryOther)
	return other.Color
}

// ParseCategory accepts a category id or its label (case-insensitive).
func ParseCategory(s string) (Category, bool) {
	for _, ci := range Categories {
		if equalFold(string(ci.ID), s) || equalFold(ci.Label, s) {
			return ci.ID, true
		}
	}
	return "", false
}
