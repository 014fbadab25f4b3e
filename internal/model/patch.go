package model

// ItemPatch is a shallow merge onto an AgendaItem; nil fields are left alone.
type ItemPatch struct {
	Title           *string
	Category        *Category
	DurationMinutes *int
	Description     *Description
	Instructions    *string
	Tools           *[]string
	Links           *[]string
	IsFixed         *bool
	IsPlaceholder   *bool
}

func (p ItemPatch) Empty() bool {
	return p == (ItemPatch{})
}

// Apply merges p into it. The id is never touched.
func (it *AgendaItem) Apply(p ItemPatch) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.DurationMinutes != nil {
		it.DurationMinutes = *p.DurationMinutes
	}
	if p.Description != nil {
		it.Description = p.Description.Clone()
	}
	if p.Instructions != nil {
		it.Instructions = cloneString(p.Instructions)
	}
	if p.Tools != nil {
		it.Tools = cloneStrings(*p.Tools)
	}
	if p.Links != nil {
		it.Links = cloneStrings(*p.Links)
	}
	if p.IsFixed != nil {
		it.IsFixed = cloneBool(p.IsFixed)
	}
	if p.IsPlaceholder != nil {
		it.IsPlaceholder = cloneBool(p.IsPlaceholder)
	}
}

// MetaPatch covers the editable workshop metadata (not id, days or timestamps).
type MetaPatch struct {
	Name            *string
	ClientName      *string
	LocationType    *LocationType
	LocationDetails *string
	StartDate       *string
}

func (w *Workshop) Apply(p MetaPatch) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.ClientName != nil {
		w.ClientName = cloneString(p.ClientName)
	}
	if p.LocationType != nil {
		lt := *p.LocationType
		w.LocationType = &lt
	}
	if p.LocationDetails != nil {
		w.LocationDetails = cloneString(p.LocationDetails)
	}
	if p.StartDate != nil {
		w.StartDate = cloneString(p.StartDate)
	}
}

// DayPatch covers editable day metadata. DateOffset follows position.
type DayPatch struct {
	StartTime *string
}

func (d *WorkshopDay) Apply(p DayPatch) {
	if p.StartTime != nil {
		d.StartTime = *p.StartTime
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
