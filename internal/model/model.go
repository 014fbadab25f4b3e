package model

import "time"

type Category string

const (
	CategoryDiscovery    Category = "discovery"
	CategoryIdeation     Category = "ideation"
	CategoryDecision     Category = "decision"
	CategoryBreak        Category = "break"
	CategoryPresentation Category = "presentation"
	CategoryIceBreaker   Category = "ice-breaker"
	CategoryPlaceholder  Category = "placeholder"
	CategoryOther        Category = "other"
)

type LocationType string

const (
	LocationOffline LocationType = "offline"
	LocationOnline  LocationType = "online"
)

// Description is the rich text attached to an activity.
type Description struct {
	Short      string   `json:"short" yaml:"short"`
	Objectives []string `json:"objectives,omitzero" yaml:"objectives,omitempty"`
	Outcomes   []string `json:"outcomes,omitzero" yaml:"outcomes,omitempty"`
}

// AgendaItem is a single scheduled activity. Optional fields are pointers or
// nil slices so that "absent" and "explicitly empty" survive a save/load cycle.
type AgendaItem struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Category        Category     `json:"category"`
	DurationMinutes int          `json:"durationMinutes"`
	Description     *Description `json:"description,omitempty"`
	Instructions    *string      `json:"instructions,omitempty"`
	Tools           []string     `json:"tools,omitzero"`
	Links           []string     `json:"links,omitzero"`
	IsFixed         *bool        `json:"isFixed,omitempty"`
	IsPlaceholder   *bool        `json:"isPlaceholder,omitempty"`
}

func (it AgendaItem) Fixed() bool       { return it.IsFixed != nil && *it.IsFixed }
func (it AgendaItem) Placeholder() bool { return it.IsPlaceholder != nil && *it.IsPlaceholder }

// ShortDescription returns the short description or "".
func (it AgendaItem) ShortDescription() string {
	if it.Description == nil {
		return ""
	}
	return it.Description.Short
}

type WorkshopDay struct {
	ID         string       `json:"id"`
	DateOffset int          `json:"dateOffset"`
	StartTime  string       `json:"startTime"`
	Items      []AgendaItem `json:"items"`
}

// TotalMinutes is the unwrapped sum of the day's item durations.
func (d WorkshopDay) TotalMinutes() int {
	total := 0
	for _, it := range d.Items {
		total += it.DurationMinutes
	}
	return total
}

// IndexOf returns the position of itemID in the day, or -1.
func (d WorkshopDay) IndexOf(itemID string) int {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

type Workshop struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	ClientName      *string       `json:"clientName,omitempty"`
	LocationType    *LocationType `json:"locationType,omitempty"`
	LocationDetails *string       `json:"locationDetails,omitempty"`
	StartDate       *string       `json:"startDate,omitempty"`
	Days            []WorkshopDay `json:"days"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// FindDay returns the index of dayID, or -1.
func (w Workshop) FindDay(dayID string) int {
	for i := range w.Days {
		if w.Days[i].ID == dayID {
			return i
		}
	}
	return -1
}

// DayOf returns the index of the day holding itemID, or -1.
func (w Workshop) DayOf(itemID string) int {
	for i := range w.Days {
		if w.Days[i].IndexOf(itemID) >= 0 {
			return i
		}
	}
	return -1
}

func (w Workshop) ItemCount() int {
	n := 0
	for _, d := range w.Days {
		n += len(d.Items)
	}
	return n
}

func (w Workshop) TotalMinutes() int {
	n := 0
	for _, d := range w.Days {
		n += d.TotalMinutes()
	}
	return n
}

// AgendaItemTemplate is an uninstantiated library activity.
type AgendaItemTemplate struct {
	Title           string       `json:"title" yaml:"title"`
	Category        Category     `json:"category" yaml:"category"`
	DefaultDuration int          `json:"defaultDuration" yaml:"defaultDuration"`
	Description     *Description `json:"description,omitempty" yaml:"description,omitempty"`
	Instructions    *string      `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Tools           []string     `json:"tools,omitzero" yaml:"tools,omitempty"`
	IsPlaceholder   bool         `json:"isPlaceholder,omitempty" yaml:"isPlaceholder,omitempty"`
}

// TemplateItemRef is either a bare library title (Inline == nil) or a fully
// inlined item that is not part of the library.
type TemplateItemRef struct {
	Title  string      `json:"title,omitempty"`
	Inline *AgendaItem `json:"item,omitempty"`
}

type TemplateDay struct {
	DayIndex int               `json:"dayIndex"`
	Items    []TemplateItemRef `json:"items"`
}

type WorkshopTemplate struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	DefaultStartTime string        `json:"defaultStartTime"`
	Days             []TemplateDay `json:"days"`
}
