// Package library is the read-only activity catalog and the workshop
// templates built from it.
package library

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"workshop-planner/internal/model"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Fallback values for template titles missing from the catalog.
const (
	FallbackDuration = 30
	FallbackCategory = model.CategoryOther
)

// Catalog holds the ordered activity list and the workshop templates.
type Catalog struct {
	activities []model.AgendaItemTemplate
	templates  []model.WorkshopTemplate
	byTitle    map[string]int
}

type activitiesFile struct {
	Activities []model.AgendaItemTemplate `yaml:"activities"`
}

type templateItemYAML struct {
	Title           string             `yaml:"title"`
	Category        model.Category     `yaml:"category"`
	DurationMinutes int                `yaml:"durationMinutes"`
	Description     *model.Description `yaml:"description"`
	Instructions    *string            `yaml:"instructions"`
	Tools           []string           `yaml:"tools"`
	Links           []string           `yaml:"links"`
	IsPlaceholder   *bool              `yaml:"isPlaceholder"`
}

type templateYAML struct {
	ID               string `yaml:"id"`
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	DefaultStartTime string `yaml:"defaultStartTime"`
	Days             []struct {
		DayIndex int                `yaml:"dayIndex"`
		Items    []templateItemYAML `yaml:"items"`
	} `yaml:"days"`
}

type templatesFile struct {
	Templates []templateYAML `yaml:"templates"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		acts, err := dataFS.ReadFile("data/activities.yaml")
		if err != nil {
			defaultErr = err
			return
		}
		tpls, err := dataFS.ReadFile("data/templates.yaml")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Parse(acts, tpls)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("library: embedded catalog: %v", defaultErr))
	}
	return defaultCatalog
}

// Parse builds a catalog from YAML documents shaped like the embedded data.
func Parse(activitiesYAML, templatesYAML []byte) (*Catalog, error) {
	var af activitiesFile
	if err := decodeStrict(activitiesYAML, &af); err != nil {
		return nil, fmt.Errorf("activities: %w", err)
	}
	var tf templatesFile
	if len(bytes.TrimSpace(templatesYAML)) > 0 {
		if err := decodeStrict(templatesYAML, &tf); err != nil {
			return nil, fmt.Errorf("templates: %w", err)
		}
	}

	c := &Catalog{byTitle: map[string]int{}}
	for i, a := range af.Activities {
		if strings.TrimSpace(a.Title) == "" {
			return nil, fmt.Errorf("activities[%d]: missing title", i)
		}
		if a.DefaultDuration <= 0 {
			return nil, fmt.Errorf("activity %q: duration must be positive", a.Title)
		}
		if !a.Category.Valid() {
			return nil, fmt.Errorf("activity %q: unknown category %q", a.Title, a.Category)
		}
		if _, dup := c.byTitle[a.Title]; !dup {
			c.byTitle[a.Title] = len(c.activities)
		}
		c.activities = append(c.activities, a)
	}
	for _, t := range tf.Templates {
		wt, err := t.toModel()
		if err != nil {
			return nil, err
		}
		c.templates = append(c.templates, wt)
	}
	return c, nil
}

func decodeStrict(b []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func (t templateYAML) toModel() (model.WorkshopTemplate, error) {
	if t.ID == "" {
		return model.WorkshopTemplate{}, fmt.Errorf("template %q: missing id", t.Name)
	}
	start := t.DefaultStartTime
	if start == "" {
		start = model.DefaultStartTime
	}
	if _, err := model.ParseClock(start); err != nil {
		return model.WorkshopTemplate{}, fmt.Errorf("template %s: %w", t.ID, err)
	}
	out := model.WorkshopTemplate{
		ID:               t.ID,
		Name:             t.Name,
		Description:      t.Description,
		DefaultStartTime: start,
	}
	for _, d := range t.Days {
		td := model.TemplateDay{DayIndex: d.DayIndex}
		for _, it := range d.Items {
			if it.Category == "" {
				td.Items = append(td.Items, model.TemplateItemRef{Title: it.Title})
				continue
			}
			inline := model.AgendaItem{
				Title:           it.Title,
				Category:        it.Category,
				DurationMinutes: it.DurationMinutes,
				Description:     it.Description,
				Instructions:    it.Instructions,
				Tools:           it.Tools,
				Links:           it.Links,
				IsPlaceholder:   it.IsPlaceholder,
			}
			if inline.DurationMinutes <= 0 {
				inline.DurationMinutes = FallbackDuration
			}
			td.Items = append(td.Items, model.TemplateItemRef{Title: it.Title, Inline: &inline})
		}
		out.Days = append(out.Days, td)
	}
	return out, nil
}

// Activities returns the catalog in display order.
func (c *Catalog) Activities() []model.AgendaItemTemplate {
	return append([]model.AgendaItemTemplate(nil), c.activities...)
}

// At returns the activity at a library index.
func (c *Catalog) At(index int) (model.AgendaItemTemplate, bool) {
	if index < 0 || index >= len(c.activities) {
		return model.AgendaItemTemplate{}, false
	}
	return c.activities[index], true
}

// FindByTitle is an exact title lookup; the first entry wins.
func (c *Catalog) FindByTitle(title string) (model.AgendaItemTemplate, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return model.AgendaItemTemplate{}, false
	}
	return c.activities[i], true
}

func (c *Catalog) ByCategory(cat model.Category) []model.AgendaItemTemplate {
	var out []model.AgendaItemTemplate
	for _, a := range c.activities {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// Entry is a search hit carrying its library index.
type Entry struct {
	Index    int
	Template model.AgendaItemTemplate
}

// Search matches query case-insensitively against title and short
// description. An empty category matches all categories.
func (c *Catalog) Search(query string, cat model.Category) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for i, a := range c.activities {
		if cat != "" && a.Category != cat {
			continue
		}
		if q != "" {
			short := ""
			if a.Description != nil {
				short = a.Description.Short
			}
			if !strings.Contains(strings.ToLower(a.Title), q) && !strings.Contains(strings.ToLower(short), q) {
				continue
			}
		}
		out = append(out, Entry{Index: i, Template: a})
	}
	return out
}

// Grouped returns hits grouped by category in model.Categories order.
func Grouped(entries []Entry) []CategoryGroup {
	var out []CategoryGroup
	for _, info := range model.Categories {
		var g []Entry
		for _, e := range entries {
			if e.Template.Category == info.ID {
				g = append(g, e)
			}
		}
		if len(g) > 0 {
			out = append(out, CategoryGroup{Category: info.ID, Entries: g})
		}
	}
	return out
}

type CategoryGroup struct {
	Category model.Category
	Entries  []Entry
}

// QuickAdd entries are always offered above the catalog.
func QuickAdd() []model.AgendaItemTemplate {
	return []model.AgendaItemTemplate{
		{
			Title:           "Placeholder",
			Category:        model.CategoryPlaceholder,
			DefaultDuration: 15,
			Description:     &model.Description{Short: "Empty time block"},
			IsPlaceholder:   true,
		},
		{
			Title:           "New Activity",
			Category:        model.CategoryOther,
			DefaultDuration: 15,
		},
	}
}

func (c *Catalog) Templates() []model.WorkshopTemplate {
	return append([]model.WorkshopTemplate(nil), c.templates...)
}

func (c *Catalog) TemplateByID(id string) (model.WorkshopTemplate, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return model.WorkshopTemplate{}, false
}

// InstantiateItem copies a library template into a new item with a fresh id.
func InstantiateItem(t model.AgendaItemTemplate) model.AgendaItem {
	it := model.AgendaItem{
		ID:              model.NewID(),
		Title:           t.Title,
		Category:        t.Category,
		DurationMinutes: t.DefaultDuration,
		Description:     t.Description.Clone(),
		Instructions:    t.Instructions,
		Tools:           t.Tools,
	}
	if t.IsPlaceholder {
		it.IsPlaceholder = model.Ptr(true)
	}
	return it.Clone()
}

// ResolveRef turns a template entry into an item with a fresh id. Unknown
// titles become a generic 30 minute "other" item.
func (c *Catalog) ResolveRef(ref model.TemplateItemRef) model.AgendaItem {
	if ref.Inline != nil {
		it := ref.Inline.Clone()
		it.ID = model.NewID()
		return it
	}
	if t, ok := c.FindByTitle(ref.Title); ok {
		return InstantiateItem(t)
	}
	return model.AgendaItem{
		ID:              model.NewID(),
		Title:           ref.Title,
		Category:        FallbackCategory,
		DurationMinutes: FallbackDuration,
	}
}

// ExpandTemplate builds the days of a new workshop from t. Days are ordered by
// DayIndex and renumbered from zero.
func (c *Catalog) ExpandTemplate(t model.WorkshopTemplate) []model.WorkshopDay {
	days := append([]model.TemplateDay(nil), t.Days...)
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayIndex < days[j].DayIndex })
	out := make([]model.WorkshopDay, 0, len(days))
	for i, td := range days {
		d := model.WorkshopDay{
			ID:         model.NewID(),
			DateOffset: i,
			StartTime:  t.DefaultStartTime,
			Items:      make([]model.AgendaItem, 0, len(td.Items)),
		}
		for _, ref := range td.Items {
			d.Items = append(d.Items, c.ResolveRef(ref))
		}
		out = append(out, d)
	}
	return out
}
