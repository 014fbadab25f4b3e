package library

import (
	"strings"
	"testing"

	"workshop-planner/internal/model"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := Default()
	acts := c.Activities()
	if len(acts) < 40 {
		t.Fatalf("activities = %d", len(acts))
	}
	if acts[0].Title != "Stakeholder Interviews" || acts[0].DefaultDuration != 60 {
		t.Fatalf("first activity = %+v", acts[0])
	}
	for _, id := range []string{"ldj", "brand-sprint", "strategy-signal", "foundation-sprint", "design-sprint", "value-proposition", "lean-inception", "blue-ocean"} {
		if _, ok := c.TemplateByID(id); !ok {
			t.Fatalf("missing template %q", id)
		}
	}
}

func TestFindByTitle(t *testing.T) {
	c := Default()
	got, ok := c.FindByTitle("Coffee Break")
	if !ok || got.Category != model.CategoryBreak || got.DefaultDuration != 15 {
		t.Fatalf("Coffee Break = %+v, %v", got, ok)
	}
	if _, ok := c.FindByTitle("coffee break"); ok {
		t.Fatalf("lookup should be exact")
	}
}

func TestSearch(t *testing.T) {
	c := Default()
	hits := c.Search("VOTING", "")
	if len(hits) == 0 {
		t.Fatalf("no hits")
	}
	for _, h := range hits {
		a, _ := c.At(h.Index)
		if a.Title != h.Template.Title {
			t.Fatalf("index %d does not point at %q", h.Index, h.Template.Title)
		}
		text := strings.ToLower(h.Template.Title + " " + h.Template.Description.Short)
		if !strings.Contains(text, "voting") {
			t.Fatalf("unexpected hit %q", h.Template.Title)
		}
	}
	for _, h := range c.Search("", model.CategoryBreak) {
		if h.Template.Category != model.CategoryBreak {
			t.Fatalf("category filter leaked %q", h.Template.Title)
		}
	}
	if got := len(c.Search("", "")); got != len(c.Activities()) {
		t.Fatalf("empty search = %d hits", got)
	}
}

func TestGroupedFollowsCategoryOrder(t *testing.T) {
	groups := Grouped(Default().Search("", ""))
	last := -1
	for _, g := range groups {
		pos := -1
		for i, ci := range model.Categories {
			if ci.ID == g.Category {
				pos = i
			}
		}
		if pos <= last {
			t.Fatalf("group %q out of order", g.Category)
		}
		last = pos
	}
}

func TestResolveRef(t *testing.T) {
	c := Default()

	lib := c.ResolveRef(model.TemplateItemRef{Title: "Dot Voting"})
	if lib.ID == "" || lib.Category != model.CategoryDecision || lib.DurationMinutes != 15 || lib.Description == nil {
		t.Fatalf("library ref = %+v", lib)
	}

	missing := c.ResolveRef(model.TemplateItemRef{Title: "Underwater Basket Weaving"})
	if missing.Category != model.CategoryOther || missing.DurationMinutes != 30 || missing.Title != "Underwater Basket Weaving" {
		t.Fatalf("fallback = %+v", missing)
	}

	inline := &model.AgendaItem{Title: "Custom", Category: model.CategoryIdeation, DurationMinutes: 25}
	a := c.ResolveRef(model.TemplateItemRef{Inline: inline})
	b := c.ResolveRef(model.TemplateItemRef{Inline: inline})
	if a.ID == "" || a.ID == b.ID || a.DurationMinutes != 25 {
		t.Fatalf("inline refs = %+v / %+v", a, b)
	}
	if inline.ID != "" {
		t.Fatalf("resolve mutated the template")
	}
}

func TestInstantiateItem_FreshIDAndCopiedFields(t *testing.T) {
	tpl, _ := Default().FindByTitle("SWOT Analysis")
	a := InstantiateItem(tpl)
	b := InstantiateItem(tpl)
	if a.ID == b.ID {
		t.Fatalf("ids collide")
	}
	if a.Title != tpl.Title || a.DurationMinutes != tpl.DefaultDuration || len(a.Tools) != len(tpl.Tools) {
		t.Fatalf("item = %+v", a)
	}
	a.Description.Short = "changed"
	again, _ := Default().FindByTitle("SWOT Analysis")
	if again.Description.Short == "changed" {
		t.Fatalf("instantiated item aliases the catalog")
	}
}

func TestQuickAddPlaceholder(t *testing.T) {
	qa := QuickAdd()
	it := InstantiateItem(qa[0])
	if !it.Placeholder() || it.Category != model.CategoryPlaceholder || it.DurationMinutes != 15 {
		t.Fatalf("placeholder = %+v", it)
	}
	custom := InstantiateItem(qa[1])
	if custom.Title != "New Activity" || custom.IsPlaceholder != nil {
		t.Fatalf("custom = %+v", custom)
	}
}

func TestExpandTemplate(t *testing.T) {
	c := Default()
	tpl, _ := c.TemplateByID("design-sprint")
	days := c.ExpandTemplate(tpl)
	if len(days) != len(tpl.Days) {
		t.Fatalf("days = %d", len(days))
	}
	seen := map[string]bool{}
	for i, d := range days {
		if d.DateOffset != i || d.StartTime != tpl.DefaultStartTime {
			t.Fatalf("day %d = offset %d start %s", i, d.DateOffset, d.StartTime)
		}
		for _, it := range d.Items {
			if seen[it.ID] {
				t.Fatalf("duplicate id %s", it.ID)
			}
			seen[it.ID] = true
			if it.DurationMinutes <= 0 {
				t.Fatalf("item %q has no duration", it.Title)
			}
		}
	}
}

func TestExpandTemplate_OrdersByDayIndex(t *testing.T) {
	c := Default()
	tpl := model.WorkshopTemplate{
		ID:               "x",
		DefaultStartTime: "08:00",
		Days: []model.TemplateDay{
			{DayIndex: 1, Items: []model.TemplateItemRef{{Title: "Lunch Break"}}},
			{DayIndex: 0, Items: []model.TemplateItemRef{{Title: "Coffee Break"}}},
		},
	}
	days := c.ExpandTemplate(tpl)
	if days[0].Items[0].Title != "Coffee Break" || days[1].DateOffset != 1 {
		t.Fatalf("days = %+v", days)
	}
}

func TestParseRejectsBadData(t *testing.T) {
	cases := map[string]string{
		"unknown category": "activities:\n- title: X\n  category: nap\n  defaultDuration: 10\n",
		"zero duration":    "activities:\n- title: X\n  category: other\n  defaultDuration: 0\n",
		"unknown field":    "activities:\n- title: X\n  category: other\n  defaultDuration: 5\n  colour: red\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc), nil); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
