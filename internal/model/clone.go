package model

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (d *Description) Clone() *Description {
	if d == nil {
		return nil
	}
	return &Description{
		Short:      d.Short,
		Objectives: cloneStrings(d.Objectives),
		Outcomes:   cloneStrings(d.Outcomes),
	}
}

func (it AgendaItem) Clone() AgendaItem {
	out := it
	out.Description = it.Description.Clone()
	out.Instructions = cloneString(it.Instructions)
	out.Tools = cloneStrings(it.Tools)
	out.Links = cloneStrings(it.Links)
	out.IsFixed = cloneBool(it.IsFixed)
	out.IsPlaceholder = cloneBool(it.IsPlaceholder)
	return out
}

func (d WorkshopDay) Clone() WorkshopDay {
	out := d
	if d.Items != nil {
		out.Items = make([]AgendaItem, len(d.Items))
		for i := range d.Items {
			out.Items[i] = d.Items[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy; snapshots handed to subscribers never alias editor state.
func (w Workshop) Clone() Workshop {
	out := w
	out.ClientName = cloneString(w.ClientName)
	out.LocationDetails = cloneString(w.LocationDetails)
	out.StartDate = cloneString(w.StartDate)
	if w.LocationType != nil {
		lt := *w.LocationType
		out.LocationType = &lt
	}
	if w.Days != nil {
		out.Days = make([]WorkshopDay, len(w.Days))
		for i := range w.Days {
			out.Days[i] = w.Days[i].Clone()
		}
	}
	return out
}
