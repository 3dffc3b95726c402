package filters

import (
	"sort"

	"dashboard.GO/model/catalog"
)

// Applied maps a filter ID to its selected values, in selection order.
type Applied map[string][]string

// Toggle selects value for id, or deselects it if already selected.
func (a Applied) Toggle(id, value string) {
	for i, v := range a[id] {
		if v == value {
			a[id] = append(a[id][:i:i], a[id][i+1:]...)
			if len(a[id]) == 0 {
				delete(a, id)
			}
			return
		}
	}
	a[id] = append(a[id], value)
}

// Remove deselects value and drops id once no values remain.
func (a Applied) Remove(id, value string) {
	vals, ok := a[id]
	if !ok {
		return
	}
	kept := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(a, id)
		return
	}
	a[id] = kept
}

func (a Applied) Empty() bool {
	return len(a) == 0
}

// Clone returns an independent copy, skipping blank values.
func (a Applied) Clone() Applied {
	out := make(Applied, len(a))
	for id, vals := range a {
		for _, v := range vals {
			if v != "" {
				out[id] = append(out[id], v)
			}
		}
	}
	return out
}

// Keys returns the filter IDs in sorted order.
func (a Applied) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Chip is one applied value rendered as a removable tag.
type Chip struct {
	FilterID string `json:"filterId"`
	Value    string `json:"value"`
	Label    string `json:"label"`
}

// Chips renders applied values as "title: valueName" tags, falling back to the raw value.
func (a Applied) Chips(available []catalog.Filter) []Chip {
	var chips []Chip
	for _, id := range a.Keys() {
		f := catalog.FindFilter(available, id)
		title := id
		if f != nil && f.Title != "" {
			title = f.Title
		}
		for _, v := range a[id] {
			label := v
			if f != nil {
				for _, fv := range f.Values {
					if fv.Value == v {
						label = fv.Label()
						break
					}
				}
			}
			chips = append(chips, Chip{FilterID: id, Value: v, Label: title + ": " + label})
		}
	}
	return chips
}

// Clear drops every applied value.
func (a Applied) Clear() {
	for k := range a {
		delete(a, k)
	}
}
