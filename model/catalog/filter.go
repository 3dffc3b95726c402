package catalog

// Filter is a named, multi-valued attribute usable to narrow a product query.
type Filter struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Values         []FilterValue `json:"values"`
	Currency       *string       `json:"currency"`
	ComparisonType int           `json:"comparisonType"`
}

type FilterValue struct {
	Value     string  `json:"value"`
	ValueName *string `json:"valueName"`
}

// Label is ValueName when present, else Value.
func (v FilterValue) Label() string {
	if v.ValueName != nil && *v.ValueName != "" {
		return *v.ValueName
	}
	return v.Value
}

// AdditionalFilter is one generic filter triple sent with a product query.
type AdditionalFilter struct {
	ID             string `json:"id"`
	Value          string `json:"value"`
	ComparisonType int    `json:"comparisonType"`
}

// FindFilter returns the filter with id, or nil.
func FindFilter(filters []Filter, id string) *Filter {
	for i := range filters {
		if filters[i].ID == id {
			return &filters[i]
		}
	}
	return nil
}
