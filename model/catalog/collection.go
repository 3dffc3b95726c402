package catalog

import "fmt"

// CollectionPage is the GetAll response.
type CollectionPage struct {
	Meta Meta         `json:"meta"`
	Data []Collection `json:"data"`
}

type Meta struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

type Collection struct {
	ID             int               `json:"id"`
	Filters        CollectionFilters `json:"filters"`
	Type           int               `json:"type"`
	Info           CollectionInfo    `json:"info"`
	SalesChannelID int               `json:"salesChannelId"`
}

type CollectionFilters struct {
	UseOrLogic bool                  `json:"useOrLogic"`
	Filters    []CollectionCriterion `json:"filters"`
}

// CollectionCriterion is one saved condition of a collection.
type CollectionCriterion struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Value          string  `json:"value"`
	ValueName      string  `json:"valueName"`
	Currency       *string `json:"currency"`
	ComparisonType int     `json:"comparisonType"`
}

type CollectionInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	LangCode    string `json:"langCode"`
}

// CollectionRow is the list-view projection of a Collection.
type CollectionRow struct {
	ID                int      `json:"id"`
	Title             string   `json:"title"`
	ProductConditions []string `json:"productConditions"`
	SalesChannel      string   `json:"salesChannel"`
}

func (c Collection) Row() CollectionRow {
	conds := make([]string, 0, len(c.Filters.Filters))
	for _, f := range c.Filters.Filters {
		conds = append(conds, fmt.Sprintf("Ürün %s bilgisi şuna eşit: %s", f.Title, f.ValueName))
	}
	return CollectionRow{
		ID:                c.ID,
		Title:             c.Info.Name,
		ProductConditions: conds,
		SalesChannel:      fmt.Sprintf("Satış Kanalı - %d", c.SalesChannelID),
	}
}
