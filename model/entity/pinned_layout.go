package entity

import (
	"time"

	"gorm.io/datatypes"
)

// PinnedLayout is the saved pinned-products grid of one collection.
type PinnedLayout struct {
	CollectionID int            `gorm:"column:collection_id;primaryKey;autoIncrement:false"`
	Layout       string         `gorm:"column:layout;type:varchar(8);not null"`
	Products     datatypes.JSON `gorm:"column:products;not null"`
	SavedBy      string         `gorm:"column:saved_by;type:varchar(128)"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (PinnedLayout) TableName() string {
	return "pinned_layout"
}
