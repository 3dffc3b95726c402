package pinned

import (
	"encoding/json"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dashboard.GO/model/catalog"
	entity "dashboard.GO/model/entity"
)

type PinnedRepository struct {
	db *gorm.DB
}

func NewPinnedRepository(db *gorm.DB) *PinnedRepository {
	return &PinnedRepository{db: db}
}

// Save upserts the pinned grid of a collection.
func (r *PinnedRepository) Save(collectionID int, layout string, products []catalog.Product, savedBy string) error {
	b, err := json.Marshal(products)
	if err != nil {
		return err
	}
	row := entity.PinnedLayout{
		CollectionID: collectionID,
		Layout:       layout,
		Products:     b,
		SavedBy:      savedBy,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"layout", "products", "saved_by", "updated_at"}),
	}).Create(&row).Error
}

// Find returns the saved layout of a collection, or gorm.ErrRecordNotFound.
func (r *PinnedRepository) Find(collectionID int) (*entity.PinnedLayout, []catalog.Product, error) {
	var row entity.PinnedLayout
	if err := r.db.Where("collection_id = ?", collectionID).First(&row).Error; err != nil {
		return nil, nil, err
	}
	products, err := Decode(row)
	if err != nil {
		return nil, nil, err
	}
	return &row, products, nil
}

// All returns every saved layout, newest first.
func (r *PinnedRepository) All() ([]entity.PinnedLayout, error) {
	var rows []entity.PinnedLayout
	err := r.db.Order("updated_at DESC").Find(&rows).Error
	return rows, err
}

// Decode unpacks the stored product list.
func Decode(row entity.PinnedLayout) ([]catalog.Product, error) {
	var products []catalog.Product
	if len(row.Products) == 0 {
		return products, nil
	}
	if err := json.Unmarshal(row.Products, &products); err != nil {
		return nil, err
	}
	return products, nil
}
