package repository

import (
	"lattelane/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

// ListCategories returns categories with their available items, in
// display order.
func (r *MenuRepository) ListCategories() ([]entity.MenuCategory, error) {
	var cats []entity.MenuCategory
	err := r.DB.Order("sort_order, id").
		Preload("Items", "available = ?", true).
		Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) FindItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ItemBasics fetches only what checkout and cart pricing need.
func (r *MenuRepository) ItemBasics(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, name, price, available").First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) CreateItem(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) UpdateItem(m *entity.MenuItem) error {
	return r.DB.Save(m).Error
}

func (r *MenuRepository) DeleteItem(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

func (r *MenuRepository) CreateCategory(c *entity.MenuCategory) error {
	return r.DB.Create(c).Error
}
