package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name      string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sortOrder"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}
