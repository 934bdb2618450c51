package models

import (
	"errors"

	"gorm.io/gorm"
)

type CategoryName string

const (
	CategoryWeb    CategoryName = "web"
	CategoryMobile CategoryName = "mobile"
	CategoryData   CategoryName = "data"
	CategoryDesign CategoryName = "design"
	CategoryAI     CategoryName = "ai"
	CategoryOther  CategoryName = "other"
)

func (n CategoryName) Valid() bool {
	switch n {
	case CategoryWeb, CategoryMobile, CategoryData, CategoryDesign, CategoryAI, CategoryOther:
		return true
	}
	return false
}

var ErrInvalidCategoryName = errors.New("invalid category name")

// ProjectCategory names are drawn from a fixed set, so the unique index
// means each enum value is used at most once.
type ProjectCategory struct {
	gorm.Model

	Name        CategoryName `gorm:"uniqueIndex;not null;size:50"`
	Description string
	Slug        string `gorm:"uniqueIndex;not null;size:100"`

	Projects []Project `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func (c *ProjectCategory) BeforeSave(tx *gorm.DB) error {
	if !c.Name.Valid() {
		return ErrInvalidCategoryName
	}
	if c.Slug == "" {
		c.Slug = Slugify(string(c.Name))
	}
	return nil
}
