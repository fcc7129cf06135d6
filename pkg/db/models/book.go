package models

import (
	"time"

	"gorm.io/gorm"
)

// Book is a catalog entry keyed by its 13-character ISBN.
type Book struct {
	ISBN        string         `gorm:"column:isbn;type:char(13);primaryKey"`
	Title       string         `gorm:"column:title;not null"`
	Author      string         `gorm:"column:author;not null"`
	Publisher   string         `gorm:"column:publisher;not null"`
	Category    string         `gorm:"column:category;not null"`
	Description string         `gorm:"column:description;not null;default:''"`
	Stock       int            `gorm:"column:stock;not null;default:0"`
	Cover       *string        `gorm:"column:cover"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}
