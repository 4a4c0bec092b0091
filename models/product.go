package models

import "time"

type Product struct {
	ID          uint      `gorm:"primaryKey"                  json:"id"`
	Name        string    `gorm:"size:255;not null"           json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `gorm:"type:text"                   json:"description,omitempty"`
	InStock     bool      `gorm:"not null;default:true"       json:"inStock"`
	Image       string    `gorm:"size:500"                    json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
