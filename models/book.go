package models

import "time"

// DefaultBookLanguage is assigned when a book is created without a language.
const DefaultBookLanguage = "Español"

type Book struct {
	ID              uint      `gorm:"primaryKey"                  json:"id"`
	Title           string    `gorm:"size:255;not null"           json:"title"`
	Author          string    `gorm:"size:255;not null"           json:"author"`
	ISBN            *string   `gorm:"size:20;uniqueIndex"         json:"isbn,omitempty"` // pointer so absent ISBNs stay NULL under the unique index
	Publisher       string    `gorm:"size:255"                    json:"publisher,omitempty"`
	PublicationYear *int      `json:"publicationYear,omitempty"`
	Genre           string    `gorm:"size:100"                    json:"genre,omitempty"`
	Language        string    `gorm:"size:50;not null"            json:"language"`
	Pages           *int      `json:"pages,omitempty"`
	Price           float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description     string    `gorm:"type:text"                   json:"description,omitempty"`
	InStock         bool      `gorm:"not null;default:true"       json:"inStock"`
	Rating          *float64  `gorm:"type:decimal(3,2)"           json:"rating,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
