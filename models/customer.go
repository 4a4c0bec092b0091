package models

import "time"

// Customer statuses.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
	CustomerStatusBlocked  = "blocked"
)

type Customer struct {
	ID          uint       `gorm:"primaryKey"                    json:"id"`
	FirstName   string     `gorm:"size:100;not null"             json:"firstName"`
	LastName    string     `gorm:"size:100;not null"             json:"lastName"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone       string     `gorm:"size:20"                       json:"phone,omitempty"`
	Address     string     `gorm:"type:text"                     json:"address,omitempty"`
	City        string     `gorm:"size:100"                      json:"city,omitempty"`
	Country     string     `gorm:"size:100"                      json:"country,omitempty"`
	PostalCode  string     `gorm:"size:20"                       json:"postalCode,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date"                     json:"dateOfBirth,omitempty"`
	Status      string     `gorm:"size:20;not null"              json:"status"`
	Image       string     `gorm:"size:500"                      json:"image,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
