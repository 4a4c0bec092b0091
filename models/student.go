package models

import "time"

// Student statuses.
const (
	StudentStatusActive    = "active"
	StudentStatusInactive  = "inactive"
	StudentStatusGraduated = "graduated"
	StudentStatusSuspended = "suspended"
)

type Student struct {
	ID               uint         `gorm:"primaryKey"                    json:"id"`
	StudentCode      string       `gorm:"size:20;uniqueIndex;not null"  json:"studentCode"`
	FirstName        string       `gorm:"size:100;not null"             json:"firstName"`
	LastName         string       `gorm:"size:100;not null"             json:"lastName"`
	Email            string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone            string       `gorm:"size:20"                       json:"phone,omitempty"`
	DateOfBirth      *time.Time   `gorm:"type:date"                     json:"dateOfBirth,omitempty"`
	Address          string       `gorm:"type:text"                     json:"address,omitempty"`
	EnrollmentDate   *time.Time   `gorm:"type:date;not null"            json:"enrollmentDate"`
	Status           string       `gorm:"size:20;not null"              json:"status"`
	EmergencyContact string       `gorm:"size:100"                      json:"emergencyContact,omitempty"`
	EmergencyPhone   string       `gorm:"size:20"                       json:"emergencyPhone,omitempty"`
	Image            string       `gorm:"size:500"                      json:"image,omitempty"`
	Enrollments      []Enrollment `gorm:"foreignKey:StudentID"          json:"enrollments,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// StudentSummary is the projected subset of a student attached to
// enrollment responses.
type StudentSummary struct {
	ID          uint   `json:"id"`
	StudentCode string `json:"studentCode"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
}

func (StudentSummary) TableName() string { return "students" }
