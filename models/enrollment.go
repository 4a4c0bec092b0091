package models

import "time"

// Enrollment statuses.
const (
	EnrollmentStatusEnrolled   = "enrolled"
	EnrollmentStatusCompleted  = "completed"
	EnrollmentStatusDropped    = "dropped"
	EnrollmentStatusFailed     = "failed"
	EnrollmentStatusInProgress = "in-progress"
)

// Enrollment links a student to a course within a semester. A student can
// hold at most one enrollment per (course, semester, academic year).
type Enrollment struct {
	ID             uint            `gorm:"primaryKey"                                     json:"id"`
	StudentID      uint            `gorm:"not null;uniqueIndex:uniq_enrollment_course"    json:"studentId"`
	Course         string          `gorm:"size:255;not null;uniqueIndex:uniq_enrollment_course" json:"course"`
	CourseCode     string          `gorm:"size:50"                                        json:"courseCode,omitempty"`
	Semester       string          `gorm:"size:20;not null;uniqueIndex:uniq_enrollment_course"  json:"semester"`
	AcademicYear   string          `gorm:"size:10;not null;uniqueIndex:uniq_enrollment_course"  json:"academicYear"`
	EnrollmentDate *time.Time      `gorm:"type:date;not null"                             json:"enrollmentDate"`
	Status         string          `gorm:"size:20;not null"                               json:"status"`
	Grade          *float64        `gorm:"type:decimal(5,2)"                              json:"grade,omitempty"`
	Credits        *int            `json:"credits,omitempty"`
	Notes          string          `gorm:"type:text"                                      json:"notes,omitempty"`
	Student        *StudentSummary `gorm:"foreignKey:StudentID"                           json:"student,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
