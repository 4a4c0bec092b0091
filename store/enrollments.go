package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsponceA/api-express-tienda/models"
)

type EnrollmentStore struct {
	db *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore { return &EnrollmentStore{db: db} }

// List returns all enrollments, newest first, each carrying the projected
// student summary.
func (s *EnrollmentStore) List(ctx context.Context) ([]models.Enrollment, error) {
	var items []models.Enrollment
	err := s.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list enrollments")
	}
	return items, nil
}

func (s *EnrollmentStore) GetByID(ctx context.Context, id uint) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.db.WithContext(ctx).Preload("Student").First(&e, id).Error
	if err != nil {
		return nil, translate(err, "get enrollment")
	}
	return &e, nil
}

// ListByStudent returns the student's enrollments, newest first.
func (s *EnrollmentStore) ListByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	var items []models.Enrollment
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list enrollments by student")
	}
	return items, nil
}

// FindTuple looks up the enrollment matching the unique
// (student, course, semester, academic year) combination.
// Returns ErrNotFound when the tuple is free.
func (s *EnrollmentStore) FindTuple(ctx context.Context, studentID uint, course, semester, academicYear string) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND course = ? AND semester = ? AND academic_year = ?",
			studentID, course, semester, academicYear).
		First(&e).Error
	if err != nil {
		return nil, translate(err, "find enrollment tuple")
	}
	return &e, nil
}

func (s *EnrollmentStore) Create(ctx context.Context, e *models.Enrollment) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
	return translate(err, "create enrollment")
}

func (s *EnrollmentStore) Update(ctx context.Context, e *models.Enrollment) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
	return translate(err, "update enrollment")
}

func (s *EnrollmentStore) Delete(ctx context.Context, e *models.Enrollment) error {
	return translate(s.db.WithContext(ctx).Delete(e).Error, "delete enrollment")
}
