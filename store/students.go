package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsponceA/api-express-tienda/models"
)

type StudentStore struct {
	db *gorm.DB
}

func NewStudentStore(db *gorm.DB) *StudentStore { return &StudentStore{db: db} }

// List returns all students, newest first, with their enrollments attached.
func (s *StudentStore) List(ctx context.Context) ([]models.Student, error) {
	var items []models.Student
	err := s.db.WithContext(ctx).
		Preload("Enrollments").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, translate(err, "list students")
	}
	return items, nil
}

func (s *StudentStore) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var st models.Student
	err := s.db.WithContext(ctx).Preload("Enrollments").First(&st, id).Error
	if err != nil {
		return nil, translate(err, "get student")
	}
	return &st, nil
}

func (s *StudentStore) Create(ctx context.Context, st *models.Student) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Create(st).Error
	return translate(err, "create student")
}

func (s *StudentStore) Update(ctx context.Context, st *models.Student) error {
	err := s.db.WithContext(ctx).Omit(clause.Associations).Save(st).Error
	return translate(err, "update student")
}

func (s *StudentStore) Delete(ctx context.Context, st *models.Student) error {
	return translate(s.db.WithContext(ctx).Delete(st).Error, "delete student")
}

// EnrollmentCount reports how many enrollments reference the student.
func (s *StudentStore) EnrollmentCount(ctx context.Context, studentID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ?", studentID).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "count enrollments")
	}
	return n, nil
}
