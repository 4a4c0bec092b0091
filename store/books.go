package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jsponceA/api-express-tienda/models"
)

type BookStore struct {
	db *gorm.DB
}

func NewBookStore(db *gorm.DB) *BookStore { return &BookStore{db: db} }

func (s *BookStore) List(ctx context.Context) ([]models.Book, error) {
	var items []models.Book
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, translate(err, "list books")
	}
	return items, nil
}

func (s *BookStore) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var b models.Book
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, translate(err, "get book")
	}
	return &b, nil
}

func (s *BookStore) Create(ctx context.Context, b *models.Book) error {
	return translate(s.db.WithContext(ctx).Create(b).Error, "create book")
}

func (s *BookStore) Update(ctx context.Context, b *models.Book) error {
	return translate(s.db.WithContext(ctx).Save(b).Error, "update book")
}

func (s *BookStore) Delete(ctx context.Context, b *models.Book) error {
	return translate(s.db.WithContext(ctx).Delete(b).Error, "delete book")
}
