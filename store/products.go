package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jsponceA/api-express-tienda/models"
)

type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore { return &ProductStore{db: db} }

func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, translate(err, "list products")
	}
	return items, nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, "get product")
	}
	return &p, nil
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error, "create product")
}

func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Save(p).Error, "update product")
}

func (s *ProductStore) Delete(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Delete(p).Error, "delete product")
}
