package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/jsponceA/api-express-tienda/models"
)

type CustomerStore struct {
	db *gorm.DB
}

func NewCustomerStore(db *gorm.DB) *CustomerStore { return &CustomerStore{db: db} }

func (s *CustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	var items []models.Customer
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, translate(err, "list customers")
	}
	return items, nil
}

func (s *CustomerStore) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var cu models.Customer
	if err := s.db.WithContext(ctx).First(&cu, id).Error; err != nil {
		return nil, translate(err, "get customer")
	}
	return &cu, nil
}

func (s *CustomerStore) Create(ctx context.Context, cu *models.Customer) error {
	return translate(s.db.WithContext(ctx).Create(cu).Error, "create customer")
}

func (s *CustomerStore) Update(ctx context.Context, cu *models.Customer) error {
	return translate(s.db.WithContext(ctx).Save(cu).Error, "update customer")
}

func (s *CustomerStore) Delete(ctx context.Context, cu *models.Customer) error {
	return translate(s.db.WithContext(ctx).Delete(cu).Error, "delete customer")
}
