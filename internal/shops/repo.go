package shops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shop repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *repository) ListShops(ctx context.Context) ([]models.Shop, error) {
	var shops []models.Shop
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *repository) CreateShop(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *repository) UpdateShop(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Shop{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteShop(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Shop{}).Error
}
