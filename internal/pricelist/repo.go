package pricelist

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a price-list repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindShopRows(ctx context.Context, shopID uuid.UUID) ([]models.ShopToPrice, error) {
	var rows []models.ShopToPrice
	err := r.db.WithContext(ctx).
		Preload("Price").
		Where("shop_id = ?", shopID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindMenuRows(ctx context.Context, shopID uuid.UUID) ([]models.ShopToPrice, error) {
	var rows []models.ShopToPrice
	err := r.db.WithContext(ctx).
		Preload("Price").
		Preload("Kind").
		Preload("Kind.Tags.Tag").
		Preload("Kind.Flavors.Flavor").
		Preload("Kind.Strains.Strain").
		Preload("Product").
		Preload("Category").
		Preload("Category.MainCategory").
		Where("shop_id = ?", shopID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindRow(ctx context.Context, id uuid.UUID) (*models.ShopToPrice, error) {
	var row models.ShopToPrice
	err := r.db.WithContext(ctx).
		Preload("Price").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) CreateRow(ctx context.Context, row *models.ShopToPrice) (*models.ShopToPrice, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) UpdateRow(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.ShopToPrice{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteRow(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ShopToPrice{}).Error
}

func (r *repository) FindPrices(ctx context.Context) ([]models.Price, error) {
	var prices []models.Price
	err := r.db.WithContext(ctx).
		Order("internal_product_id ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *repository) FindPrice(ctx context.Context, id uuid.UUID) (*models.Price, error) {
	var price models.Price
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&price).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

func (r *repository) CreatePrice(ctx context.Context, price *models.Price) (*models.Price, error) {
	if price.ID == uuid.Nil {
		price.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(price).Error; err != nil {
		return nil, err
	}
	return price, nil
}

func (r *repository) UpdatePrice(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Price{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeletePrice(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Price{}).Error
}

func (r *repository) FindShopIDsForPrice(ctx context.Context, priceID uuid.UUID) ([]uuid.UUID, error) {
	var shopIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.ShopToPrice{}).
		Distinct("shop_id").
		Where("price_id = ?", priceID).
		Pluck("shop_id", &shopIDs).Error
	if err != nil {
		return nil, err
	}
	return shopIDs, nil
}

func (r *repository) TouchShop(ctx context.Context, shopID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Shop{}).
		Where("id = ?", shopID).
		Update("last_modified_at", time.Now().UTC()).Error
}
