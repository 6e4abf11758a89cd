package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindKind(ctx context.Context, id uuid.UUID) (*models.Kind, error) {
	var kind models.Kind
	err := r.db.WithContext(ctx).
		Preload("Tags.Tag").
		Preload("Flavors.Flavor").
		Preload("Strains.Strain").
		Where("id = ?", id).
		First(&kind).Error
	if err != nil {
		return nil, err
	}
	return &kind, nil
}

func (r *repository) ListKinds(ctx context.Context) ([]models.Kind, error) {
	var kinds []models.Kind
	err := r.db.WithContext(ctx).
		Preload("Tags.Tag").
		Preload("Flavors.Flavor").
		Preload("Strains.Strain").
		Order("name ASC").
		Find(&kinds).Error
	if err != nil {
		return nil, err
	}
	return kinds, nil
}

func (r *repository) CreateKind(ctx context.Context, kind *models.Kind) (*models.Kind, error) {
	if kind.ID == uuid.Nil {
		kind.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(kind).Error; err != nil {
		return nil, err
	}
	return kind, nil
}

func (r *repository) UpdateKind(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Kind{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteKind(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Kind{}).Error
}

func (r *repository) AttachTag(ctx context.Context, link *models.KindToTag) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *repository) DetachTag(ctx context.Context, kindID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("kind_id = ? AND tag_id = ?", kindID, tagID).
		Delete(&models.KindToTag{}).Error
}

func (r *repository) AttachFlavor(ctx context.Context, link *models.KindToFlavor) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *repository) DetachFlavor(ctx context.Context, kindID, flavorID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("kind_id = ? AND flavor_id = ?", kindID, flavorID).
		Delete(&models.KindToFlavor{}).Error
}

func (r *repository) AttachStrain(ctx context.Context, link *models.KindToStrain) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *repository) DetachStrain(ctx context.Context, kindID, strainID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("kind_id = ? AND strain_id = ?", kindID, strainID).
		Delete(&models.KindToStrain{}).Error
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Product{}).Error
}

func (r *repository) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *repository) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *repository) ListFlavors(ctx context.Context) ([]models.Flavor, error) {
	var flavors []models.Flavor
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&flavors).Error; err != nil {
		return nil, err
	}
	return flavors, nil
}

func (r *repository) CreateFlavor(ctx context.Context, flavor *models.Flavor) (*models.Flavor, error) {
	if flavor.ID == uuid.Nil {
		flavor.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(flavor).Error; err != nil {
		return nil, err
	}
	return flavor, nil
}

func (r *repository) ListStrains(ctx context.Context) ([]models.Strain, error) {
	var strains []models.Strain
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&strains).Error; err != nil {
		return nil, err
	}
	return strains, nil
}

func (r *repository) CreateStrain(ctx context.Context, strain *models.Strain) (*models.Strain, error) {
	if strain.ID == uuid.Nil {
		strain.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(strain).Error; err != nil {
		return nil, err
	}
	return strain, nil
}

func (r *repository) ListCategories(ctx context.Context, shopID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Preload("MainCategory").
		Where("shop_id = ?", shopID).
		Order("order_number ASC").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Preload("MainCategory").
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Category{}).Error
}
