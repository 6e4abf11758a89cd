package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
)

// Repository defines persistence operations for the catalog tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindKind(ctx context.Context, id uuid.UUID) (*models.Kind, error)
	ListKinds(ctx context.Context) ([]models.Kind, error)
	CreateKind(ctx context.Context, kind *models.Kind) (*models.Kind, error)
	UpdateKind(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteKind(ctx context.Context, id uuid.UUID) error

	AttachTag(ctx context.Context, link *models.KindToTag) error
	DetachTag(ctx context.Context, kindID, tagID uuid.UUID) error
	AttachFlavor(ctx context.Context, link *models.KindToFlavor) error
	DetachFlavor(ctx context.Context, kindID, flavorID uuid.UUID) error
	AttachStrain(ctx context.Context, link *models.KindToStrain) error
	DetachStrain(ctx context.Context, kindID, strainID uuid.UUID) error

	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	ListFlavors(ctx context.Context) ([]models.Flavor, error)
	CreateFlavor(ctx context.Context, flavor *models.Flavor) (*models.Flavor, error)
	ListStrains(ctx context.Context) ([]models.Strain, error)
	CreateStrain(ctx context.Context, strain *models.Strain) (*models.Strain, error)

	ListCategories(ctx context.Context, shopID uuid.UUID) ([]models.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
