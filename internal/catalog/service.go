package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type menuInvalidator interface {
	InvalidateMenu(ctx context.Context, shopID uuid.UUID)
}

// Service exposes catalog management for kinds, products, taxonomy and
// categories. Every mutation that can change a kind's completeness recomputes
// the flag through the same predicate.
type Service interface {
	ListKinds(ctx context.Context) ([]models.Kind, error)
	GetKind(ctx context.Context, id uuid.UUID) (*models.Kind, error)
	CreateKind(ctx context.Context, input KindInput) (*models.Kind, error)
	UpdateKind(ctx context.Context, id uuid.UUID, input KindInput) (*models.Kind, error)
	DeleteKind(ctx context.Context, id uuid.UUID) error
	ApproveKind(ctx context.Context, id, actorID uuid.UUID) (*models.Kind, error)
	SetKindImage(ctx context.Context, id uuid.UUID, input ImageInput) (*models.Kind, error)

	AttachTag(ctx context.Context, kindID uuid.UUID, input TagAttachment) (*models.Kind, error)
	DetachTag(ctx context.Context, kindID, tagID uuid.UUID) (*models.Kind, error)
	AttachFlavor(ctx context.Context, kindID, flavorID uuid.UUID) (*models.Kind, error)
	DetachFlavor(ctx context.Context, kindID, flavorID uuid.UUID) (*models.Kind, error)
	AttachStrain(ctx context.Context, kindID, strainID uuid.UUID) (*models.Kind, error)
	DetachStrain(ctx context.Context, kindID, strainID uuid.UUID) (*models.Kind, error)

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	SetProductImage(ctx context.Context, id uuid.UUID, input ImageInput) (*models.Product, error)

	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name string) (*models.Tag, error)
	ListFlavors(ctx context.Context) ([]models.Flavor, error)
	CreateFlavor(ctx context.Context, name string, icon, color *string) (*models.Flavor, error)
	ListStrains(ctx context.Context) ([]models.Strain, error)
	CreateStrain(ctx context.Context, name string) (*models.Strain, error)

	ListCategories(ctx context.Context, shopID uuid.UUID) ([]models.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
	menu menuInvalidator
	logg *logger.Logger
}

// NewService builds the catalog service.
func NewService(repo Repository, tx txRunner, menu menuInvalidator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, menu: menu, logg: logg}, nil
}

func (s *service) ListKinds(ctx context.Context) ([]models.Kind, error) {
	kinds, err := s.repo.ListKinds(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list kinds")
	}
	return kinds, nil
}

func (s *service) GetKind(ctx context.Context, id uuid.UUID) (*models.Kind, error) {
	kind, err := s.repo.FindKind(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "kind not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load kind")
	}
	return kind, nil
}

func (s *service) CreateKind(ctx context.Context, input KindInput) (*models.Kind, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	kind := &models.Kind{
		Name:               input.Name,
		ShortDescriptionNL: input.ShortDescriptionNL,
		DescriptionNL:      input.DescriptionNL,
		ShortDescriptionEN: input.ShortDescriptionEN,
		DescriptionEN:      input.DescriptionEN,
		C:                  input.C,
		H:                  input.H,
		I:                  input.I,
		S:                  input.S,
	}
	created, err := s.repo.CreateKind(ctx, kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create kind")
	}
	return created, nil
}

func (s *service) UpdateKind(ctx context.Context, id uuid.UUID, input KindInput) (*models.Kind, error) {
	if _, err := s.GetKind(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"name":                 input.Name,
		"short_description_nl": input.ShortDescriptionNL,
		"description_nl":       input.DescriptionNL,
		"short_description_en": input.ShortDescriptionEN,
		"description_en":       input.DescriptionEN,
		"c":                    input.C,
		"h":                    input.H,
		"i":                    input.I,
		"s":                    input.S,
	}
	if err := s.repo.UpdateKind(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update kind")
	}
	return s.recomputeKind(ctx, id)
}

func (s *service) DeleteKind(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetKind(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteKind(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete kind")
	}
	return nil
}

func (s *service) ApproveKind(ctx context.Context, id, actorID uuid.UUID) (*models.Kind, error) {
	if _, err := s.GetKind(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"approved":    true,
		"approved_at": time.Now().UTC(),
	}
	if actorID != uuid.Nil {
		updates["approved_by"] = actorID
	}
	if err := s.repo.UpdateKind(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve kind")
	}
	return s.GetKind(ctx, id)
}

func (s *service) SetKindImage(ctx context.Context, id uuid.UUID, input ImageInput) (*models.Kind, error) {
	column, err := imageColumn(input.Slot)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetKind(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateKind(ctx, id, map[string]any{column: input.URL}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set kind image")
	}
	return s.recomputeKind(ctx, id)
}

func (s *service) AttachTag(ctx context.Context, kindID uuid.UUID, input TagAttachment) (*models.Kind, error) {
	if input.TagID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tag_id required")
	}
	if _, err := s.GetKind(ctx, kindID); err != nil {
		return nil, err
	}
	link := &models.KindToTag{ID: uuid.New(), KindID: kindID, TagID: input.TagID, Amount: input.Amount}
	if err := s.repo.AttachTag(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "attach tag")
	}
	return s.recomputeKind(ctx, kindID)
}

func (s *service) DetachTag(ctx context.Context, kindID, tagID uuid.UUID) (*models.Kind, error) {
	if err := s.repo.DetachTag(ctx, kindID, tagID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detach tag")
	}
	return s.recomputeKind(ctx, kindID)
}

func (s *service) AttachFlavor(ctx context.Context, kindID, flavorID uuid.UUID) (*models.Kind, error) {
	if flavorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "flavor_id required")
	}
	if _, err := s.GetKind(ctx, kindID); err != nil {
		return nil, err
	}
	link := &models.KindToFlavor{ID: uuid.New(), KindID: kindID, FlavorID: flavorID}
	if err := s.repo.AttachFlavor(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "attach flavor")
	}
	return s.recomputeKind(ctx, kindID)
}

func (s *service) DetachFlavor(ctx context.Context, kindID, flavorID uuid.UUID) (*models.Kind, error) {
	if err := s.repo.DetachFlavor(ctx, kindID, flavorID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detach flavor")
	}
	return s.recomputeKind(ctx, kindID)
}

func (s *service) AttachStrain(ctx context.Context, kindID, strainID uuid.UUID) (*models.Kind, error) {
	if strainID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "strain_id required")
	}
	if _, err := s.GetKind(ctx, kindID); err != nil {
		return nil, err
	}
	link := &models.KindToStrain{ID: uuid.New(), KindID: kindID, StrainID: strainID}
	if err := s.repo.AttachStrain(ctx, link); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "attach strain")
	}
	return s.recomputeKind(ctx, kindID)
}

func (s *service) DetachStrain(ctx context.Context, kindID, strainID uuid.UUID) (*models.Kind, error) {
	if err := s.repo.DetachStrain(ctx, kindID, strainID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "detach strain")
	}
	return s.recomputeKind(ctx, kindID)
}

// recomputeKind reloads the kind with its associations and persists the
// completeness flag when it changed.
func (s *service) recomputeKind(ctx context.Context, kindID uuid.UUID) (*models.Kind, error) {
	kind, err := s.GetKind(ctx, kindID)
	if err != nil {
		return nil, err
	}
	complete := KindComplete(kind)
	if complete == kind.Complete {
		return kind, nil
	}
	if err := s.repo.UpdateKind(ctx, kindID, map[string]any{"complete": complete}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update kind completeness")
	}
	kind.Complete = complete
	return kind, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	product := &models.Product{
		Name:               input.Name,
		ShortDescriptionNL: input.ShortDescriptionNL,
		DescriptionNL:      input.DescriptionNL,
		ShortDescriptionEN: input.ShortDescriptionEN,
		DescriptionEN:      input.DescriptionEN,
	}
	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"name":                 input.Name,
		"short_description_nl": input.ShortDescriptionNL,
		"description_nl":       input.DescriptionNL,
		"short_description_en": input.ShortDescriptionEN,
		"description_en":       input.DescriptionEN,
	}
	if err := s.repo.UpdateProduct(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.recomputeProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) SetProductImage(ctx context.Context, id uuid.UUID, input ImageInput) (*models.Product, error) {
	column, err := imageColumn(input.Slot)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProduct(ctx, id, map[string]any{column: input.URL}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set product image")
	}
	return s.recomputeProduct(ctx, id)
}

func (s *service) recomputeProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	complete := ProductComplete(product)
	if complete == product.Complete {
		return product, nil
	}
	if err := s.repo.UpdateProduct(ctx, id, map[string]any{"complete": complete}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product completeness")
	}
	product.Complete = complete
	return product, nil
}

func (s *service) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tags")
	}
	return tags, nil
}

func (s *service) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	tag, err := s.repo.CreateTag(ctx, &models.Tag{Name: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "create tag")
	}
	return tag, nil
}

func (s *service) ListFlavors(ctx context.Context) ([]models.Flavor, error) {
	flavors, err := s.repo.ListFlavors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list flavors")
	}
	return flavors, nil
}

func (s *service) CreateFlavor(ctx context.Context, name string, icon, color *string) (*models.Flavor, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	flavor, err := s.repo.CreateFlavor(ctx, &models.Flavor{Name: name, Icon: icon, Color: color})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "create flavor")
	}
	return flavor, nil
}

func (s *service) ListStrains(ctx context.Context) ([]models.Strain, error) {
	strains, err := s.repo.ListStrains(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list strains")
	}
	return strains, nil
}

func (s *service) CreateStrain(ctx context.Context, name string) (*models.Strain, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	strain, err := s.repo.CreateStrain(ctx, &models.Strain{Name: name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "create strain")
	}
	return strain, nil
}

func (s *service) ListCategories(ctx context.Context, shopID uuid.UUID) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	category := &models.Category{
		ShopID:         input.ShopID,
		MainCategoryID: input.MainCategoryID,
		Name:           input.Name,
		NameEN:         input.NameEN,
		Description:    input.Description,
		Icon:           input.Icon,
		Color:          input.Color,
		Cannabis:       input.Cannabis,
		OrderNumber:    input.OrderNumber,
	}
	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	s.invalidate(ctx, input.ShopID)
	return created, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	existing, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	updates := map[string]any{
		"main_category_id": input.MainCategoryID,
		"name":             input.Name,
		"name_en":          input.NameEN,
		"description":      input.Description,
		"icon":             input.Icon,
		"color":            input.Color,
		"cannabis":         input.Cannabis,
		"order_number":     input.OrderNumber,
	}
	if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	s.invalidate(ctx, existing.ShopID)
	return s.repo.FindCategory(ctx, id)
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	s.invalidate(ctx, existing.ShopID)
	return nil
}

func (s *service) invalidate(ctx context.Context, shopID uuid.UUID) {
	if s.menu != nil {
		s.menu.InvalidateMenu(ctx, shopID)
	}
}

func imageColumn(slot int) (string, error) {
	if slot < 1 || slot > 6 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid image slot %d", slot))
	}
	return fmt.Sprintf("image_%d", slot), nil
}
