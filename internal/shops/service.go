package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/db"
	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
)

type menuAggregator interface {
	AggregateMenu(ctx context.Context, shopID uuid.UUID) (*pricelist.Menu, error)
	InvalidateMenu(ctx context.Context, shopID uuid.UUID)
}

// Service exposes shop management and the combined shop-with-menu view.
type Service interface {
	ListShops(ctx context.Context) ([]models.Shop, error)
	FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*ShopDetail, error)
	GetLastModified(ctx context.Context, id uuid.UUID) (*LastModified, error)
	CreateShop(ctx context.Context, input ShopInput) (*models.Shop, error)
	UpdateShop(ctx context.Context, id uuid.UUID, input ShopInput) (*models.Shop, error)
	DeleteShop(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	menus menuAggregator
	logg  *logger.Logger
}

// NewService builds the shop service.
func NewService(repo Repository, menus menuAggregator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo, menus: menus, logg: logg}, nil
}

func (s *service) ListShops(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.repo.ListShops(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shops")
	}
	return shops, nil
}

func (s *service) FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindShop(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}
	return shop, nil
}

func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (*ShopDetail, error) {
	shop, err := s.FindShop(ctx, id)
	if err != nil {
		return nil, err
	}
	menu, err := s.menus.AggregateMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ShopDetail{Shop: shop, Menu: menu}, nil
}

func (s *service) GetLastModified(ctx context.Context, id uuid.UUID) (*LastModified, error) {
	shop, err := s.FindShop(ctx, id)
	if err != nil {
		return nil, err
	}
	return &LastModified{ShopID: shop.ID.String(), LastModifiedAt: shop.LastModifiedAt}, nil
}

func (s *service) CreateShop(ctx context.Context, input ShopInput) (*models.Shop, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	shop := &models.Shop{
		Name:        input.Name,
		Description: input.Description,
		AllowedIPs:  pq.StringArray(input.AllowedIPs),
	}
	created, err := s.repo.CreateShop(ctx, shop)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "shop name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop")
	}
	return created, nil
}

func (s *service) UpdateShop(ctx context.Context, id uuid.UUID, input ShopInput) (*models.Shop, error) {
	if _, err := s.FindShop(ctx, id); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	updates := map[string]any{
		"name":        input.Name,
		"description": input.Description,
		"allowed_ips": pq.StringArray(input.AllowedIPs),
	}
	if err := s.repo.UpdateShop(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "shop name already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop")
	}
	return s.FindShop(ctx, id)
}

func (s *service) DeleteShop(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindShop(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteShop(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop")
	}
	if s.menus != nil {
		s.menus.InvalidateMenu(ctx, id)
	}
	return nil
}
