package pricelist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
	"github.com/prijslijst/pricelist-backend/pkg/redis"
)

type shopFinder interface {
	FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes availability lookups and the aggregated shop menu.
type Service interface {
	ShopIndex(ctx context.Context, shopID uuid.UUID) (Index, error)
	AggregateMenu(ctx context.Context, shopID uuid.UUID) (*Menu, error)
	InvalidateMenu(ctx context.Context, shopID uuid.UUID)

	ListPrices(ctx context.Context) ([]models.Price, error)
	CreatePrice(ctx context.Context, input PriceInput) (*models.Price, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, input PriceInput) (*models.Price, error)
	DeletePrice(ctx context.Context, id uuid.UUID) error

	ListShopRows(ctx context.Context, shopID uuid.UUID) ([]models.ShopToPrice, error)
	CreateRow(ctx context.Context, input RowInput) (*models.ShopToPrice, error)
	UpdateRow(ctx context.Context, id uuid.UUID, input RowInput) (*models.ShopToPrice, error)
	SetAvailability(ctx context.Context, id uuid.UUID, active bool) (*models.ShopToPrice, error)
	DeleteRow(ctx context.Context, id uuid.UUID) error
}

// PriceInput carries the mutable fields of a price template.
type PriceInput struct {
	InternalProductID string   `json:"internal_product_id" validate:"required"`
	Half              *float64 `json:"half" validate:"omitempty,gte=0"`
	One               *float64 `json:"one" validate:"omitempty,gte=0"`
	TwoFive           *float64 `json:"two_five" validate:"omitempty,gte=0"`
	Five              *float64 `json:"five" validate:"omitempty,gte=0"`
	Joint             *float64 `json:"joint" validate:"omitempty,gte=0"`
	Piece             *float64 `json:"piece" validate:"omitempty,gte=0"`
}

// RowInput carries the mutable fields of a ShopToPrice row.
type RowInput struct {
	ShopID      uuid.UUID  `json:"shop_id" validate:"required"`
	PriceID     uuid.UUID  `json:"price_id" validate:"required"`
	KindID      *uuid.UUID `json:"kind_id"`
	ProductID   *uuid.UUID `json:"product_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Active      bool       `json:"active"`
	New         bool       `json:"new"`
	UseHalf     bool       `json:"use_half"`
	UseOne      bool       `json:"use_one"`
	UseTwoFive  bool       `json:"use_two_five"`
	UseFive     bool       `json:"use_five"`
	UseJoint    bool       `json:"use_joint"`
	UsePiece    bool       `json:"use_piece"`
	GramsJoint  float64    `json:"grams_joint"`
	GramsPiece  float64    `json:"grams_piece"`
	OrderNumber int        `json:"order_number"`
}

type service struct {
	repo     Repository
	shops    shopFinder
	tx       txRunner
	cache    redis.MenuCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the price-list service.
func NewService(repo Repository, shops shopFinder, tx txRunner, cache redis.MenuCache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricelist repository required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop finder required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:     repo,
		shops:    shops,
		tx:       tx,
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}, nil
}

func (s *service) ShopIndex(ctx context.Context, shopID uuid.UUID) (Index, error) {
	rows, err := s.repo.FindShopRows(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop price rows")
	}
	return BuildIndex(rows), nil
}

func (s *service) AggregateMenu(ctx context.Context, shopID uuid.UUID) (*Menu, error) {
	if cached := s.cachedMenu(ctx, shopID); cached != nil {
		return cached, nil
	}

	if _, err := s.shops.FindShop(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}

	rows, err := s.repo.FindMenuRows(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load menu rows")
	}

	menu := &Menu{ShopID: shopID, Rows: make([]MenuRow, 0, len(rows))}
	for _, row := range rows {
		menu.Rows = append(menu.Rows, buildMenuRow(row))
	}
	sortMenuRows(menu.Rows)

	s.storeMenu(ctx, shopID, menu)
	return menu, nil
}

func (s *service) InvalidateMenu(ctx context.Context, shopID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.MenuKey(shopID.String())); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithShopID(ctx, shopID.String()), "menu cache invalidation failed")
	}
}

func (s *service) cachedMenu(ctx context.Context, shopID uuid.UUID) *Menu {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.MenuKey(shopID.String()))
	if err != nil {
		return nil
	}
	var menu Menu
	if err := json.Unmarshal([]byte(raw), &menu); err != nil {
		return nil
	}
	return &menu
}

func (s *service) storeMenu(ctx context.Context, shopID uuid.UUID, menu *Menu) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(menu)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.MenuKey(shopID.String()), payload, s.cacheTTL); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithShopID(ctx, shopID.String()), "menu cache write failed")
	}
}

func buildMenuRow(row models.ShopToPrice) MenuRow {
	out := MenuRow{
		ID:          row.ID,
		Active:      row.Active,
		New:         row.New,
		KindID:      row.KindID,
		ProductID:   row.ProductID,
		CategoryID:  row.CategoryID,
		GramsJoint:  row.GramsJoint,
		GramsPiece:  row.GramsPiece,
		OrderNumber: row.OrderNumber,
		CreatedAt:   row.CreatedAt,
		ModifiedAt:  row.ModifiedAt,
	}

	if row.Price != nil {
		out.InternalProductID = row.Price.InternalProductID
		emit := func(enabled bool, amount *float64) *float64 {
			if enabled && amount != nil {
				return amount
			}
			return nil
		}
		out.Half = emit(row.UseHalf, row.Price.Half)
		out.One = emit(row.UseOne, row.Price.One)
		out.TwoFive = emit(row.UseTwoFive, row.Price.TwoFive)
		out.Five = emit(row.UseFive, row.Price.Five)
		out.Joint = emit(row.UseJoint, row.Price.Joint)
		out.Piece = emit(row.UsePiece, row.Price.Piece)
	}

	if row.Kind != nil {
		out.KindName = &row.Kind.Name
		out.KindC = &row.Kind.C
		out.KindH = &row.Kind.H
		out.KindI = &row.Kind.I
		out.KindS = &row.Kind.S
		out.KindShortDescNL = row.Kind.ShortDescriptionNL
		out.KindShortDescEN = row.Kind.ShortDescriptionEN
		out.KindImage = row.Kind.Image1
		for _, link := range row.Kind.Strains {
			if link.Strain != nil {
				out.StrainNames = append(out.StrainNames, link.Strain.Name)
			}
		}
		for _, link := range row.Kind.Tags {
			if link.Tag != nil {
				out.TagNames = append(out.TagNames, link.Tag.Name)
			}
		}
		for _, link := range row.Kind.Flavors {
			if link.Flavor != nil {
				out.FlavorNames = append(out.FlavorNames, link.Flavor.Name)
			}
		}
		sort.Strings(out.StrainNames)
		sort.Strings(out.TagNames)
		sort.Strings(out.FlavorNames)
	}

	if row.Product != nil {
		out.ProductName = &row.Product.Name
		out.ProductShortDescNL = row.Product.ShortDescriptionNL
		out.ProductShortDescEN = row.Product.ShortDescriptionEN
		out.ProductImage = row.Product.Image1
	}

	if row.Category != nil {
		out.CategoryName = &row.Category.Name
		out.CategoryNameEN = row.Category.NameEN
		out.CategoryColor = row.Category.Color
		if row.Category.MainCategory != nil {
			out.MainCategoryName = &row.Category.MainCategory.Name
		}
	}

	return out
}

// sortMenuRows orders the menu for rendering: category name, then the best
// tier the row carries, then display name.
func sortMenuRows(rows []MenuRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := menuCategory(rows[i]), menuCategory(rows[j])
		if ci != cj {
			return ci < cj
		}
		ri, rj := bestTierRank(rows[i]), bestTierRank(rows[j])
		if ri != rj {
			return ri < rj
		}
		return menuDisplayName(rows[i]) < menuDisplayName(rows[j])
	})
}

func menuCategory(row MenuRow) string {
	if row.CategoryName == nil {
		return ""
	}
	return strings.ToLower(*row.CategoryName)
}

func menuDisplayName(row MenuRow) string {
	if row.KindName != nil {
		return strings.ToLower(*row.KindName)
	}
	if row.ProductName != nil {
		return strings.ToLower(*row.ProductName)
	}
	return ""
}

func bestTierRank(row MenuRow) int {
	best := enums.PriceTier("").Rank() + 1 // sentinel past the last rank
	check := func(amount *float64, tier enums.PriceTier) {
		if amount != nil && tier.Rank() < best {
			best = tier.Rank()
		}
	}
	check(row.Piece, enums.PriceTierPiece)
	check(row.Joint, enums.PriceTierJoint)
	check(row.One, enums.PriceTierOne)
	check(row.Five, enums.PriceTierFive)
	check(row.Half, enums.PriceTierHalf)
	check(row.TwoFive, enums.PriceTierTwoFive)
	return best
}

func (s *service) ListPrices(ctx context.Context) ([]models.Price, error) {
	prices, err := s.repo.FindPrices(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list prices")
	}
	return prices, nil
}

func (s *service) CreatePrice(ctx context.Context, input PriceInput) (*models.Price, error) {
	if strings.TrimSpace(input.InternalProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "internal_product_id required")
	}
	price := &models.Price{
		InternalProductID: input.InternalProductID,
		Half:              input.Half,
		One:               input.One,
		TwoFive:           input.TwoFive,
		Five:              input.Five,
		Joint:             input.Joint,
		Piece:             input.Piece,
	}
	created, err := s.repo.CreatePrice(ctx, price)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create price")
	}
	return created, nil
}

func (s *service) UpdatePrice(ctx context.Context, id uuid.UUID, input PriceInput) (*models.Price, error) {
	if _, err := s.repo.FindPrice(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "price not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load price")
	}
	updates := map[string]any{
		"internal_product_id": input.InternalProductID,
		"half":                input.Half,
		"one":                 input.One,
		"two_five":            input.TwoFive,
		"five":                input.Five,
		"joint":               input.Joint,
		"piece":               input.Piece,
	}
	if err := s.repo.UpdatePrice(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update price")
	}
	s.invalidateShopsUsingPrice(ctx, id)
	return s.repo.FindPrice(ctx, id)
}

func (s *service) DeletePrice(ctx context.Context, id uuid.UUID) error {
	s.invalidateShopsUsingPrice(ctx, id)
	if err := s.repo.DeletePrice(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete price")
	}
	return nil
}

func (s *service) ListShopRows(ctx context.Context, shopID uuid.UUID) ([]models.ShopToPrice, error) {
	rows, err := s.repo.FindShopRows(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shop price rows")
	}
	return rows, nil
}

func (s *service) CreateRow(ctx context.Context, input RowInput) (*models.ShopToPrice, error) {
	if err := validateRowInput(input); err != nil {
		return nil, err
	}
	row := &models.ShopToPrice{
		ShopID:      input.ShopID,
		PriceID:     input.PriceID,
		KindID:      input.KindID,
		ProductID:   input.ProductID,
		CategoryID:  input.CategoryID,
		Active:      input.Active,
		New:         input.New,
		UseHalf:     input.UseHalf,
		UseOne:      input.UseOne,
		UseTwoFive:  input.UseTwoFive,
		UseFive:     input.UseFive,
		UseJoint:    input.UseJoint,
		UsePiece:    input.UsePiece,
		GramsJoint:  input.GramsJoint,
		GramsPiece:  input.GramsPiece,
		OrderNumber: input.OrderNumber,
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateRow(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shop price row")
		}
		return repo.TouchShop(ctx, input.ShopID)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateMenu(ctx, input.ShopID)
	return row, nil
}

func (s *service) UpdateRow(ctx context.Context, id uuid.UUID, input RowInput) (*models.ShopToPrice, error) {
	if err := validateRowInput(input); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop price row not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop price row")
	}
	updates := map[string]any{
		"price_id":     input.PriceID,
		"kind_id":      input.KindID,
		"product_id":   input.ProductID,
		"category_id":  input.CategoryID,
		"active":       input.Active,
		"new":          input.New,
		"use_half":     input.UseHalf,
		"use_one":      input.UseOne,
		"use_two_five": input.UseTwoFive,
		"use_five":     input.UseFive,
		"use_joint":    input.UseJoint,
		"use_piece":    input.UsePiece,
		"grams_joint":  input.GramsJoint,
		"grams_piece":  input.GramsPiece,
		"order_number": input.OrderNumber,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateRow(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shop price row")
		}
		return repo.TouchShop(ctx, existing.ShopID)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateMenu(ctx, existing.ShopID)
	return s.repo.FindRow(ctx, id)
}

func (s *service) SetAvailability(ctx context.Context, id uuid.UUID, active bool) (*models.ShopToPrice, error) {
	existing, err := s.repo.FindRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop price row not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop price row")
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateRow(ctx, id, map[string]any{"active": active}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update availability")
		}
		return repo.TouchShop(ctx, existing.ShopID)
	})
	if err != nil {
		return nil, err
	}
	s.InvalidateMenu(ctx, existing.ShopID)
	return s.repo.FindRow(ctx, id)
}

func (s *service) DeleteRow(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.FindRow(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "shop price row not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop price row")
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteRow(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete shop price row")
		}
		return repo.TouchShop(ctx, existing.ShopID)
	})
	if err != nil {
		return err
	}
	s.InvalidateMenu(ctx, existing.ShopID)
	return nil
}

func validateRowInput(input RowInput) error {
	if input.ShopID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop_id required")
	}
	if input.PriceID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "price_id required")
	}
	hasKind := input.KindID != nil && *input.KindID != uuid.Nil
	hasProduct := input.ProductID != nil && *input.ProductID != uuid.Nil
	if hasKind == hasProduct {
		return pkgerrors.New(pkgerrors.CodeValidation, "exactly one of kind_id or product_id is required")
	}
	return nil
}

// invalidateShopsUsingPrice drops cached menus for every shop that references
// the template.
func (s *service) invalidateShopsUsingPrice(ctx context.Context, priceID uuid.UUID) {
	if s.cache == nil {
		return
	}
	shopIDs, err := s.repo.FindShopIDsForPrice(ctx, priceID)
	if err != nil {
		return
	}
	for _, shopID := range shopIDs {
		s.InvalidateMenu(ctx, shopID)
	}
}
