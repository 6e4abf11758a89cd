package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
)

// TableInput carries the editable fields of a shop table.
type TableInput struct {
	ShopID uuid.UUID `json:"shop_id" validate:"required"`
	Name   string    `json:"name" validate:"required"`
}

// Repository defines persistence operations for shop tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindTable(ctx context.Context, id uuid.UUID) (*models.Table, error)
	ListShopTables(ctx context.Context, shopID uuid.UUID) ([]models.Table, error)
	CreateTable(ctx context.Context, table *models.Table) (*models.Table, error)
	UpdateTable(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteTable(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a table repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *repository) ListShopTables(ctx context.Context, shopID uuid.UUID) ([]models.Table, error) {
	var tables []models.Table
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("name ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) CreateTable(ctx context.Context, table *models.Table) (*models.Table, error) {
	if table.ID == uuid.Nil {
		table.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return nil, err
	}
	return table, nil
}

func (r *repository) UpdateTable(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Table{}).Where("id = ?", id).Updates(updates).Error
}

func (r *repository) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Table{}).Error
}

// Service exposes table management for shop layouts.
type Service interface {
	ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Table, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Table, error)
	Create(ctx context.Context, input TableInput) (*models.Table, error)
	Update(ctx context.Context, id uuid.UUID, input TableInput) (*models.Table, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the table service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("table repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListForShop(ctx context.Context, shopID uuid.UUID) ([]models.Table, error) {
	tables, err := s.repo.ListShopTables(ctx, shopID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tables")
	}
	return tables, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	table, err := s.repo.FindTable(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "table not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load table")
	}
	return table, nil
}

func (s *service) Create(ctx context.Context, input TableInput) (*models.Table, error) {
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	table, err := s.repo.CreateTable(ctx, &models.Table{ShopID: input.ShopID, Name: input.Name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create table")
	}
	return table, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input TableInput) (*models.Table, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if err := s.repo.UpdateTable(ctx, id, map[string]any{"name": input.Name}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update table")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteTable(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete table")
	}
	return nil
}
