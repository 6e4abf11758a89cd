package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/config"
	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
	"github.com/prijslijst/pricelist-backend/pkg/logger"
	"github.com/prijslijst/pricelist-backend/pkg/metrics"
	"github.com/prijslijst/pricelist-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type availabilityIndexer interface {
	ShopIndex(ctx context.Context, shopID uuid.UUID) (pricelist.Index, error)
}

type shopFinder interface {
	FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

// Service defines order operations for table devices and staff.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderSummary, error)
	ListForShop(ctx context.Context, shopID uuid.UUID, status enums.OrderStatus, params pagination.Params) (*OrderList, error)
	Transition(ctx context.Context, input TransitionInput) error
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	tx      txRunner
	index   availabilityIndexer
	shops   shopFinder
	cfg     config.OrdersConfig
	metrics *metrics.HTTPMetrics
	logg    *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, index availabilityIndexer, shops shopFinder, cfg config.OrdersConfig, m *metrics.HTTPMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if index == nil {
		return nil, fmt.Errorf("availability indexer required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop finder required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		index:   index,
		shops:   shops,
		cfg:     cfg,
		metrics: m,
		logg:    logg,
	}, nil
}

// Create runs the submission pipeline: schema validation, the cannabis weight
// ceiling, availability against the shop's price rules, the total checksum,
// then a single transaction that assigns the next customer_order_id and
// persists the order.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*CreateOrderResult, error) {
	if input.ShopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop_id required")
	}
	if err := input.OrderInfo.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order_info")
	}

	// Weight precedes the shop lookup so the ceiling error wins for any
	// submission, known shop or not.
	if weight := CannabisWeight(input.OrderInfo); weight > s.maxGrams() {
		s.countOutcome("rejected_weight")
		return nil, pkgerrors.New(pkgerrors.CodeBusinessRule, "MAX_5_GRAMS_ALLOWED")
	}

	if _, err := s.shops.FindShop(ctx, input.ShopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shop")
	}

	idx, err := s.index.ShopIndex(ctx, input.ShopID)
	if err != nil {
		return nil, err
	}
	if name, unavailable := UnavailableLine(input.OrderInfo, idx); unavailable {
		s.countOutcome("rejected_availability")
		return nil, pkgerrors.New(pkgerrors.CodeBusinessRule, fmt.Sprintf("%s, OUT_OF_STOCK", name))
	}

	if !TotalMatches(input.OrderInfo, input.Total) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total does not match order lines")
	}

	order := &models.Order{
		ShopID:    input.ShopID,
		TableID:   input.TableID,
		OrderInfo: input.OrderInfo,
		Total:     input.Total,
		Status:    enums.OrderStatusPending,
		Notes:     input.Notes,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.LockShop(ctx, input.ShopID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock shop")
		}
		next, err := repo.NextCustomerOrderID(ctx, input.ShopID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next customer order id")
		}
		order.CustomerOrderID = next
		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		s.countOutcome("failed")
		return nil, err
	}

	s.countOutcome("accepted")
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"shop_id":           order.ShopID,
			"order_id":          order.ID,
			"customer_order_id": order.CustomerOrderID,
		})
		s.logg.Info(ctx, "order accepted")
	}

	result := &CreateOrderResult{
		ID:              order.ID,
		CustomerOrderID: order.CustomerOrderID,
		Total:           order.Total,
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		TableID:         order.TableID,
	}
	if order.TableID != nil {
		if stored, err := s.repo.FindOrder(ctx, order.ID); err == nil && stored.Table != nil {
			result.TableName = &stored.Table.Name
		}
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderSummary, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	summary := summarize(*order)
	return &summary, nil
}

func (s *service) ListForShop(ctx context.Context, shopID uuid.UUID, status enums.OrderStatus, params pagination.Params) (*OrderList, error) {
	if shopID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop id required")
	}
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status %q", status))
	}
	list, err := s.repo.ListShopOrders(ctx, shopID, status, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// Transition moves a pending order to a terminal status, stamping completion
// metadata exactly once. Re-requesting the current terminal status is a
// no-op; conflicting transitions from a terminal state are rejected.
func (s *service) Transition(ctx context.Context, input TransitionInput) error {
	if !input.Status.IsValid() || input.Status == enums.OrderStatusPending {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid target status %q", input.Status))
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrder(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		if order.Status == input.Status {
			return nil
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order already %s", order.Status))
		}

		now := time.Now().UTC()
		updates := map[string]any{
			"status":       input.Status,
			"completed_at": now,
		}
		if input.ActorID != uuid.Nil {
			updates["completed_by"] = input.ActorID
		}
		if err := repo.UpdateOrder(ctx, input.OrderID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
}

// Update handles the staff PUT: optional table/notes edits plus, when the
// body carries a terminal status, the same transition as PATCH.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*OrderSummary, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if input.Status == nil && order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order already %s", order.Status))
	}

	updates := map[string]any{}
	if input.TableID != nil {
		updates["table_id"] = input.TableID
	}
	if input.Notes != nil {
		updates["notes"] = input.Notes
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateOrder(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
	}

	if input.Status != nil {
		transition := TransitionInput{OrderID: id, Status: *input.Status, ActorID: input.ActorID}
		if err := s.Transition(ctx, transition); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func (s *service) maxGrams() float64 {
	if s.cfg.MaxCannabisGrams > 0 {
		return s.cfg.MaxCannabisGrams
	}
	return 5
}

func (s *service) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.IncOrderOutcome(outcome)
	}
}
