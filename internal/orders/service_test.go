package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prijslijst/pricelist-backend/internal/pricelist"
	"github.com/prijslijst/pricelist-backend/pkg/config"
	"github.com/prijslijst/pricelist-backend/pkg/db/models"
	"github.com/prijslijst/pricelist-backend/pkg/enums"
	pkgerrors "github.com/prijslijst/pricelist-backend/pkg/errors"
	"github.com/prijslijst/pricelist-backend/pkg/pagination"
	"github.com/prijslijst/pricelist-backend/pkg/types"
)

type stubOrdersRepo struct {
	order     *models.Order
	created   *models.Order
	updates   map[string]any
	nextID    int64
	lockErr   error
	deletedID uuid.UUID
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) LockShop(ctx context.Context, shopID uuid.UUID) (*models.Shop, error) {
	if s.lockErr != nil {
		return nil, s.lockErr
	}
	return &models.Shop{ID: shopID}, nil
}

func (s *stubOrdersRepo) NextCustomerOrderID(ctx context.Context, shopID uuid.UUID) (int64, error) {
	if s.nextID == 0 {
		return 1, nil
	}
	return s.nextID, nil
}

func (s *stubOrdersRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.created = order
	return order, nil
}

func (s *stubOrdersRepo) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s.order
	return &copied, nil
}

func (s *stubOrdersRepo) ListShopOrders(ctx context.Context, shopID uuid.UUID, status enums.OrderStatus, params pagination.Params) (*OrderList, error) {
	return &OrderList{}, nil
}

func (s *stubOrdersRepo) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	return nil
}

func (s *stubOrdersRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	s.deletedID = id
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type stubIndexer struct {
	idx pricelist.Index
	err error
}

func (s stubIndexer) ShopIndex(ctx context.Context, shopID uuid.UUID) (pricelist.Index, error) {
	return s.idx, s.err
}

type stubShops struct {
	shop *models.Shop
}

func (s stubShops) FindShop(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	if s.shop == nil || s.shop.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.shop, nil
}

func newTestService(t *testing.T, repo *stubOrdersRepo, idx pricelist.Index, shop *models.Shop) Service {
	t.Helper()

	svc, err := NewService(repo, stubTx{}, stubIndexer{idx: idx}, stubShops{shop: shop}, config.OrdersConfig{MaxCannabisGrams: 5}, nil, nil)
	require.NoError(t, err)
	return svc
}

func availableIndex(kindID uuid.UUID) pricelist.Index {
	return pricelist.Index{
		kindID: {
			Active: true,
			Tiers: map[enums.PriceTier]float64{
				enums.PriceTierOne:  10,
				enums.PriceTierFive: 40,
			},
		},
	}
}

func TestServiceCreate_acceptsValidOrder(t *testing.T) {
	shop := &models.Shop{ID: uuid.New()}
	kindID := uuid.New()
	repo := &stubOrdersRepo{nextID: 7}
	svc := newTestService(t, repo, availableIndex(kindID), shop)

	result, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 2, KindID: &kindID},
		},
		Total: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.CustomerOrderID)
	require.NotNil(t, repo.created)
	assert.Equal(t, enums.OrderStatusPending, repo.created.Status)
	assert.Equal(t, int64(7), repo.created.CustomerOrderID)
}

func TestServiceCreate_ignoresSubmittedOrderNumber(t *testing.T) {
	shop := &models.Shop{ID: uuid.New()}
	kindID := uuid.New()
	repo := &stubOrdersRepo{nextID: 7}
	svc := newTestService(t, repo, availableIndex(kindID), shop)

	submitted := int64(4)
	result, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 2, KindID: &kindID},
		},
		Total:           20,
		CustomerOrderID: &submitted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.CustomerOrderID)
	assert.Equal(t, int64(7), repo.created.CustomerOrderID)
}

func TestServiceCreate_rejectsOverWeightCeiling(t *testing.T) {
	shop := &models.Shop{ID: uuid.New()}
	kindID := uuid.New()
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, availableIndex(kindID), shop)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "5 gram", Price: 40, Quantity: 1, KindID: &kindID},
			{Description: "1 gram", Price: 10, Quantity: 1, KindID: &kindID},
		},
		Total: 50,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBusinessRule, typed.Code())
	assert.Equal(t, "MAX_5_GRAMS_ALLOWED", typed.Message())
	assert.Nil(t, repo.created)
}

func TestServiceCreate_allowsExactCeiling(t *testing.T) {
	shop := &models.Shop{ID: uuid.New()}
	kindID := uuid.New()
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, availableIndex(kindID), shop)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "5 gram", Price: 40, Quantity: 1, KindID: &kindID},
		},
		Total: 40,
	})
	assert.NoError(t, err)
}

func TestServiceCreate_rejectsUnavailableLine(t *testing.T) {
	shop := &models.Shop{ID: uuid.New()}
	kindID := uuid.New()
	kindName := "White Widow"
	repo := &stubOrdersRepo{}
	// index has no entry for this kind
	svc := newTestService(t, repo, pricelist.Index{}, shop)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 1, KindID: &kindID, KindName: &kindName},
		},
		Total: 10,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBusinessRule, typed.Code())
	assert.Equal(t, "White Widow, OUT_OF_STOCK", typed.Message())
}

func TestServiceCreate_rejectsChecksumMismatch(t *testing.T) {
	shop := &models.Shop{ID: uuid.New()}
	kindID := uuid.New()
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, availableIndex(kindID), shop)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: shop.ID,
		OrderInfo: types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 2, KindID: &kindID},
		},
		Total: 25,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceCreate_unknownShop(t *testing.T) {
	kindID := uuid.New()
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, availableIndex(kindID), &models.Shop{ID: uuid.New()})

	_, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: uuid.New(),
		OrderInfo: types.OrderLines{
			{Description: "1 gram", Price: 10, Quantity: 1, KindID: &kindID},
		},
		Total: 10,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceCreate_weightCeilingWinsOverUnknownShop(t *testing.T) {
	kindID := uuid.New()
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, availableIndex(kindID), &models.Shop{ID: uuid.New()})

	_, err := svc.Create(context.Background(), CreateOrderInput{
		ShopID: uuid.New(),
		OrderInfo: types.OrderLines{
			{Description: "5 gram", Price: 40, Quantity: 2, KindID: &kindID},
		},
		Total: 80,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBusinessRule, typed.Code())
	assert.Equal(t, "MAX_5_GRAMS_ALLOWED", typed.Message())
}

func TestServiceTransition_stampsCompletionOnce(t *testing.T) {
	orderID := uuid.New()
	actor := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusPending},
	}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	err := svc.Transition(context.Background(), TransitionInput{
		OrderID: orderID,
		Status:  enums.OrderStatusComplete,
		ActorID: actor,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.updates)
	assert.Equal(t, enums.OrderStatusComplete, repo.updates["status"])
	assert.Equal(t, actor, repo.updates["completed_by"])
	assert.NotNil(t, repo.updates["completed_at"])
}

func TestServiceTransition_repeatTerminalIsNoop(t *testing.T) {
	orderID := uuid.New()
	completed := time.Now().UTC()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusComplete, CompletedAt: &completed},
	}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	err := svc.Transition(context.Background(), TransitionInput{
		OrderID: orderID,
		Status:  enums.OrderStatusComplete,
		ActorID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Nil(t, repo.updates)
}

func TestServiceTransition_conflictingTerminal(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusCancelled},
	}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	err := svc.Transition(context.Background(), TransitionInput{
		OrderID: orderID,
		Status:  enums.OrderStatusComplete,
		ActorID: uuid.New(),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestServiceTransition_rejectsPendingTarget(t *testing.T) {
	repo := &stubOrdersRepo{}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	err := svc.Transition(context.Background(), TransitionInput{
		OrderID: uuid.New(),
		Status:  enums.OrderStatusPending,
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdate_terminalStatusRunsTransition(t *testing.T) {
	orderID := uuid.New()
	actor := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusPending},
	}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	status := enums.OrderStatusComplete
	_, err := svc.Update(context.Background(), orderID, UpdateOrderInput{Status: &status, ActorID: actor})
	require.NoError(t, err)
	require.NotNil(t, repo.updates)
	assert.Equal(t, enums.OrderStatusComplete, repo.updates["status"])
	assert.Equal(t, actor, repo.updates["completed_by"])
	assert.NotNil(t, repo.updates["completed_at"])
}

func TestServiceUpdate_repeatTerminalStatusIsNoop(t *testing.T) {
	orderID := uuid.New()
	completed := time.Now().UTC()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusComplete, CompletedAt: &completed},
	}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	status := enums.OrderStatusComplete
	summary, err := svc.Update(context.Background(), orderID, UpdateOrderInput{Status: &status})
	require.NoError(t, err)
	assert.Nil(t, repo.updates)
	assert.Equal(t, enums.OrderStatusComplete, summary.Status)
}

func TestServiceUpdate_terminalOrderRejected(t *testing.T) {
	orderID := uuid.New()
	repo := &stubOrdersRepo{
		order: &models.Order{ID: orderID, Status: enums.OrderStatusComplete},
	}
	svc := newTestService(t, repo, pricelist.Index{}, &models.Shop{ID: uuid.New()})

	_, err := svc.Update(context.Background(), orderID, UpdateOrderInput{})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}
