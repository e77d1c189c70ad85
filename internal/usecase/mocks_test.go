package usecase

import (
	"context"
	"fmt"
	"time"

	"cartservice/internal/domain/model"
	repo "cartservice/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type txReposMock struct {
	carts     *CartRepoMock
	cartItems *CartItemRepoMock
	orders    *OrderRepoMock
	history   *HistoryRepoMock
}

func (r *txReposMock) Carts() repo.CartRepository                  { return r.carts }
func (r *txReposMock) CartItems() repo.CartItemRepository          { return r.cartItems }
func (r *txReposMock) Orders() repo.OrderRepository                { return r.orders }
func (r *txReposMock) StatusHistory() repo.StatusHistoryRepository { return r.history }

// =====================
// Repository mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) FindOpenByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) LockOpenByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByID(ctx context.Context, cartID string) (model.Cart, error) {
	args := m.Called(ctx, cartID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) CreateOpen(ctx context.Context, cart *model.Cart) (bool, error) {
	args := m.Called(ctx, cart)
	return args.Bool(0), args.Error(1)
}

func (m *CartRepoMock) UpdateStatus(ctx context.Context, cartID string, status model.CartStatus, at time.Time) error {
	return m.Called(ctx, cartID, status, at).Error(0)
}

func (m *CartRepoMock) Touch(ctx context.Context, cartID string, at time.Time) error {
	return m.Called(ctx, cartID, at).Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) Upsert(ctx context.Context, item model.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *CartItemRepoMock) Delete(ctx context.Context, cartID string, productID string) error {
	return m.Called(ctx, cartID, productID).Error(0)
}

func (m *CartItemRepoMock) DeleteByCartID(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) LockByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).([]model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error {
	return m.Called(ctx, orderID, status, at).Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

type HistoryRepoMock struct{ mock.Mock }

func (m *HistoryRepoMock) Create(ctx context.Context, h *model.StatusHistory) error {
	return m.Called(ctx, h).Error(0)
}

func (m *HistoryRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	h, _ := args.Get(0).([]model.StatusHistory)
	return h, args.Error(1)
}

func (m *HistoryRepoMock) DeleteByOrderID(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

// =====================
// 外部の部品
// =====================

type CatalogMock struct{ mock.Mock }

func (m *CatalogMock) Product(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CatalogMock) Remember(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, key string, event any) error {
	return m.Called(ctx, key, event).Error(0)
}

// 連番ID
type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// bcryptは遅いので平文比較
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }

func (plainHasher) Compare(hash, plain string) error {
	if hash != "h:"+plain {
		return fmt.Errorf("mismatch")
	}
	return nil
}

var (
	_ repo.UserRepository          = (*UserRepoMock)(nil)
	_ repo.CartRepository          = (*CartRepoMock)(nil)
	_ repo.CartItemRepository      = (*CartItemRepoMock)(nil)
	_ repo.OrderRepository         = (*OrderRepoMock)(nil)
	_ repo.StatusHistoryRepository = (*HistoryRepoMock)(nil)
	_ ProductCatalog               = (*CatalogMock)(nil)
)
