package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cartservice/internal/domain/model"
	repo "cartservice/internal/repository"

	"github.com/shopspring/decimal"
)

// 注文イベントの送信先（kafka / noop）
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	history   repo.StatusHistoryRepository
	cartItems repo.CartItemRepository
	catalog   ProductCatalog
	publisher EventPublisher
	idGen     IDGenerator
	clock     Clock
	log       *slog.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	history repo.StatusHistoryRepository,
	cartItems repo.CartItemRepository,
	catalog ProductCatalog,
	publisher EventPublisher,
	idGen IDGenerator,
	clock Clock,
	log *slog.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		history:   history,
		cartItems: cartItems,
		catalog:   catalog,
		publisher: publisher,
		idGen:     idGen,
		clock:     clock,
		log:       log,
	}
}

// PUT /api/profile/cart/order
type CheckoutInput struct {
	Address  any            `json:"address"`
	Payment  map[string]any `json:"payment"`
	Comments string         `json:"comments"`
}

// POST /api/orders
type CreateOrderInput struct {
	CartID   string          `json:"cartId" validate:"required,uuid"`
	Address  any             `json:"address"`
	Payment  map[string]any  `json:"payment"`
	Comments string          `json:"comments"`
	Total    decimal.Decimal `json:"total"`
}

type UpdateStatusInput struct {
	Status  model.OrderStatus `json:"status" validate:"required"`
	Comment string            `json:"comment"`
}

// 注文詳細（明細はカートのcart_itemsから）
type OrderView struct {
	model.Order
	Items         []CartItemView        `json:"items"`
	StatusHistory []model.StatusHistory `json:"statusHistory"`
}

var (
	errCartEmpty     = ErrValidation("Cart is empty")
	errOrderNotFound = ErrNotFound("Order not found")
)

// OPENカート -> 注文。注文作成・初期履歴・カートORDEREDは同じTx
func (u *OrderUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (model.Order, error) {
	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().LockOpenByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return errCartEmpty
		}
		if err != nil {
			return fmt.Errorf("find open cart: %w", err)
		}

		items, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("list cart items: %w", err)
		}
		if len(items) == 0 {
			return errCartEmpty
		}

		total, err := u.total(ctx, items)
		if err != nil {
			return err
		}

		order = u.newOrder(userID, cart.ID, in.Address, in.Payment, in.Comments, total)
		return u.placeOrder(ctx, r, &order)
	})
	if err != nil {
		return model.Order{}, err
	}

	u.publish(ctx, model.EventOrderCreated, order, "")
	return order, nil
}

// カートを指定して注文を作る（空チェックなし）
func (u *OrderUsecase) Create(ctx context.Context, userID string, in CreateOrderInput) (model.Order, error) {
	if in.CartID == "" {
		return model.Order{}, ErrValidation("cartId is required")
	}
	if in.Total.IsNegative() {
		return model.Order{}, ErrValidation("total must not be negative")
	}

	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, in.CartID)
		if errors.Is(err, repo.ErrNotFound) || (err == nil && cart.UserID != userID) {
			return ErrNotFound("Cart not found")
		}
		if err != nil {
			return fmt.Errorf("find cart: %w", err)
		}

		order = u.newOrder(userID, cart.ID, in.Address, in.Payment, in.Comments, in.Total.Round(2))
		return u.placeOrder(ctx, r, &order)
	})
	if err != nil {
		return model.Order{}, err
	}

	u.publish(ctx, model.EventOrderCreated, order, "")
	return order, nil
}

// 状態を上書きして履歴を1行追加。遷移の制約はなし
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, in UpdateStatusInput) (model.Order, error) {
	if !in.Status.Valid() {
		return model.Order{}, ErrValidation(fmt.Sprintf("Unknown order status %q", in.Status))
	}

	var order model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		order, err = r.Orders().LockByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}

		now := u.clock.Now()
		if err := r.Orders().UpdateStatus(ctx, orderID, in.Status, now); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		if err := r.StatusHistory().Create(ctx, &model.StatusHistory{
			ID:        u.idGen.NewID(),
			OrderID:   orderID,
			Status:    in.Status,
			Comment:   in.Comment,
			Timestamp: now,
		}); err != nil {
			return fmt.Errorf("append status history: %w", err)
		}

		order.Status = in.Status
		order.UpdatedAt = now
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	u.publish(ctx, model.EventOrderStatusChanged, order, in.Comment)
	return order, nil
}

// 新しい順
func (u *OrderUsecase) GetStatusHistory(ctx context.Context, orderID string) ([]model.StatusHistory, error) {
	if _, err := u.find(ctx, orderID); err != nil {
		return nil, err
	}

	rows, err := u.history.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	return rows, nil
}

// 履歴 -> 注文の順で削除
func (u *OrderUsecase) Delete(ctx context.Context, orderID string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.StatusHistory().DeleteByOrderID(ctx, orderID); err != nil {
			return fmt.Errorf("delete status history: %w", err)
		}

		err := r.Orders().Delete(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound(fmt.Sprintf("Order with id %s not found", orderID))
		}
		if err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
}

func (u *OrderUsecase) List(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (u *OrderUsecase) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := u.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (OrderView, error) {
	order, err := u.find(ctx, orderID)
	if err != nil {
		return OrderView{}, err
	}

	items, err := u.cartItems.ListByCartID(ctx, order.CartID)
	if err != nil {
		return OrderView{}, fmt.Errorf("list cart items: %w", err)
	}
	history, err := u.history.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderView{}, fmt.Errorf("list status history: %w", err)
	}

	return OrderView{
		Order:         order,
		Items:         itemViews(ctx, u.catalog, items),
		StatusHistory: history,
	}, nil
}

func (u *OrderUsecase) find(ctx context.Context, orderID string) (model.Order, error) {
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, errOrderNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// Σ price × count（小数2桁）
func (u *OrderUsecase) total(ctx context.Context, items []model.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range items {
		p, err := u.catalog.Product(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return decimal.Zero, ErrValidation(fmt.Sprintf("Product %s is not available", it.ProductID))
		}
		if err != nil {
			return decimal.Zero, fmt.Errorf("resolve product %s: %w", it.ProductID, err)
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Count))))
	}
	return total.Round(2), nil
}

func (u *OrderUsecase) newOrder(userID, cartID string, address any, payment map[string]any, comments string, total decimal.Decimal) model.Order {
	now := u.clock.Now()
	return model.Order{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		CartID:    cartID,
		Payment:   payment,
		Delivery:  map[string]any{"address": address},
		Comments:  comments,
		Status:    model.OrderStatusOpen,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// 注文 + 初期履歴 + カートORDERED（cart_itemsは触らない）
func (u *OrderUsecase) placeOrder(ctx context.Context, r repo.TxRepos, order *model.Order) error {
	if err := r.Orders().Create(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	if err := r.StatusHistory().Create(ctx, &model.StatusHistory{
		ID:        u.idGen.NewID(),
		OrderID:   order.ID,
		Status:    model.OrderStatusOpen,
		Comment:   "Order created",
		Timestamp: order.CreatedAt,
	}); err != nil {
		return fmt.Errorf("create status history: %w", err)
	}

	return changeCartStatus(ctx, r.Carts(), order.CartID, model.CartStatusOrdered, order.CreatedAt)
}

// commit後に送る。失敗してもリクエストは成功のまま
func (u *OrderUsecase) publish(ctx context.Context, eventType string, order model.Order, comment string) {
	evt := model.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		Comment:    comment,
		OccurredAt: u.clock.Now(),
	}
	if err := u.publisher.Publish(ctx, order.ID, evt); err != nil {
		u.log.WarnContext(ctx, "publish order event failed",
			slog.String("type", eventType),
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
}
