package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cartservice/internal/domain/model"
	repo "cartservice/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /api/profile/cart の業務ロジックです。
type CartUsecase struct {
	tx      repo.TransactionManager
	carts   repo.CartRepository
	items   repo.CartItemRepository
	catalog ProductCatalog
	idGen   IDGenerator
	clock   Clock
}

func NewCartUsecase(
	tx repo.TransactionManager,
	carts repo.CartRepository,
	items repo.CartItemRepository,
	catalog ProductCatalog,
	idGen IDGenerator,
	clock Clock,
) *CartUsecase {
	return &CartUsecase{
		tx:      tx,
		carts:   carts,
		items:   items,
		catalog: catalog,
		idGen:   idGen,
		clock:   clock,
	}
}

// PUTのproduct。title/priceがあればカタログに覚えさせる
type ProductRef struct {
	ID          string           `json:"id" validate:"required,uuid"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

type SetItemInput struct {
	Product ProductRef `json:"product" validate:"required"`
	Count   int        `json:"count"`
}

type CartItemView struct {
	Product model.Product `json:"product"`
	Count   int           `json:"count"`
}

type CartView struct {
	ID     string           `json:"id"`
	UserID string           `json:"userId"`
	Status model.CartStatus `json:"status"`
	Items  []CartItemView   `json:"items"`
}

// OPENカートを返す（無ければ空で作る）
func (u *CartUsecase) FindOrCreateOpenCart(ctx context.Context, userID string) (CartView, error) {
	cart, err := u.openCart(ctx, u.carts, userID, false)
	if err != nil {
		return CartView{}, err
	}

	items, err := u.items.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, fmt.Errorf("list cart items: %w", err)
	}
	return u.view(ctx, cart, items), nil
}

// count<=0なら削除、それ以外は上書き。全部1つのTxで行う
func (u *CartUsecase) SetItemQuantity(ctx context.Context, userID string, in SetItemInput) (CartView, error) {
	if in.Product.ID == "" {
		return CartView{}, ErrValidation("product.id is required")
	}

	if in.Product.Price != nil || in.Product.Title != "" {
		p := model.Product{ID: in.Product.ID, Title: in.Product.Title, Description: in.Product.Description}
		if in.Product.Price != nil {
			p.Price = *in.Product.Price
		}
		// 上流がある場合カタログ側で無視される
		if err := u.catalog.Remember(ctx, p); err != nil {
			return CartView{}, fmt.Errorf("remember product: %w", err)
		}
	}

	var (
		cart  model.Cart
		items []model.CartItem
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		cart, err = u.openCart(ctx, r.Carts(), userID, true)
		if err != nil {
			return err
		}

		if in.Count <= 0 {
			err = r.CartItems().Delete(ctx, cart.ID, in.Product.ID)
		} else {
			err = r.CartItems().Upsert(ctx, model.CartItem{CartID: cart.ID, ProductID: in.Product.ID, Count: in.Count})
		}
		if err != nil {
			return fmt.Errorf("write cart item: %w", err)
		}

		now := u.clock.Now()
		if err := r.Carts().Touch(ctx, cart.ID, now); err != nil {
			return fmt.Errorf("touch cart: %w", err)
		}
		cart.UpdatedAt = now

		items, err = r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("list cart items: %w", err)
		}
		return nil
	})
	if err != nil {
		return CartView{}, err
	}

	return u.view(ctx, cart, items), nil
}

// 明細を全削除
func (u *CartUsecase) Clear(ctx context.Context, userID string) error {
	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := u.openCart(ctx, r.Carts(), userID, true)
		if err != nil {
			return err
		}
		if err := r.CartItems().DeleteByCartID(ctx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if err := r.Carts().Touch(ctx, cart.ID, u.clock.Now()); err != nil {
			return fmt.Errorf("touch cart: %w", err)
		}
		return nil
	})
}

// checkoutからTx内で呼ばれる
func (u *CartUsecase) ChangeStatus(ctx context.Context, cartID string, status model.CartStatus) error {
	return changeCartStatus(ctx, u.carts, cartID, status, u.clock.Now())
}

func changeCartStatus(ctx context.Context, carts repo.CartRepository, cartID string, status model.CartStatus, at time.Time) error {
	err := carts.UpdateStatus(ctx, cartID, status, at)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound("Cart not found")
	}
	if err != nil {
		return fmt.Errorf("update cart status: %w", err)
	}
	return nil
}

// 見つからなければ作る。作成で負けたら（同時リクエスト）読み直す
func (u *CartUsecase) openCart(ctx context.Context, carts repo.CartRepository, userID string, lock bool) (model.Cart, error) {
	find := carts.FindOpenByUserID
	if lock {
		find = carts.LockOpenByUserID
	}

	cart, err := find(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, fmt.Errorf("find open cart: %w", err)
	}

	now := u.clock.Now()
	cart = model.Cart{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		Status:    model.CartStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := carts.CreateOpen(ctx, &cart)
	if err != nil {
		return model.Cart{}, fmt.Errorf("create cart: %w", err)
	}
	// 自分でINSERTした行はcommitまで他Txから触れない
	if created {
		return cart, nil
	}

	cart, err = find(ctx, userID)
	if err != nil {
		return model.Cart{}, fmt.Errorf("find open cart: %w", err)
	}
	return cart, nil
}

// 商品が引けないときはidだけ返す（価格0）
func (u *CartUsecase) view(ctx context.Context, cart model.Cart, items []model.CartItem) CartView {
	return CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Status: cart.Status,
		Items:  itemViews(ctx, u.catalog, items),
	}
}

func itemViews(ctx context.Context, catalog ProductCatalog, items []model.CartItem) []CartItemView {
	out := make([]CartItemView, 0, len(items))
	for _, it := range items {
		p, err := catalog.Product(ctx, it.ProductID)
		if err != nil {
			p = model.Product{ID: it.ProductID, Price: decimal.Zero}
		}
		out = append(out, CartItemView{Product: p, Count: it.Count})
	}
	return out
}
