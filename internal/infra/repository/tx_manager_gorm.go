package repository

import (
	"context"

	repo "cartservice/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	carts         repo.CartRepository
	cartItems     repo.CartItemRepository
	orders        repo.OrderRepository
	statusHistory repo.StatusHistoryRepository
}

func (r *txReposGorm) Carts() repo.CartRepository                  { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository          { return r.cartItems }
func (r *txReposGorm) Orders() repo.OrderRepository                { return r.orders }
func (r *txReposGorm) StatusHistory() repo.StatusHistoryRepository { return r.statusHistory }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// fnがエラーを返したらrollback、そのままのエラーを返す
func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			carts:         NewCartGormRepository(tx),
			cartItems:     NewCartItemGormRepository(tx),
			orders:        NewOrderGormRepository(tx),
			statusHistory: NewStatusHistoryGormRepository(tx),
		}
		return fn(r)
	})
}

var (
	_ repo.CartRepository          = (*CartGormRepository)(nil)
	_ repo.CartItemRepository      = (*CartItemGormRepository)(nil)
	_ repo.OrderRepository         = (*OrderGormRepository)(nil)
	_ repo.StatusHistoryRepository = (*StatusHistoryGormRepository)(nil)
	_ repo.TransactionManager      = (*TxManagerGorm)(nil)
)
