package repository

import (
	"context"
	"time"

	"cartservice/internal/domain/model"
)

type CartRepository interface {
	// OPENカートが無ければErrNotFound
	FindOpenByUserID(ctx context.Context, userID string) (model.Cart, error)
	// 同じくFOR UPDATEで行ロック（Tx内で使う）
	LockOpenByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindByID(ctx context.Context, cartID string) (model.Cart, error)
	// 既にOPENがあれば何もせずfalse
	CreateOpen(ctx context.Context, cart *model.Cart) (bool, error)
	UpdateStatus(ctx context.Context, cartID string, status model.CartStatus, at time.Time) error
	Touch(ctx context.Context, cartID string, at time.Time) error
}
