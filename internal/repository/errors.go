package repository

import "errors"

var (
	// 該当行なし
	ErrNotFound = errors.New("not found")
	// 一意制約違反（23505）
	ErrDuplicate = errors.New("duplicate")
	// 型に合わない値（22P02）
	ErrInvalidInput = errors.New("invalid input")
)
