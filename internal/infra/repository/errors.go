package repository

import (
	"errors"

	repo "cartservice/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// gorm/pgxのエラーをrepositoryの共通エラーに寄せる
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return repo.ErrDuplicate
		case invalidTextRepresentation:
			return repo.ErrInvalidInput
		}
	}
	return err
}
