package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrUnknownEmail   = errors.New("unknown email")
	ErrBadPassword    = errors.New("wrong password")
	ErrNotFound       = errors.New("not found")
	ErrEmptyCart      = errors.New("cart is empty")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
