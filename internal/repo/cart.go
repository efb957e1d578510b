package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vpetrakov/webshop/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Preload("Product").
		Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddOrIncrement bumps the quantity of the (user, product) row by one, or
// inserts it with quantity 1. The UPDATE with a SQL expression runs atomically
// inside the transaction, so two concurrent adds for the same pair can never
// produce two rows or lose an increment.
func (r *GormRepo) AddOrIncrement(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.Product{}, productID).Error; err != nil {
			return notFound(err)
		}

		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Update("quantity", gorm.Expr("quantity + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item = models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateOrder turns the user's cart into a bare order record and clears the
// cart, all in one transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, it := range items {
			total += float64(it.Quantity) * it.Product.Price
		}

		order = models.Order{
			UserID:     userID,
			TotalPrice: total,
			CreatedAt:  time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
