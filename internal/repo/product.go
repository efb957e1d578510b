package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/vpetrakov/webshop/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// UpdateProduct overwrites every mutable field of the product.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, fields models.Product) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prod, id).Error; err != nil {
			return notFound(err)
		}

		prod.Name = fields.Name
		prod.Description = fields.Description
		prod.Price = fields.Price
		prod.ImageURL = fields.ImageURL

		return tx.Save(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

// DeleteProduct removes the product and every cart item referencing it in one
// transaction. The explicit cart delete keeps the cascade working on databases
// where AutoMigrate did not install the foreign key.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
