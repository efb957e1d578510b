package repo

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vpetrakov/webshop/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.RefreshToken{},
	))

	return New(db)
}

func createProduct(t *testing.T, r *GormRepo, name string, price float64) *models.Product {
	t.Helper()
	prod := &models.Product{Name: name, Description: "d", Price: price}
	require.NoError(t, r.DB.Create(prod).Error)
	return prod
}
