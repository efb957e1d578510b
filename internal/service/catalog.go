package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vpetrakov/webshop/internal/event"
	"github.com/vpetrakov/webshop/internal/logging"
	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/repo"
)

type CatalogService struct {
	Repo      *repo.GormRepo
	Publisher event.Publisher
	Search    *SearchService
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func validateProduct(p *models.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, prod *models.Product) error {
	if err := validateProduct(prod); err != nil {
		return err
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.indexProduct(ctx, prod)
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, fields models.Product) (*models.Product, error) {
	if err := validateProduct(&fields); err != nil {
		return nil, err
	}
	prod, err := s.Repo.UpdateProduct(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	s.indexProduct(ctx, prod)
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	if s.Search != nil {
		if err := s.Search.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Error("search index delete error", "productID", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) publish(ctx context.Context, key string, e map[string]any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, "product_events", key, e); err != nil {
		logging.FromContext(ctx).Error("event publish error", "topic", "product_events", "error", err)
	}
}

// indexProduct syncs the search index best-effort; a failed sync is logged and
// the write stands.
func (s *CatalogService) indexProduct(ctx context.Context, prod *models.Product) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexProduct(ctx, prod); err != nil {
		logging.FromContext(ctx).Error("search index error", "productID", prod.ID, "error", err)
	}
}
