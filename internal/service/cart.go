package service

import (
	"context"
	"fmt"

	"github.com/vpetrakov/webshop/internal/event"
	"github.com/vpetrakov/webshop/internal/logging"
	"github.com/vpetrakov/webshop/internal/models"
	"github.com/vpetrakov/webshop/internal/repo"
)

type CartService struct {
	Repo      *repo.GormRepo
	Publisher event.Publisher
}

// View returns the user's cart items with their products and the running
// total. An empty cart yields a total of 0.
func (s *CartService) View(ctx context.Context, userID uint) ([]models.CartItem, float64, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var total float64
	for _, it := range items {
		total += float64(it.Quantity) * it.Product.Price
	}
	return items, total, nil
}

func (s *CartService) AddOrIncrement(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	item, err := s.Repo.AddOrIncrement(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
		"quantity":  item.Quantity,
	})
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID uint) error {
	if err := s.Repo.RemoveFromCart(ctx, userID, productID); err != nil {
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})
	return nil
}

// Checkout converts the cart into a bare order record and clears the cart.
func (s *CartService) Checkout(ctx context.Context, userID uint) (*models.Order, error) {
	order, err := s.Repo.CreateOrder(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, userID, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.TotalPrice,
	})
	return order, nil
}

func (s *CartService) publish(ctx context.Context, userID uint, e map[string]any) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.PublishEvent(ctx, "cart_events", fmt.Sprint(userID), e); err != nil {
		logging.FromContext(ctx).Error("event publish error", "topic", "cart_events", "error", err)
	}
}
